package config

import "sort"

var Presets = map[string]*Config{
	"quick":    {Repeat: 4, Sample: 1e5, Generator: "pcg"},
	"default":  {Repeat: 1, Sample: 1e6, Generator: "pcg"},
	"precise":  {Repeat: 100, Sample: 1e7, Generator: "pcg"},
	"converge": {Repeat: 32, Sample: 1e6, Generator: "chacha8"},
}

// GetPreset returns a copy of the named preset with Threads set to the
// host parallelism, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Threads = DefaultConfig().Threads
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

