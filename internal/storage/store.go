package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Threads   int                `json:"threads"`
	Repeat    int                `json:"repeat"`
	Samples   uint64             `json:"samples"`
	Generator string             `json:"generator"`
	Seed      uint64             `json:"seed,omitempty"`
	Mean      float64            `json:"mean"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the per-repetition estimates under a new run
// directory and returns the run id.
func (s *Store) Save(meta RunMetadata, estimates []float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("pi_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := s.Init(); err != nil {
		return "", err
	}
	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "estimates.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"index", "estimate"}); err != nil {
		return "", err
	}
	for i, v := range estimates {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadEstimates(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "estimates.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []float64{}, nil
	}

	estimates := make([]float64, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("malformed row in %s: %v", runID, record)
		}
		i, err := strconv.Atoi(record[0])
		if err != nil || i < 0 || i >= len(estimates) {
			return nil, fmt.Errorf("bad index %q in %s", record[0], runID)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad estimate %q in %s: %w", record[1], runID, err)
		}
		estimates[i] = v
	}

	return estimates, nil
}
