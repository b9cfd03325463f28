package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Estimates []float64 `json:"estimates"`
}

// ExportJSON writes a saved run, metadata and estimates, as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	estimates, err := s.LoadEstimates(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Estimates: estimates})
}
