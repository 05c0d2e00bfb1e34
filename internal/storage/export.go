package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/vlasov/internal/sim"
)

type ExportData struct {
	Run       RunMetadata    `json:"run"`
	Snapshots []sim.Snapshot `json:"snapshots"`
}

// Export writes a stored run as a single JSON document to w.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	snapshots, err := s.LoadDensity(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Snapshots: snapshots})
}

// ExportFile is Export to a file at path.
func (s *Store) ExportFile(runID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := s.Export(runID, f); err != nil {
		return err
	}
	return f.Close()
}
