// Package storage persists runs under a base directory, one subdirectory
// per run holding metadata.json and density.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/vlasov/internal/config"
	"github.com/san-kum/vlasov/internal/sim"
)

// ErrRunNotFound indicates that no run with the requested ID exists.
var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	densityFile  = "density.csv"
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

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Cells        int                `json:"cells"`
	XMin         float64            `json:"x_min"`
	XMax         float64            `json:"x_max"`
	Dt           float64            `json:"dt"`
	Steps        int                `json:"steps"`
	Particles    int                `json:"particles"`
	PerCell      int                `json:"per_cell"`
	VThermal     float64            `json:"v_thermal"`
	Epsilon      float64            `json:"epsilon"`
	K            float64            `json:"k"`
	Acceleration float64            `json:"acceleration"`
	Workers      int                `json:"workers"`
	ElapsedMs    float64            `json:"elapsed_ms"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes result under a new run ID derived from name and the current
// time, and returns the ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.createRunDir(fmt.Sprintf("%s_%d", name, now.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    now,
		Cells:        cfg.Grid.Cells,
		XMin:         cfg.Grid.XMin,
		XMax:         cfg.Grid.XMax,
		Dt:           cfg.Time.Dt,
		Steps:        result.StepsTaken,
		Particles:    result.Particles,
		PerCell:      cfg.Loading.PerCell,
		VThermal:     cfg.Loading.VThermal,
		Epsilon:      cfg.Loading.Epsilon,
		K:            cfg.Loading.K,
		Acceleration: cfg.Acceleration,
		Workers:      cfg.Strategy().Workers,
		ElapsedMs:    float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:      result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeDensity(filepath.Join(runDir, densityFile), result.Snapshots); err != nil {
		return "", err
	}
	return runID, nil
}

// createRunDir creates base, or base-2, base-3... if it is taken.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeDensity(path string, snapshots []sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(snapshots) > 0 {
		header := []string{"step", "time"}
		for i := range snapshots[0].Density {
			header = append(header, fmt.Sprintf("rho_%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for _, snap := range snapshots {
		row := make([]string, 0, len(snap.Density)+2)
		row = append(row, strconv.Itoa(snap.Step), strconv.FormatFloat(snap.Time, 'g', -1, 64))
		for _, v := range snap.Density {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns the metadata of every readable run, newest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || runID == "." || runID == ".." {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadDensity reads back the snapshots written by Save.
func (s *Store) LoadDensity(runID string) ([]sim.Snapshot, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, densityFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []sim.Snapshot{}, nil
	}

	snapshots := make([]sim.Snapshot, 0, len(records)-1)
	for line, record := range records[1:] {
		snap, err := parseSnapshot(record)
		if err != nil {
			return nil, fmt.Errorf("run %s: %s line %d: %w", runID, densityFile, line+2, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func parseSnapshot(record []string) (sim.Snapshot, error) {
	if len(record) < 3 {
		return sim.Snapshot{}, fmt.Errorf("expected step, time and at least one cell, got %d fields", len(record))
	}
	step, err := strconv.Atoi(record[0])
	if err != nil {
		return sim.Snapshot{}, err
	}
	t, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return sim.Snapshot{}, err
	}

	density := make([]float64, len(record)-2)
	for i, field := range record[2:] {
		if density[i], err = strconv.ParseFloat(field, 64); err != nil {
			return sim.Snapshot{}, err
		}
	}

	return sim.Snapshot{
		Step:    step,
		Time:    t,
		Density: density,
		Min:     floats.Min(density),
		Max:     floats.Max(density),
	}, nil
}
