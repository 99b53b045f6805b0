// Package storage persists runs under a base directory, one subdirectory per
// run with a metadata.json plus CSV data files.
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

	"github.com/pskrzyn/geosim/internal/geom"
	"github.com/pskrzyn/geosim/internal/sim"
)

const (
	KindSim  = "pid"
	KindHull = "hull"
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
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed,omitempty"`
	Dt         float64            `json:"dt,omitempty"`
	Duration   float64            `json:"duration,omitempty"`
	Setpoint   float64            `json:"setpoint,omitempty"`
	Controller string             `json:"controller,omitempty"`
	Points     int                `json:"points,omitempty"`
	HullPoints int                `json:"hull_points,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// SaveSim writes a control-loop run: metadata.json and series.csv with
// columns time, pv, u, output.
func (s *Store) SaveSim(controller string, dt, duration, setpoint float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", KindSim, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Kind:       KindSim,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Setpoint:   setpoint,
		Controller: controller,
		Metrics:    result.Metrics,
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "pv", "u", "output"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			formatFloat(result.Times[i]),
			formatFloat(result.Process[i]),
			formatFloat(result.Control[i]),
			formatFloat(result.Output[i]),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveHull writes a hull run: metadata.json, points.csv with the input set
// (in its pre-computation order) and hull.csv with the result sequence.
func (s *Store) SaveHull(seed int64, input, hullPts []geom.Point) (string, error) {
	runID := fmt.Sprintf("%s_%d", KindHull, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Kind:       KindHull,
		Timestamp:  time.Now(),
		Seed:       seed,
		Points:     len(input),
		HullPoints: len(hullPts),
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	if err := writePoints(filepath.Join(runDir, "points.csv"), input); err != nil {
		return "", err
	}
	return runID, writePoints(filepath.Join(runDir, "hull.csv"), hullPts)
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	file, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
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

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip unreadable or foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadSeries reads series.csv of a control-loop run back into a Result
// (series only, no metrics).
func (s *Store) LoadSeries(runID string) (*sim.Result, error) {
	rows, err := readCSV(filepath.Join(s.baseDir, runID, "series.csv"), 4)
	if err != nil {
		return nil, err
	}

	result := &sim.Result{
		Times:   make([]float64, 0, len(rows)),
		Process: make([]float64, 0, len(rows)),
		Control: make([]float64, 0, len(rows)),
		Output:  make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		result.Times = append(result.Times, row[0])
		result.Process = append(result.Process, row[1])
		result.Control = append(result.Control, row[2])
		result.Output = append(result.Output, row[3])
	}
	result.StepsTaken = len(rows)
	return result, nil
}

// LoadHull reads the input point set and hull sequence of a hull run.
func (s *Store) LoadHull(runID string) (input, hullPts []geom.Point, err error) {
	input, err = readPoints(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, nil, err
	}
	hullPts, err = readPoints(filepath.Join(s.baseDir, runID, "hull.csv"))
	if err != nil {
		return nil, nil, err
	}
	return input, hullPts, nil
}

func writePoints(path string, pts []geom.Point) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range pts {
		if err := w.Write([]string{formatFloat(p.X), formatFloat(p.Y)}); err != nil {
			return err
		}
	}
	return nil
}

func readPoints(path string) ([]geom.Point, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return nil, err
	}
	pts := make([]geom.Point, 0, len(rows))
	for _, row := range rows {
		pts = append(pts, geom.Pt(row[0], row[1]))
	}
	return pts, nil
}

// readCSV reads a headered CSV file of float columns.
func readCSV(path string, cols int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] { // skip header
		if len(record) < cols {
			return nil, fmt.Errorf("storage: short row in %s: %v", path, record)
		}
		row := make([]float64, cols)
		for i := 0; i < cols; i++ {
			row[i], err = strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad value in %s: %w", path, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
