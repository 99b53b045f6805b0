package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pskrzyn/geosim/internal/geom"
	"github.com/pskrzyn/geosim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times:      []float64{0.0, 0.1},
		Process:    []float64{0.0, 0.00995},
		Control:    []float64{1.0, 0.99},
		Output:     []float64{1.0, 0.99995},
		Metrics:    map[string]float64{"control_effort": 0.995},
		StepsTaken: 2,
	}
}

func TestSimSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.SaveSim("pid", 0.1, 100.0, 1.0, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != KindSim {
		t.Errorf("expected kind %q, got %q", KindSim, meta.Kind)
	}
	if meta.Controller != "pid" {
		t.Errorf("expected controller pid, got %q", meta.Controller)
	}
	if meta.Metrics["control_effort"] != 0.995 {
		t.Errorf("expected control_effort 0.995, got %f", meta.Metrics["control_effort"])
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if series.StepsTaken != 2 {
		t.Errorf("expected 2 rows, got %d", series.StepsTaken)
	}
	if series.Control[0] != 1.0 {
		t.Errorf("expected control 1.0, got %f", series.Control[0])
	}
}

func TestHullSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	input := []geom.Point{geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(2, 2)}
	hullPts := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 2)}

	runID, err := st.SaveHull(42, input, hullPts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Kind != KindHull {
		t.Errorf("expected kind %q, got %q", KindHull, meta.Kind)
	}
	if meta.Points != 3 || meta.HullPoints != 2 {
		t.Errorf("expected 3/2 point counts, got %d/%d", meta.Points, meta.HullPoints)
	}

	gotInput, gotHull, err := st.LoadHull(runID)
	if err != nil {
		t.Fatalf("load hull failed: %v", err)
	}
	if len(gotInput) != 3 || len(gotHull) != 2 {
		t.Fatalf("expected 3/2 points, got %d/%d", len(gotInput), len(gotHull))
	}
	if gotHull[1] != geom.Pt(2, 2) {
		t.Errorf("expected hull point (2,2), got %v", gotHull[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.SaveSim("none", 0.1, 1.0, 1.0, testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.SaveHull(1, []geom.Point{geom.Pt(0, 0)}, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if runs != nil {
		t.Errorf("expected nil runs, got %v", runs)
	}
}

func TestFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.SaveSim("pid", 0.1, 1.0, 1.0, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "series.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportSimJSON(t *testing.T) {
	meta := &RunMetadata{ID: "pid_1", Controller: "pid", Dt: 0.1, Duration: 100, Setpoint: 1}

	var buf bytes.Buffer
	if err := ExportSimJSON(&buf, meta, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out SimExport
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Steps != 2 || out.ID != "pid_1" {
		t.Errorf("unexpected export %+v", out)
	}
}

func TestExportHullJSON(t *testing.T) {
	meta := &RunMetadata{ID: "hull_1", Seed: 7}
	input := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}

	var buf bytes.Buffer
	if err := ExportHullJSON(&buf, meta, input, input[:1]); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out HullExport
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out.Points) != 2 || len(out.Hull) != 1 {
		t.Errorf("unexpected export %+v", out)
	}
}
