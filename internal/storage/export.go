package storage

import (
	"encoding/json"
	"io"

	"github.com/pskrzyn/geosim/internal/geom"
	"github.com/pskrzyn/geosim/internal/sim"
)

type SimExport struct {
	ID         string             `json:"id"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Setpoint   float64            `json:"setpoint"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Process    []float64          `json:"process"`
	Control    []float64          `json:"control"`
	Output     []float64          `json:"output"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

type HullExport struct {
	ID     string       `json:"id"`
	Seed   int64        `json:"seed,omitempty"`
	Points []geom.Point `json:"points"`
	Hull   []geom.Point `json:"hull"`
}

// ExportSimJSON writes a control-loop run as indented JSON.
func ExportSimJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := SimExport{
		ID:         meta.ID,
		Controller: meta.Controller,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Setpoint:   meta.Setpoint,
		Steps:      len(result.Times),
		Times:      result.Times,
		Process:    result.Process,
		Control:    result.Control,
		Output:     result.Output,
		Metrics:    meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportHullJSON writes a hull run as indented JSON.
func ExportHullJSON(w io.Writer, meta *RunMetadata, input, hullPts []geom.Point) error {
	data := HullExport{
		ID:     meta.ID,
		Seed:   meta.Seed,
		Points: input,
		Hull:   hullPts,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
