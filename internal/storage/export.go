package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/galaxy/internal/engine"
)

type ExportData struct {
	Preset     string             `json:"preset"`
	Controller string             `json:"controller"`
	Seed       uint16             `json:"seed"`
	Refreshes  int                `json:"refreshes"`
	Frames     uint64             `json:"frames"`
	Samples    []engine.Sample    `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run summary and its samples as indented JSON.
func ExportJSON(w io.Writer, preset, controller string, seed uint16, result *engine.Result) error {
	data := ExportData{
		Preset:     preset,
		Controller: controller,
		Seed:       seed,
		Refreshes:  result.Refreshes,
		Frames:     result.Frames,
		Samples:    result.Samples,
		Metrics:    result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path, preset, controller string, seed uint16, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, preset, controller, seed, result)
}
