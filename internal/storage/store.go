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

	"github.com/san-kum/galaxy/internal/engine"
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
	ID           string             `json:"id"`
	Preset       string             `json:"preset"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         uint16             `json:"seed"`
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	N            int                `json:"n"`
	Eccentricity uint8              `json:"eccentricity"`
	Decay        string             `json:"decay"`
	Controller   string             `json:"controller"`
	Refreshes    int                `json:"refreshes"`
	Frames       uint64             `json:"frames"`
	Metrics      map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{"refresh", "field_frames", "lit", "enemies", "workers", "infected"}

// Save writes metadata.json and metrics.csv under a new run directory and
// returns the run id. ID, Timestamp, Refreshes, Frames and Metrics are
// filled from result.
func (s *Store) Save(meta RunMetadata, result *engine.Result) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", name, now.UnixNano())
	meta.Timestamp = now
	meta.Refreshes = result.Refreshes
	meta.Frames = result.Frames
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "metrics.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		row := []string{
			strconv.FormatUint(smp.Refresh, 10),
			strconv.FormatUint(smp.FieldFrames, 10),
			strconv.Itoa(smp.Lit),
			strconv.Itoa(smp.Enemies),
			strconv.Itoa(smp.Workers),
			strconv.Itoa(smp.InfectedRows),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadSamples reads metrics.csv back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]engine.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "metrics.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []engine.Sample{}, nil
	}

	samples := make([]engine.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(sampleHeader) {
			continue
		}
		var v [6]int64
		ok := true
		for k := range v {
			n, err := strconv.ParseInt(record[k], 10, 64)
			if err != nil {
				ok = false
				break
			}
			v[k] = n
		}
		if !ok {
			continue
		}
		samples = append(samples, engine.Sample{
			Refresh:      uint64(v[0]),
			FieldFrames:  uint64(v[1]),
			Lit:          int(v[2]),
			Enemies:      int(v[3]),
			Workers:      int(v[4]),
			InfectedRows: int(v[5]),
		})
	}
	return samples, nil
}

// LoadSeries returns one named column of a stored run.
func (s *Store) LoadSeries(runID, name string) ([]float64, error) {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	r := engine.Result{Samples: samples}
	series := r.Series(name)
	if series == nil {
		return nil, fmt.Errorf("unknown series: %s", name)
	}
	return series, nil
}
