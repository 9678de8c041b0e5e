package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/crtsim/internal/crt"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var samplesHeader = []string{"tick", "x", "y", "vx", "vy", "brightness", "visible"}

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
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Timestamp     time.Time            `json:"timestamp"`
	Configuration crt.Configuration    `json:"configuration"`
	Physics       crt.PhysicsConstants `json:"physics"`
	TimeScale     float64              `json:"time_scale"`
	Frames        int                  `json:"frames"`
	VisibleFrames int                  `json:"visible_frames"`
	TrailLen      int                  `json:"trail_len"`
	Metrics       map[string]float64   `json:"metrics,omitempty"`
}

// Run is what a recording produces before it is saved.
type Run struct {
	Name          string
	Configuration crt.Configuration
	Physics       crt.PhysicsConstants
	TimeScale     float64
	TrailLen      int
	Samples       []Sample
	Metrics       map[string]float64
}

func (s *Store) Save(run Run) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	now := time.Now()
	runID, runDir, err := s.makeRunDir(run.Name, now)
	if err != nil {
		return "", err
	}

	visible := 0
	for _, smp := range run.Samples {
		if smp.Visible {
			visible++
		}
	}
	meta := RunMetadata{
		ID:            runID,
		Name:          run.Name,
		Timestamp:     now,
		Configuration: run.Configuration,
		Physics:       run.Physics,
		TimeScale:     run.TimeScale,
		Frames:        len(run.Samples),
		VisibleFrames: visible,
		TrailLen:      run.TrailLen,
		Metrics:       run.Metrics,
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), run.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// makeRunDir creates <base>/<name>_<unix>, adding a suffix if that run
// already exists.
func (s *Store) makeRunDir(name string, now time.Time) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSamples(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		if err := w.Write(smp.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(samplesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (Sample, error) {
	var smp Sample
	tick, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return smp, err
	}
	smp.Tick = tick

	fields := []*float64{&smp.X, &smp.Y, &smp.VX, &smp.VY, &smp.Brightness}
	for j, dst := range fields {
		v, err := strconv.ParseFloat(record[j+1], 64)
		if err != nil {
			return smp, err
		}
		*dst = v
	}

	smp.Visible, err = strconv.ParseBool(record[6])
	return smp, err
}
