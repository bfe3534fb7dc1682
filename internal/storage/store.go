package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/swingsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	log     logrus.FieldLogger
}

func New(baseDir string) *Store {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Store{baseDir: baseDir, log: quiet}
}

func (s *Store) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		s.log = l
	}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one headless run. The pendulum fields mirror the
// parameters the run was started with.
type RunMetadata struct {
	ID           string             `json:"id"`
	Preset       string             `json:"preset,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
	Mode         string             `json:"mode"`
	Mass         float64            `json:"mass"`
	RestLength   float64            `json:"rest_length"`
	Stiffness    float64            `json:"stiffness"`
	InitialAngle float64            `json:"initial_angle"`
	Gravity      float64            `json:"gravity"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Integrator   string             `json:"integrator"`
	Steps        int                `json:"steps"`
	EnergyDrift  float64            `json:"energy_drift"`
	Labels       []string           `json:"labels"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes meta and the trajectory of result into a fresh run directory
// and returns the run ID. Result-derived fields of meta are overwritten.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	prefix := meta.Mode
	if prefix == "" {
		prefix = "run"
	}
	runID, runDir, err := s.createRunDir(prefix, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Labels = result.Labels
	meta.Metrics = result.Metrics
	meta.EnergyDrift = result.EnergyDrift
	meta.Steps = result.StepsTaken

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error { return encodeJSON(w, meta) })
	if err == nil {
		err = writeFile(filepath.Join(runDir, statesFile), func(w io.Writer) error { return encodeStates(w, result) })
	}
	if err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.log.WithError(rmErr).WithField("run", runID).Warn("failed to remove partial run")
		}
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"run":    runID,
		"states": len(result.States),
	}).Debug("run saved")
	return runID, nil
}

func (s *Store) createRunDir(prefix string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", prefix, now.Unix())
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

// writeFile creates path and hands it to fill. The file is closed before
// returning and a close error is reported like a write error.
func writeFile(path string, fill func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fill(f)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeStates(out io.Writer, result *dynamo.Result) error {
	if len(result.Times) != len(result.States) {
		return fmt.Errorf("storage: %d states but %d times", len(result.States), len(result.Times))
	}
	w := csv.NewWriter(out)

	header := []string{"time"}
	header = append(header, result.Labels...)
	if len(result.Labels) == 0 && len(result.States) > 0 {
		for i := range result.States[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, st := range result.States {
		row := make([]string, 0, len(st)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range st {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first. Directories without
// valid metadata are skipped.
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
			s.log.WithField("dir", entry.Name()).WithError(err).Debug("skipping run directory")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
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

// LoadResult rebuilds the recorded trajectory of a run.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	result := &dynamo.Result{
		Labels:      meta.Labels,
		States:      []dynamo.State{},
		Times:       []float64{},
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
		StepsTaken:  meta.Steps,
	}
	if len(records) < 2 {
		return result, nil
	}
	if len(result.Labels) == 0 {
		result.Labels = records[0][1:]
	}

	for line, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
		}
		st := make(dynamo.State, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
			st = append(st, v)
		}
		result.Times = append(result.Times, t)
		result.States = append(result.States, st)
	}
	return result, nil
}

// ExportJSON writes metadata and trajectory as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	result, err := s.LoadResult(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Metadata *RunMetadata   `json:"metadata"`
		Labels   []string       `json:"labels"`
		Times    []float64      `json:"times"`
		States   []dynamo.State `json:"states"`
	}{meta, result.Labels, result.Times, result.States}
	return encodeJSON(w, doc)
}

// ExportCSV copies the stored states table to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
