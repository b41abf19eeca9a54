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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/dopsim/internal/config"
	"github.com/san-kum/dopsim/internal/dynamo"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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
	ID         string              `json:"id"`
	Model      string              `json:"model"`
	Integrator string              `json:"integrator"`
	Timestamp  time.Time           `json:"timestamp"`
	Solver     config.SolverConfig `json:"solver"`
	EndTime    float64             `json:"end_time"`
	Dim        int                 `json:"dim"`
	Steps      int                 `json:"steps"`
	Rejections int                 `json:"rejections"`
	FinalDt    float64             `json:"final_dt"`
	Metrics    map[string]float64  `json:"metrics"`
}

// NewRunID returns a fresh identifier of the form <model>_<8 hex digits>.
func NewRunID(model string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s", model, id[:8])
}

// Save writes metadata.json and states.csv under a new run directory.
func (s *Store) Save(cfg *config.Config, result *dynamo.Result) (string, error) {
	runID := NewRunID(cfg.Model)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		Timestamp:  time.Now(),
		Solver:     cfg.Solver,
		EndTime:    cfg.EndTime,
		Dim:        result.Final().Dim(),
		Steps:      result.Steps,
		Rejections: result.Rejections,
		FinalDt:    result.FinalDt,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStates(csvFile, result.States); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteStates writes one row per state: the time followed by each component.
// Values are written with full precision so a reload is exact.
func WriteStates(out io.Writer, states []dynamo.TimeVector) error {
	w := csv.NewWriter(out)

	if len(states) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := range states[0].Vec {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, st := range states {
		row := make([]string, 0, len(st.Vec)+1)
		row = append(row, strconv.FormatFloat(st.Time, 'g', -1, 64))
		for _, val := range st.Vec {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, newest first. Directories
// without readable metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
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
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads the trajectory of a stored run back into time vectors.
func (s *Store) LoadStates(runID string) ([]dynamo.TimeVector, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadStates(file)
}

func ReadStates(in io.Reader) ([]dynamo.TimeVector, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.TimeVector{}, nil
	}

	states := make([]dynamo.TimeVector, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line+2, j+1, err)
			}
			values[j] = v
		}
		states = append(states, dynamo.FromSlice(values[0], values[1:]))
	}
	return states, nil
}
