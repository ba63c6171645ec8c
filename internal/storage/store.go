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

	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"time", "body", "rot_y", "rot_x", "x", "y", "z", "rotation_speed", "orbit_speed"}

// Store keeps recorded runs as one directory each under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// BodyRecord is the body table a run was recorded with, phase speeds
// included, so the run can be reproduced.
type BodyRecord struct {
	ID          kinematics.BodyID    `json:"id"`
	OrbitRadius float64              `json:"orbit_radius"`
	Rates       kinematics.AxisRates `json:"rates"`
	PhaseSpeed  float64              `json:"phase_speed"`
	Size        float64              `json:"size"`
}

func NewBodyRecords(bodies []kinematics.Body) []BodyRecord {
	out := make([]BodyRecord, len(bodies))
	for i, b := range bodies {
		out[i] = BodyRecord{ID: b.ID, OrbitRadius: b.OrbitRadius, Rates: b.Rates, PhaseSpeed: b.PhaseSpeed, Size: b.Size}
	}
	return out
}

func (r BodyRecord) Body() kinematics.Body {
	return kinematics.Body{ID: r.ID, OrbitRadius: r.OrbitRadius, Rates: r.Rates, PhaseSpeed: r.PhaseSpeed, Size: r.Size}
}

type RunMetadata struct {
	ID            string            `json:"id"`
	Preset        string            `json:"preset"`
	Timestamp     time.Time         `json:"timestamp"`
	Seed          int64             `json:"seed"`
	PhaseRange    string            `json:"phase_range"`
	Dt            float64           `json:"dt"`
	Duration      float64           `json:"duration"`
	Steps         int               `json:"steps"`
	RotationSpeed float64           `json:"rotation_speed"`
	OrbitSpeed    float64           `json:"orbit_speed"`
	Bodies        []BodyRecord      `json:"bodies"`
	Changes       []sim.ParamChange `json:"changes,omitempty"`
}

// Save writes meta and the frames of result under a new run directory and
// returns the run id. ID, Timestamp and Steps are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if result == nil {
		return "", errors.New("storage: nil result")
	}
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.Timestamp = s.now()
	meta.Steps = result.StepsTaken

	runID, runDir, err := s.createRunDir(fmt.Sprintf("%s_%d", name, meta.Timestamp.Unix()))
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *sim.Result) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteFramesCSV(f, result.Frames); err != nil {
		return err
	}
	return f.Close()
}

// createRunDir makes base, or base_2, base_3... if runs share a second.
func (s *Store) createRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
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

// WriteFramesCSV writes one row per body per frame.
func WriteFramesCSV(w io.Writer, frames []kinematics.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(framesHeader); err != nil {
		return err
	}
	for _, f := range frames {
		for _, tr := range f.Transforms {
			row := []string{
				formatFloat(f.Time),
				string(tr.ID),
				formatFloat(tr.Rotation.Y),
				formatFloat(tr.Rotation.X),
				formatFloat(tr.Position.X),
				formatFloat(tr.Position.Y),
				formatFloat(tr.Position.Z),
				formatFloat(f.Params.RotationSpeed),
				formatFloat(f.Params.OrbitSpeed),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the readable runs, oldest first.
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

// LoadFrames reads a run's frames back. Rows sharing a time form one frame.
func (s *Store) LoadFrames(runID string) ([]kinematics.Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	frames, err := ReadFramesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return frames, nil
}

func ReadFramesCSV(r io.Reader) ([]kinematics.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(framesHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []kinematics.Frame{}, nil
	}

	frames := make([]kinematics.Frame, 0)
	for i, rec := range records[1:] {
		var v [8]float64
		for j, k := range []int{0, 2, 3, 4, 5, 6, 7, 8} {
			v[j], err = strconv.ParseFloat(rec[k], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", i+2, framesHeader[k], err)
			}
		}
		tr := kinematics.Transform{
			ID:       kinematics.BodyID(rec[1]),
			Rotation: kinematics.Orientation{Y: v[1], X: v[2]},
			Position: kinematics.Vec3{X: v[3], Y: v[4], Z: v[5]},
		}

		if n := len(frames); n == 0 || frames[n-1].Time != v[0] {
			frames = append(frames, kinematics.Frame{
				Time:   v[0],
				Params: kinematics.Params{RotationSpeed: v[6], OrbitSpeed: v[7]},
			})
		}
		last := &frames[len(frames)-1]
		last.Transforms = append(last.Transforms, tr)
	}
	return frames, nil
}
