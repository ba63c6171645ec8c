package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/params"
	"github.com/san-kum/solarsim/internal/sim"
)

func record(t *testing.T) ([]kinematics.Body, *sim.Result) {
	t.Helper()
	store := params.New(nil)
	bodies := store.InitPhaseSpeeds(kinematics.DefaultBodies(), params.NewPhaseGenerator(42, params.WidePhaseRange))
	sys, err := kinematics.NewSystem(bodies)
	require.NoError(t, err)

	half := 0.5
	res, err := sim.NewRecorder(sys, store).Record(context.Background(), sim.Config{
		Dt:       0.1,
		Duration: 0.5,
		Changes:  []sim.ParamChange{{At: 0.2, OrbitSpeed: &half}},
	})
	require.NoError(t, err)
	return bodies, res
}

func fixedStore(dir string) *Store {
	s := New(dir)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestStoreSaveFailureLeavesNoRunDir(t *testing.T) {
	bodies, res := record(t)
	dir := t.TempDir()
	st := fixedStore(dir)

	_, err := st.Save(RunMetadata{Preset: "default", Dt: math.NaN(), Bodies: NewBodyRecords(bodies)}, res)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	runID, err := st.Save(RunMetadata{Preset: "default", Dt: 0.1, Bodies: NewBodyRecords(bodies)}, res)
	require.NoError(t, err)
	assert.Equal(t, "default_1700000000", runID)
}

func TestStoreSaveLoad(t *testing.T) {
	bodies, res := record(t)
	st := fixedStore(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunMetadata{Preset: "default", Seed: 42, Dt: 0.1, Duration: 0.5, Bodies: NewBodyRecords(bodies)}, res)
	require.NoError(t, err)
	assert.Equal(t, "default_1700000000", runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 5, meta.Steps)
	require.Len(t, meta.Bodies, 9)
	assert.Equal(t, bodies[3], meta.Bodies[3].Body())

	frames, err := st.LoadFrames(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Frames, frames)
	assert.Equal(t, 0.5, frames[3].Params.OrbitSpeed)
}

func TestStoreSaveSameSecond(t *testing.T) {
	_, res := record(t)
	st := fixedStore(t.TempDir())

	first, err := st.Save(RunMetadata{}, res)
	require.NoError(t, err)
	second, err := st.Save(RunMetadata{}, res)
	require.NoError(t, err)

	assert.Equal(t, "run_1700000000", first)
	assert.Equal(t, "run_1700000000_2", second)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, res := record(t)
	_, err = st.Save(RunMetadata{Preset: "fast"}, res)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "fast", runs[0].Preset)
}

func TestStoreSaveNilResult(t *testing.T) {
	_, err := New(t.TempDir()).Save(RunMetadata{}, nil)
	assert.Error(t, err)
}

func TestReadFramesCSVErrors(t *testing.T) {
	frames, err := ReadFramesCSV(strings.NewReader(strings.Join(framesHeader, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, frames)

	_, err = ReadFramesCSV(strings.NewReader("time,body,rot_y,rot_x,x,y,z,rotation_speed,orbit_speed\n0,sun,a,0,0,0,0,4,0.8\n"))
	assert.ErrorContains(t, err, "line 2 column rot_y")

	_, err = ReadFramesCSV(strings.NewReader("time,body\n0,sun\n"))
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	_, res := record(t)
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, RunMetadata{ID: "r1", Seed: 3}, res))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "r1", got.Run.ID)
	assert.Equal(t, res.StepsTaken, got.Steps)
	require.Len(t, got.Frames, len(res.Frames))

	earth, ok := res.Frames[2].Lookup(kinematics.Earth)
	require.True(t, ok)
	pose := got.Frames[2].Bodies[kinematics.Earth]
	assert.Equal(t, earth.Position.X, pose.Position[0])
	assert.Equal(t, earth.Rotation.Y, pose.Rotation[0])
}
