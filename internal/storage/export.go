package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/sim"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Steps  int           `json:"steps"`
	Times  []float64     `json:"times"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Time   float64                            `json:"time"`
	Params kinematics.Params                  `json:"params"`
	Bodies map[kinematics.BodyID]ExportedPose `json:"bodies"`
}

type ExportedPose struct {
	Rotation [2]float64 `json:"rotation"`
	Position [3]float64 `json:"position"`
}

// ExportJSON writes meta and every frame of result as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Run:    meta,
		Steps:  result.StepsTaken,
		Times:  result.Times,
		Frames: make([]ExportFrame, len(result.Frames)),
	}

	for i, f := range result.Frames {
		ef := ExportFrame{
			Time:   f.Time,
			Params: f.Params,
			Bodies: make(map[kinematics.BodyID]ExportedPose, len(f.Transforms)),
		}
		for _, tr := range f.Transforms {
			ef.Bodies[tr.ID] = ExportedPose{
				Rotation: [2]float64{tr.Rotation.Y, tr.Rotation.X},
				Position: [3]float64{tr.Position.X, tr.Position.Y, tr.Position.Z},
			}
		}
		data.Frames[i] = ef
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
