package viz

import (
	"math"
	"sort"

	"github.com/san-kum/solarsim/internal/kinematics"
)

const orbitSegments = 72

// Scene draws frames onto a braille canvas through an OrbitCamera. It is the
// terminal renderer for the frame loop.
type Scene struct {
	canvas     *Canvas
	camera     *OrbitCamera
	bodies     map[kinematics.BodyID]kinematics.Body
	textured   map[kinematics.BodyID]bool
	showOrbits bool
	last       kinematics.Frame
}

func NewScene(bodies []kinematics.Body, camera *OrbitCamera, w, h int) *Scene {
	s := &Scene{
		canvas:     NewCanvas(w, h),
		camera:     camera,
		bodies:     make(map[kinematics.BodyID]kinematics.Body, len(bodies)),
		textured:   make(map[kinematics.BodyID]bool),
		showOrbits: true,
	}
	for _, b := range bodies {
		s.bodies[b.ID] = b
	}
	s.Resize(w, h)
	return s
}

func (s *Scene) Canvas() *Canvas        { return s.canvas }
func (s *Scene) Last() kinematics.Frame { return s.last }
func (s *Scene) ToggleOrbits()          { s.showOrbits = !s.showOrbits }

// SetTextured marks a body's texture as loaded; textured bodies are drawn
// filled, the rest as outlines.
func (s *Scene) SetTextured(id kinematics.BodyID, ok bool) {
	s.textured[id] = ok
}

// Resize changes the output size and the camera aspect ratio.
func (s *Scene) Resize(w, h int) {
	s.canvas.Resize(w, h)
	pw, ph := s.canvas.PixelSize()
	s.camera.SetAspect(float64(pw) / float64(ph))
}

type projected struct {
	tr     kinematics.Transform
	x, y   int
	depth  float64
	radius int
}

// Render redraws the canvas for f.
func (s *Scene) Render(f kinematics.Frame) {
	s.last = f
	s.canvas.Clear()
	pw, ph := s.canvas.PixelSize()

	if s.showOrbits {
		for _, tr := range f.Transforms {
			if b, ok := s.bodies[tr.ID]; ok && !b.Stationary() {
				s.drawOrbit(math.Abs(b.OrbitRadius), pw, ph)
			}
		}
	}

	items := make([]projected, 0, len(f.Transforms))
	for _, tr := range f.Transforms {
		x, y, depth, _ := s.camera.Project(fromWorld(tr.Position), pw, ph)
		if depth <= s.camera.Near || depth >= s.camera.Far {
			continue
		}
		size := 0.3
		if b, ok := s.bodies[tr.ID]; ok && b.Size > 0 {
			size = b.Size
		}
		r := int(math.Round(s.camera.ScreenRadius(size, depth, ph)))
		items = append(items, projected{tr: tr, x: x, y: y, depth: depth, radius: r})
	}
	// far to near
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })

	for _, it := range items {
		if s.textured[it.tr.ID] {
			s.canvas.FillDisc(it.x, it.y, it.radius)
		} else {
			s.canvas.DrawCircle(it.x, it.y, it.radius)
		}
		if it.radius >= 2 {
			// spin marker
			a := it.tr.Rotation.Y
			mx := it.x + int(math.Round(float64(it.radius)*math.Cos(a)))
			my := it.y - int(math.Round(float64(it.radius)*math.Sin(a)))
			s.canvas.DrawLine(it.x, it.y, mx, my)
		}
	}
}

func (s *Scene) drawOrbit(radius float64, pw, ph int) {
	var px, py int
	var prev bool
	for i := 0; i <= orbitSegments; i++ {
		a := 2 * math.Pi * float64(i) / orbitSegments
		p := Vec3{X: radius * math.Cos(a), Z: radius * math.Sin(a)}
		x, y, depth, _ := s.camera.Project(p, pw, ph)
		ok := depth > s.camera.Near && depth < s.camera.Far
		if ok && prev && i%2 == 0 {
			s.canvas.DrawLine(px, py, x, y)
		}
		px, py, prev = x, y, ok
	}
}
