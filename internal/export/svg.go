package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/solarsim/internal/kinematics"
	"github.com/san-kum/solarsim/internal/viz"
)

const background = "#0a0a0a"

var bodyColors = map[kinematics.BodyID]string{
	kinematics.Sun:     "#ffcc33",
	kinematics.Mercury: "#a39e99",
	kinematics.Venus:   "#e6c27a",
	kinematics.Earth:   "#4a90d9",
	kinematics.Mars:    "#c1440e",
	kinematics.Jupiter: "#d8a46b",
	kinematics.Saturn:  "#e3d08f",
	kinematics.Uranus:  "#9fe3e8",
	kinematics.Neptune: "#4166f5",
}

func bodyColor(id kinematics.BodyID) string {
	if c, ok := bodyColors[id]; ok {
		return c
	}
	return "#ffffff"
}

func header(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

// FrameToSVG draws f from above: world x to the right, world z downwards.
// Orbit rings come from bodies, discs from the frame; scale is pixels per
// world unit.
func FrameToSVG(f kinematics.Frame, bodies []kinematics.Body, scale float64) string {
	if scale <= 0 {
		scale = 20
	}
	extent := 1.0
	for _, b := range bodies {
		extent = math.Max(extent, math.Abs(b.OrbitRadius)+b.Size)
	}
	for _, tr := range f.Transforms {
		extent = math.Max(extent, math.Hypot(tr.Position.X, tr.Position.Z))
	}
	extent++

	size := 2 * extent * scale
	c := size / 2
	sizes := make(map[kinematics.BodyID]float64, len(bodies))

	var sb strings.Builder
	header(&sb, size, size)

	sb.WriteString(`<g fill="none" stroke="#333344" stroke-dasharray="4 4">` + "\n")
	for _, b := range bodies {
		sizes[b.ID] = b.Size
		if b.Stationary() {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", c, c, math.Abs(b.OrbitRadius)*scale)
	}
	sb.WriteString("</g>\n")

	for _, tr := range f.Transforms {
		r := sizes[tr.ID]
		if r <= 0 {
			r = 0.3
		}
		x := c + tr.Position.X*scale
		y := c + tr.Position.Z*scale
		fmt.Fprintf(&sb, `<circle id="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			tr.ID, x, y, r*scale, bodyColor(tr.ID))
	}

	fmt.Fprintf(&sb, `<text x="8" y="18" fill="#8888aa" font-family="monospace" font-size="12">t=%.2fs rotation=%.2f orbit=%.2f</text>`+"\n",
		f.Time, f.Params.RotationSpeed, f.Params.OrbitSpeed)
	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, one dot per sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	pw, ph := canvas.PixelSize()

	var sb strings.Builder
	header(&sb, float64(pw)*scale, float64(ph)*scale)
	sb.WriteString(`<g fill="#e8e8ff">` + "\n")

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailToSVG plots the top-down path of one body across frames, fitted to
// width x height.
func TrailToSVG(frames []kinematics.Frame, id kinematics.BodyID, width, height int) string {
	type point struct{ X, Y float64 }
	points := make([]point, 0, len(frames))
	for _, f := range frames {
		if tr, ok := f.Lookup(id); ok {
			points = append(points, point{tr.Position.X, tr.Position.Z})
		}
	}
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// pad by 10%
	rangeX := math.Max(maxX-minX, 1)
	rangeY := math.Max(maxY-minY, 1)
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, bodyColor(id))
	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
