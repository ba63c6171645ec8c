// Package viz renders the solar system in the terminal.
//
// A [Scene] projects each frame through an [OrbitCamera] onto a braille
// [Canvas]. [Model] is the Bubble Tea program around it: it drives the
// frame loop and exposes the two speed multipliers as sliders.
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	Tab      - Select rotation or orbit multiplier
//	Up/Down  - Adjust selected multiplier by 0.1
//	Lft/Rgt  - Adjust selected multiplier by 0.01
//	C        - Reset camera
//	W/A/S/D  - Orbit camera
//	+/-      - Zoom
//	O        - Toggle orbit rings
//	F        - Cycle focus body
//	T        - Cycle color themes
//	?        - Show help overlay
package viz
