// Package kinematics computes the per-frame pose of every body in the orrery.
//
// The package is a set of pure functions over three inputs:
//
//   - [Body]: the fixed attributes of one celestial body
//   - [Params]: the speed multipliers in effect for the current frame
//   - elapsed time in seconds
//
// Poses are absolute. Every frame is recomputed from t directly, so jumping
// or rewinding the clock yields a consistent pose with no accumulated drift.
//
// # Example
//
//	sys, _ := kinematics.NewSystem(kinematics.DefaultBodies())
//	frame := sys.Advance(clock.ElapsedSeconds(), store.Params())
//	earth, _ := frame.Lookup(kinematics.Earth)
//
// # Orbit phase
//
// A body's phase speed is applied to t before the global orbit multiplier:
// angle = (t * PhaseSpeed) * OrbitSpeed.
package kinematics
