// Package analysis measures recorded runs.
//
// Orbits are periodic in time, so the dominant frequency of a body's x
// coordinate gives its orbital period. [Orbits] compares that measurement
// with the period implied by the body's phase speed and the orbit speed
// multiplier.
package analysis
