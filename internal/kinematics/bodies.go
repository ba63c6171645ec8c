package kinematics

// DefaultBodies returns the sun and the eight planets with their orbit radii,
// spin rates and display sizes. Phase speeds are left at zero; they are
// assigned at startup by the parameter store.
func DefaultBodies() []Body {
	return []Body{
		{ID: Sun, OrbitRadius: 0, Rates: AxisRates{Y: 0.0, X: 0.07}, Size: 1.0},
		{ID: Mercury, OrbitRadius: -1.5, Rates: AxisRates{Y: 0.05, X: 0.1}, Size: 0.2},
		{ID: Venus, OrbitRadius: 2.5, Rates: AxisRates{Y: 0.03, X: 0.09}, Size: 0.4},
		{ID: Earth, OrbitRadius: -3.8, Rates: AxisRates{Y: 0.1, X: 0.15}, Size: 0.5},
		{ID: Mars, OrbitRadius: 5.1, Rates: AxisRates{Y: 0.04, X: 0.08}, Size: 0.4},
		{ID: Jupiter, OrbitRadius: -6.8, Rates: AxisRates{Y: 0.03, X: 0.07}, Size: 0.8},
		{ID: Saturn, OrbitRadius: 8.8, Rates: AxisRates{Y: 0.04, X: 0.08}, Size: 0.65},
		{ID: Uranus, OrbitRadius: -10.5, Rates: AxisRates{Y: 0.05, X: 0.09}, Size: 0.5},
		{ID: Neptune, OrbitRadius: 12, Rates: AxisRates{Y: 0.1, X: 0.1}, Size: 0.4},
	}
}

// BodyIDs lists the default body identifiers in table order.
func BodyIDs() []BodyID {
	return []BodyID{Sun, Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
}
