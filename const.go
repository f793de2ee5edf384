package thermocore

import "math"

const (
	// RSI is the universal gas constant in SI units, J/(mol*K).
	RSI = 8.314
	// AbsTolFallback is an absolute tolerance for residuals near zero,
	// where a relative tolerance is meaningless. No solver in this module
	// reads it; the flash solvers use Options.Tolerance.
	AbsTolFallback = 1e-9
	// MaxIterations bounds both the 1-D bracketed solver and the 2-D
	// damped Newton solver (§4.D.5).
	MaxIterations = 100
)

// Eps is the default flash convergence tolerance: sqrt of machine
// epsilon, per §4.D ("default epsilon = sqrt of double epsilon").
var Eps = math.Sqrt(2.220446049250313e-16)
