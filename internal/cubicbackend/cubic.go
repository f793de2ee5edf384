package cubicbackend

import (
	"fmt"
	"math"
	"slices"

	thermocore "github.com/gothermo/thermocore"
)

// cfg holds the per-evaluation state for a cubic EOS calculation,
// adapted from the teacher's cubic.EOSCfg.
type cfg struct {
	Type     eosType
	T        float64
	P        float64
	Tc       float64
	Pc       float64
	Acentric float64
	R        float64
	// Guess seeds saturationPressure's initial pressure when positive
	// (e.g. an Antoine-equation estimate); zero falls back to the
	// Wilson-equation guess.
	Guess float64
}

// volumeResult carries the three (possibly complex) roots of the cubic
// volume equation.
type volumeResult struct {
	A, B    float64
	Volumes [3]complex128
}

// realRoots returns the real roots in ascending order: the smallest is
// the liquid-like branch, the largest the vapor-like branch.
func (vr *volumeResult) realRoots() []float64 {
	res := make([]float64, 0, 3)
	for _, v := range vr.Volumes {
		if math.Abs(imag(v)) < 1e-9 {
			res = append(res, real(v))
		}
	}
	slices.Sort(res)
	return res
}

func calculateB(omega, r, tc, pc float64) float64 { return omega * r * tc / pc }

func calculateA(psi, alpha, r, tc, pc float64) float64 { return psi * alpha * r * r * tc * tc / pc }

// solveForVolume solves the cubic equation of state for molar volume.
func solveForVolume(c *cfg) (*volumeResult, error) {
	if c.T <= 0 {
		return nil, thermocore.ErrTemp
	}
	if c.P <= 0 {
		return nil, thermocore.ErrPressure
	}
	if c.Pc <= 0 || c.Tc <= 0 {
		return nil, thermocore.ErrCriticalProp
	}
	if c.R <= 0 {
		return nil, thermocore.ErrUniversalConst
	}

	tr := c.T / c.Tc
	alpha := c.Type.Alpha(tr, c.Acentric)
	params := c.Type.Params()

	a := calculateA(params.Psi, alpha, c.R, c.Tc, c.Pc)
	b := calculateB(params.Omega, c.R, c.Tc, c.Pc)

	x := params.Epsilon + params.Sigma
	y := params.Epsilon * params.Sigma
	vIdeal := c.R * c.T / c.P

	e := 1.0
	f := b*(x-1) - vIdeal
	g := b*((y-x)*b-(x*vIdeal)) + a/c.P
	h := -y*b*b*(b+vIdeal) - a*b/c.P

	roots, err := thermocore.SolveCubic(e, f, g, h)
	if err != nil {
		return nil, fmt.Errorf("cubicbackend: failed to solve cubic: %w", err)
	}
	return &volumeResult{A: a, B: b, Volumes: roots}, nil
}

// aAndB recomputes the EOS a(T) and b parameters without solving the
// cubic, used by the departure-function and fugacity calculations that
// already have a molar volume in hand.
func aAndB(c *cfg) (a, b float64) {
	tr := c.T / c.Tc
	alpha := c.Type.Alpha(tr, c.Acentric)
	params := c.Type.Params()
	return calculateA(params.Psi, alpha, c.R, c.Tc, c.Pc), calculateB(params.Omega, c.R, c.Tc, c.Pc)
}

// logFugacityCoeff returns ln(phi) for a given compressibility factor Z
// and dimensionless EOS parameters A = aP/(RT)^2, B = bP/RT.
func logFugacityCoeff(c *cfg, z, aDim, bDim float64) float64 {
	params := c.Type.Params()
	sigma, epsilon := params.Sigma, params.Epsilon

	term1 := z - 1 - math.Log(z-bDim)
	diff := epsilon - sigma

	var term2 float64
	if math.Abs(diff) < 1e-9 {
		term2 = -aDim / z
	} else {
		term2 = (aDim / (bDim * diff)) * math.Log((z+sigma*bDim)/(z+epsilon*bDim))
	}
	return term1 + term2
}
