package cubicbackend

import (
	"errors"
	"math"
)

// saturationPressure finds the pressure at which the cubic EOS's
// liquid-like and vapor-like roots have equal fugacity at temperature T,
// using the Wilson-equation initial guess and a damped fugacity-ratio
// update (the teacher's cubic.SaturationPressure, generalized to any
// Family via c.Type rather than a single hard-coded EOS).
func saturationPressure(c *cfg, t float64) (float64, error) {
	if t >= c.Tc {
		return c.Pc, nil
	}

	tr := t / c.Tc
	p := c.Pc * math.Exp(5.373*(1+c.Acentric)*(1-1/tr))
	if c.Guess > 0 {
		p = c.Guess
	}

	for range 100 {
		iter := *c
		iter.P = p
		iter.T = t

		volRes, err := solveForVolume(&iter)
		if err != nil {
			return 0, err
		}
		roots := volRes.realRoots()

		if len(roots) < 3 {
			if len(roots) == 0 {
				return 0, errors.New("cubicbackend: no real roots while searching for saturation pressure")
			}
			if roots[0] < 2*volRes.B {
				p *= 0.9
			} else {
				p *= 1.1
			}
			continue
		}

		vl, vv := roots[0], roots[len(roots)-1]
		rt := c.R * t
		aDim := volRes.A * p / (rt * rt)
		bDim := volRes.B * p / rt
		zl := p * vl / rt
		zv := p * vv / rt

		if zl <= bDim || zv <= bDim {
			p *= 0.95
			continue
		}

		phiL := logFugacityCoeff(&iter, zl, aDim, bDim)
		phiV := logFugacityCoeff(&iter, zv, aDim, bDim)

		if math.Abs(phiL-phiV) < 1e-8 {
			return p, nil
		}

		ratio := math.Exp(phiL - phiV)
		if ratio > 1.2 {
			ratio = 1.2
		} else if ratio < 0.8 {
			ratio = 0.8
		}
		p *= ratio
	}

	return 0, errors.New("cubicbackend: saturation pressure search did not converge")
}
