package cubicbackend

import (
	"math"

	"github.com/gothermo/thermocore/antoine"
)

// idealCp is a two-term ideal-gas heat capacity correlation,
// Cp_ig(T) = A + B*T (J/mol-K), used for the ideal-gas reference state
// in the departure-function property model (§4.C's "backend supplies H,
// S, U" contract needs something to supply them from).
type idealCp struct {
	A, B float64
}

func (c idealCp) integral(tLow, tHigh float64) float64 {
	return c.A*(tHigh-tLow) + c.B/2*(tHigh*tHigh-tLow*tLow)
}

func (c idealCp) logIntegral(tLow, tHigh float64) float64 {
	// integral of Cp/T dT = A*ln(T) + B*T, evaluated between bounds.
	return c.A*math.Log(tHigh/tLow) + c.B*(tHigh-tLow)
}

// invertH solves integral(tLow, T) = target for T. The integral is
// quadratic in T, so the inverse is exact; the root nearest the linear
// (constant-Cp) estimate is the physical one.
func (c idealCp) invertH(tLow, target float64) float64 {
	linear := tLow + target/c.A
	if c.B == 0 {
		return linear
	}
	aQ, bQ := c.B/2, c.A
	cQ := -(target + c.A*tLow + c.B/2*tLow*tLow)
	disc := bQ*bQ - 4*aQ*cQ
	if disc < 0 {
		return linear
	}
	sqrtDisc := math.Sqrt(disc)
	r1, r2 := (-bQ+sqrtDisc)/(2*aQ), (-bQ-sqrtDisc)/(2*aQ)
	if math.Abs(r1-linear) <= math.Abs(r2-linear) {
		return r1
	}
	return r2
}

// invertS solves logIntegral(tLow, T) = target for T by damped Newton
// iteration, seeded from the pure-log (constant-Cp) estimate.
func (c idealCp) invertS(tLow, target float64, iterations int) float64 {
	t := tLow
	if c.A > 0 {
		t = tLow * math.Exp(target/c.A)
	}
	if t <= 0 {
		t = tLow
	}
	for i := 0; i < iterations; i++ {
		f := c.logIntegral(tLow, t) - target
		df := c.A/t + c.B
		if df == 0 {
			break
		}
		next := t - f/df
		if next <= 0 {
			next = t / 2
		}
		t = next
	}
	return t
}

// invertU solves integral(tLow, T) - R*(T-tLow) = target for T by damped
// Newton iteration, seeded from the H-style closed-form inversion.
func (c idealCp) invertU(tLow, target, r float64, iterations int) float64 {
	t := c.invertH(tLow, target)
	if t <= 0 {
		t = tLow
	}
	for i := 0; i < iterations; i++ {
		f := c.integral(tLow, t) - r*(t-tLow) - target
		df := c.A + c.B*t - r
		if df == 0 {
			break
		}
		next := t - f/df
		if next <= 0 {
			next = t / 2
		}
		t = next
	}
	return t
}

// Species is the substance-specific data a Backend needs: critical
// constants and acentric factor for the cubic EOS (teacher's
// substance.Substance.Critical), plus an ideal-gas Cp correlation for
// the departure-function property model.
type Species struct {
	Name     string
	MW       float64 // kg/mol
	Acentric float64
	Tc       float64 // K
	Pc       float64 // Pa
	Vc       float64 // m^3/mol
	Zc       float64
	Family   Family
	Cp       idealCp

	// Antoine is an optional fast correlation for the saturation
	// pressure, used only to seed saturationPressure's fugacity-equality
	// iteration (nil falls back to the Wilson-equation guess).
	Antoine *antoine.Antoine
}

// antoineGuess returns a fast saturation-pressure estimate in Pa from the
// species' Antoine correlation, or 0 if none is defined or t falls
// outside its valid range (in which case saturationPressure falls back
// to its own Wilson-equation guess).
func (s Species) antoineGuess(t float64) float64 {
	if s.Antoine == nil {
		return 0
	}
	kPa, err := s.Antoine.Pressure(t - 273.15)
	if err != nil || kPa <= 0 {
		return 0
	}
	return kPa * 1000
}

// Water, Ethane and Ethanol carry over the teacher's demo substances
// (examples/main.go), re-expressed as Species. PengRobinson is used for
// water as an approximation; a real steam-table backend (IAPWS-IF97) is
// outside this package's scope. Antoine constants are the standard
// literature values (A, B in the kPa/°C convention antoine.Antoine
// expects); they only ever seed the cubic EOS's own saturation search.
var (
	Water = Species{
		Name: "water", MW: 0.0180153, Acentric: 0.344,
		Tc: 647.10, Pc: 22.064e6, Vc: 55.95e-6, Zc: 0.229,
		Family: PengRobinson,
		Cp:     idealCp{A: 30.0, B: 0.0105},
		Antoine: &antoine.Antoine{
			Name: "water", A: 16.3872, B: 3885.70, C: 230.170,
			Range: antoine.TempRange{Low: 1, High: 100},
		},
	}
	Ethane = Species{
		Name: "ethane", MW: 0.030070, Acentric: 0.099,
		Tc: 305.32, Pc: 4.872e6, Vc: 145.5e-6, Zc: 0.279,
		Family: PengRobinson,
		Cp:     idealCp{A: 5.5, B: 0.175},
		Antoine: &antoine.Antoine{
			Name: "ethane", A: 13.6487, B: 1511.42, C: 255.99,
			Range: antoine.TempRange{Low: -142, High: 32},
		},
	}
	Ethanol = Species{
		Name: "ethanol", MW: 0.046069, Acentric: 0.645,
		Tc: 514.00, Pc: 6.268e6, Vc: 167.1e-6, Zc: 0.240,
		Family: PengRobinson,
		Cp:     idealCp{A: 19.0, B: 0.2121},
		Antoine: &antoine.Antoine{
			Name: "ethanol", A: 16.8958, B: 3795.17, C: 230.918,
			Range: antoine.TempRange{Low: -2, High: 100},
		},
	}
)
