package fluid

import (
	"github.com/gothermo/thermocore/quantity"
)

// SaturatedLiquid and SaturatedVapor are the "phase<PhaseTag>(fluid)"
// proxies of §4.E: each flashes a copy of the fluid to the saturated-
// liquid (X=0) or saturated-vapor (X=1) endpoint at the fluid's current
// temperature. Neither checks the fluid's current phase or fills the
// results with NaN: outside the two-phase envelope the result is
// whatever the backend's SetTX yields at that temperature, including
// any error it returns.
func SaturatedLiquid(f *Fluid) (*FlashResults, error) {
	return saturatedEndpoint(f, 0)
}

func SaturatedVapor(f *Fluid) (*FlashResults, error) {
	return saturatedEndpoint(f, 1)
}

func saturatedEndpoint(f *Fluid, quality float64) (*FlashResults, error) {
	clone, ok := f.Clone()
	if !ok {
		clone = f
	}
	t := clone.Adapter().T()
	return clone.Flash(quantity.PropT, t, quantity.PropX, quality)
}

// SaturationP returns the saturation pressure at temperature t, NaN above
// the critical temperature (§4.E "saturation<T|P>", §3.4).
func SaturationP(f *Fluid, t float64) (float64, error) {
	return f.Adapter().Psat(t)
}

// SaturationT returns the saturation temperature at pressure p.
func SaturationT(f *Fluid, p float64) (float64, error) {
	return f.Adapter().Tsat(p)
}

// CriticalT and CriticalP return the fluid's critical-point coordinates
// (§4.E "critical<T|P>").
func CriticalT(f *Fluid) float64 { return f.Backend().Tc() }
func CriticalP(f *Fluid) float64 { return f.Backend().Pc() }

// MinT, MaxT, MinP, MaxP return the backend's validity envelope
// (§4.E "min<T|P>", "max<T|P>").
func MinT(f *Fluid) float64 { return f.Backend().Tmin() }
func MaxT(f *Fluid) float64 { return f.Backend().Tmax() }
func MinP(f *Fluid) float64 { return f.Backend().Pmin() }
func MaxP(f *Fluid) float64 { return f.Backend().Pmax() }
