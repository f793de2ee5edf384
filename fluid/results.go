package fluid

import (
	thermocore "github.com/gothermo/thermocore"
	"github.com/gothermo/thermocore/adapter"
	"github.com/gothermo/thermocore/flash"
	"github.com/gothermo/thermocore/quantity"
	"github.com/gothermo/thermocore/registry"
	"github.com/gothermo/thermocore/units"
)

// FlashResults is the outcome of a Fluid.Flash call: the property
// adapter for the converged (or best-effort) state, plus solver
// diagnostics (§4.E, §4.D.6).
type FlashResults struct {
	Adapter *adapter.Adapter
	Solve   flash.Result
}

// Converged reports whether the solve satisfied Options.Tolerance.
func (r *FlashResults) Converged() bool { return r.Solve.Converged }

// Typed property accessors are the "static proxy" of §4.E: each reads a
// single named property off the converged state, unit-tagged where the
// property is extensive.

func (r *FlashResults) T() float64             { return r.Adapter.T() }
func (r *FlashResults) P() float64             { return r.Adapter.P() }
func (r *FlashResults) X() float64             { return r.Adapter.X() }
func (r *FlashResults) H(tag units.Tag) float64 { return r.Adapter.H(tag) }
func (r *FlashResults) S(tag units.Tag) float64 { return r.Adapter.S(tag) }
func (r *FlashResults) U(tag units.Tag) float64 { return r.Adapter.U(tag) }
func (r *FlashResults) V(tag units.Tag) float64 { return r.Adapter.V(tag) }
func (r *FlashResults) Rho(tag units.Tag) float64 {
	return r.Adapter.Rho(tag)
}
func (r *FlashResults) G(tag units.Tag) float64     { return r.Adapter.G(tag) }
func (r *FlashResults) A(tag units.Tag) float64     { return r.Adapter.AHelm(tag) }
func (r *FlashResults) Z() float64                  { return r.Adapter.Z() }
func (r *FlashResults) Cp(tag units.Tag) float64    { return r.Adapter.Cp(tag) }
func (r *FlashResults) Cv(tag units.Tag) float64    { return r.Adapter.Cv(tag) }
func (r *FlashResults) W() float64                  { return r.Adapter.W() }
func (r *FlashResults) Kappa() float64              { return r.Adapter.Kappa() }
func (r *FlashResults) Alpha() float64               { return r.Adapter.Alpha() }
func (r *FlashResults) Phase() quantity.Phase       { return r.Adapter.Phase() }

// Property reads a single property by enum, the dispatch point the
// dynamic and named proxies below both funnel through.
func (r *FlashResults) Property(p quantity.Property, tag units.Tag) (float64, error) {
	switch p {
	case quantity.PropT:
		return r.T(), nil
	case quantity.PropP:
		return r.P(), nil
	case quantity.PropX:
		return r.X(), nil
	case quantity.PropH:
		return r.H(tag), nil
	case quantity.PropS:
		return r.S(tag), nil
	case quantity.PropU:
		return r.U(tag), nil
	case quantity.PropV:
		return r.V(tag), nil
	case quantity.PropRho:
		return r.Rho(tag), nil
	case quantity.PropG:
		return r.G(tag), nil
	case quantity.PropA:
		return r.A(tag), nil
	case quantity.PropZ:
		return r.Z(), nil
	case quantity.PropCp:
		return r.Cp(tag), nil
	case quantity.PropCv:
		return r.Cv(tag), nil
	case quantity.PropW:
		return r.W(), nil
	case quantity.PropKappa:
		return r.Kappa(), nil
	case quantity.PropAlpha:
		return r.Alpha(), nil
	case quantity.PropEta, quantity.PropNu, quantity.PropTC, quantity.PropPR:
		// No transport model is wired in: NaN inside the two-phase
		// region, unavailable (an error) elsewhere.
		if x := r.X(); x > 0 && x < 1 {
			return quantity.Unknown(), nil
		}
		return 0, thermocore.NewError(thermocore.UnsupportedSpecification, "FlashResults.Property",
			"no accessor for this property", nil)
	default:
		return 0, thermocore.NewError(thermocore.UnsupportedSpecification, "FlashResults.Property",
			"no accessor for this property", nil)
	}
}

// Properties is the "static proxy" variant taking several enums at once
// (§4.E "properties<Qs...>()"), returned as a map keyed by the same
// enums so callers destructure however suits them.
func (r *FlashResults) Properties(tag units.Tag, props ...quantity.Property) (map[quantity.Property]float64, error) {
	out := make(map[quantity.Property]float64, len(props))
	for _, p := range props {
		v, err := r.Property(p, tag)
		if err != nil {
			return nil, err
		}
		out[p] = v
	}
	return out, nil
}

// PropertiesByName is the "dynamic proxy" of §4.E: a runtime list of
// string aliases resolved through the registry, for callers that build
// the requested property list at runtime (e.g. from a config file or
// CLI flag) rather than at compile time.
func (r *FlashResults) PropertiesByName(tag units.Tag, names []string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		p := registry.Lookup(name)
		if p == quantity.PropUnknown {
			return nil, thermocore.NewError(thermocore.InvalidInput, "FlashResults.PropertiesByName",
				"unrecognized property alias", nil)
		}
		v, err := r.Property(p, tag)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}
