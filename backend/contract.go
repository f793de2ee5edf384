// Package backend defines the narrow contract an equation-of-state
// implementation must satisfy for the flash engine and adapter to drive
// it (§4.B, §6.1). It is purely in SI molar units; unit conversion at the
// API boundary is the adapter's job (units.Tag), not the backend's.
package backend

// Contract is the minimum surface every backend exposes. Optional
// capabilities (V, G, A, Z, Cp, Cv, W, Kappa, Alpha, saturation,
// phase classification, a backward-correlation guess oracle, and
// cloning) are feature-detected via the Optional* interfaces below
// rather than being part of this interface, mirroring the teacher's
// cubic.EOSType: a small required surface plus capability interfaces
// callers type-assert for.
type Contract interface {
	// State setters for the natively-supported pairs (§4.B). A backend
	// that does not support a given pair simply does not implement the
	// matching Setter interface; the adapter detects this via a type
	// assertion and signals UnsupportedSpecification only if the flash
	// engine actually needs that call (§4.C.1).
	SetterPT
	SetterPX
	SetterTX

	// Current-state accessors, always present.
	T() float64
	P() float64
	Rho() float64
	X() float64
	H() float64
	S() float64
	U() float64

	// Envelope constants, always present.
	MolarMass() float64
	Pc() float64
	Tc() float64
	Tmin() float64
	Tmax() float64
	Pmin() float64
	Pmax() float64
}

// SetterPT sets the backend's state by pressure and temperature.
type SetterPT interface {
	SetPT(p, t float64) error
}

// SetterPX sets the backend's state by pressure and vapor quality.
type SetterPX interface {
	SetPX(p, x float64) error
}

// SetterTX sets the backend's state by temperature and vapor quality.
type SetterTX interface {
	SetTX(t, x float64) error
}

// SetterPH, SetterPS, SetterPU, SetterDP, SetterDT, SetterDS, SetterDH,
// SetterDU, SetterHS, SetterTS are the remaining natively-supported
// pairs a backend may optionally implement (§4.B); the flash engine
// forwards to these without iterating whenever present.
type SetterPH interface{ SetPH(p, h float64) error }
type SetterPS interface{ SetPS(p, s float64) error }
type SetterPU interface{ SetPU(p, u float64) error }
type SetterDP interface{ SetRhoP(rho, p float64) error }
type SetterDT interface{ SetRhoT(rho, t float64) error }
type SetterDS interface{ SetRhoS(rho, s float64) error }
type SetterDH interface{ SetRhoH(rho, h float64) error }
type SetterDU interface{ SetRhoU(rho, u float64) error }
type SetterHS interface{ SetHS(h, s float64) error }
type SetterTS interface{ SetTS(t, s float64) error }

// OptionalVolume, ... expose properties a backend may compute natively
// instead of falling back to the adapter's identities (§4.C table).
type OptionalVolume interface{ V() float64 }
type OptionalGibbs interface{ G() float64 }
type OptionalHelmholtz interface{ A() float64 }
type OptionalCompressibility interface{ Z() float64 }
type OptionalCp interface{ Cp() float64 }
type OptionalCv interface{ Cv() float64 }
type OptionalSpeedOfSound interface{ W() float64 }
type OptionalKappa interface{ Kappa() float64 }
type OptionalAlpha interface{ Alpha() float64 }

// OptionalSaturation lets a backend compute its own saturation curve
// instead of the adapter's X=1/2 probe fallback (§4.C).
type OptionalSaturation interface {
	Psat(t float64) (float64, error)
	Tsat(p float64) (float64, error)
}

// OptionalPhase lets a backend classify its own phase instead of the
// adapter applying the §3.4 predicates.
type OptionalPhase interface {
	PhaseName() string
}

// OptionalGuess is the "backward correlation" oracle §4.D.2 step 1 and
// §4.D.5 reference: a fast, approximate inverse used to seed the flash
// solver's initial bracket/iterate before it refines with root search.
type OptionalGuess interface {
	// GuessPT returns an approximate (p, t) for the given spec-pair
	// values, or ok=false if the backend has no correlation for it.
	GuessPT(prop1 string, v1 float64, prop2 string, v2 float64) (p, t float64, ok bool)
}

// Cloneable lets the adapter branch the backend state for auxiliary
// queries (two-phase mixing, saturation probes) without perturbing the
// caller's primary state (§3.3, §4.C, §9 "copy-on-branch discipline").
// Without this capability the adapter's Psat/Tsat probe fallback reports
// UnsupportedSpecification, two-phase mixing of H, S, U and V falls back
// to the backend's unmixed reading, and the numerical derivatives (Cp,
// Cv, W, Kappa, Alpha) return NaN.
type Cloneable interface {
	Clone() Contract
}
