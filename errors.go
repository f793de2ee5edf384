// Package thermocore provides the core flash engine for a pluggable
// equation-of-state backend: the quantity algebra, the backend adapter,
// the flash solver, and the unified property facade.
package thermocore

import "fmt"

// Kind classifies the structured errors the core surfaces (§6.4).
type Kind int

const (
	// OutOfRange marks an input beyond the backend's EOS validity region.
	OutOfRange Kind = iota
	// UnsupportedSpecification marks a backend missing a setter the flash
	// engine needs, with no adapter fallback available.
	UnsupportedSpecification
	// NonConvergence marks a solver that exhausted its iteration cap.
	NonConvergence
	// InvalidInput marks a NaN or non-finite value supplied at an entry point.
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case OutOfRange:
		return "OutOfRange"
	case UnsupportedSpecification:
		return "UnsupportedSpecification"
	case NonConvergence:
		return "NonConvergence"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// InputError is a structured error carrying a kind, the raising function,
// and the offending parameter values (§6.4, §7). It replaces the teacher's
// flat Msg-only error with the parameter map the flash engine needs to
// report "the function, the offending variable names and values" (§4.D.6).
type InputError struct {
	Kind   Kind
	Func   string
	Params map[string]float64
	Msg    string
}

func (e *InputError) Error() string {
	if e.Func == "" && len(e.Params) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s: %s %v", e.Func, e.Kind, e.Msg, e.Params)
}

// NewError builds an InputError, copying params so callers may reuse their map.
func NewError(kind Kind, fn, msg string, params map[string]float64) *InputError {
	cp := make(map[string]float64, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return &InputError{Kind: kind, Func: fn, Msg: msg, Params: cp}
}

// Wrap enriches err with function/parameter context, preserving the
// original error via %w so errors.Is/As keep working. flash.Run uses
// this to add parameter context to errors from spec validation and from
// a backend's native setter without masking them.
func Wrap(kind Kind, fn string, params map[string]float64, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %s: %v: %w", fn, kind, params, err)
}

var (
	// ErrTemp is returned when the absolute temperature is less than or equal to 0.
	ErrTemp = &InputError{Kind: InvalidInput, Msg: "absolute temperature (T) cannot be less than or equal to 0"}
	// ErrPressure is returned when the pressure is less than or equal to 0.
	ErrPressure = &InputError{Kind: InvalidInput, Msg: "pressure (P) cannot be less than or equal to 0"}
	// ErrCriticalProp is returned when a critical property (Tc or Pc) is less than or equal to 0.
	ErrCriticalProp = &InputError{Kind: InvalidInput, Msg: "critical property (Tc, Pc, Vc or Zc) cannot have a value less than or equal to 0"}
	// ErrUniversalConst is returned when the universal gas constant (R) is less than or equal to 0.
	ErrUniversalConst = &InputError{Kind: InvalidInput, Msg: "universal gas constant (R) value cannot be less than or equal to 0"}
	// ErrVirialCoeff is returned when a virial coefficient is 0.
	ErrVirialCoeff = &InputError{Kind: InvalidInput, Msg: "virial coefficient (B or C) cannot be 0"}
	// ErrVolume is returned when the molar volume is less than or equal to 0
	ErrVolume = &InputError{Kind: InvalidInput, Msg: "molar volume (V) cannot be less than or equal to 0"}
	// ErrHighPressureTwoTerm is returned when the pressure exceeds 15 bar for the two-term virial equation.
	ErrHighPressureTwoTerm = &InputError{Kind: OutOfRange, Msg: "pressure exceeds the validity limit (15 bar) for the two-term virial equation"}
	// ErrInvalidTr is returned when the reduced temperature (Tr) is less than or equal to 0.
	ErrInvalidTr = &InputError{Kind: InvalidInput, Msg: "reduced temperature (Tr) must be greater than 0"}
)
