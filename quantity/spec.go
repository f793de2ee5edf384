package quantity

import "fmt"

// Property is the runtime tag for a named quantity, used by the registry
// (§4.F) and the type-erased facade paths (§4.E, §9 "static vs dynamic
// polymorphism"). It plays the role the teacher's lee-kesler.Property
// enum plays for its four correlation families, generalized to the full
// property list of §3.1.
type Property int

const (
	PropUnknown Property = iota
	PropT
	PropP
	PropRho
	PropH
	PropS
	PropU
	PropV
	PropX
	PropA
	PropG
	PropZ
	PropKappa
	PropAlpha
	PropCp
	PropCv
	PropW
	PropEta
	PropNu
	PropTC
	PropPR
	PropMW
	PropPhase
)

// Spec is an unordered pair of two distinct state quantities (§3.2).
type Spec struct {
	A, B Property
}

// NewSpec builds a Spec, rejecting identical or inadmissible members at
// call time (the runtime-dispatch half of §3.2's "rejected at compile
// time (static dispatch) or with a well-typed error at runtime").
func NewSpec(a, b Property) (Spec, error) {
	if a == b {
		return Spec{}, fmt.Errorf("quantity: specification requires two distinct quantities, got %v twice", a)
	}
	// V and Rho are interchangeable and normalize to density (§3.2).
	if a == PropV {
		a = PropRho
	}
	if b == PropV {
		b = PropRho
	}
	if !admissible(a, b) {
		return Spec{}, fmt.Errorf("quantity: %v,%v is not an admissible specification pair", a, b)
	}
	return Spec{A: a, B: b}, nil
}

// admissiblePairs enumerates the pairs of §3.2, normalized so V has
// already been folded into Rho.
var admissiblePairs = map[[2]Property]bool{
	pairKey(PropP, PropT):   true,
	pairKey(PropP, PropH):   true,
	pairKey(PropP, PropS):   true,
	pairKey(PropP, PropU):   true,
	pairKey(PropP, PropRho): true,
	pairKey(PropP, PropX):   true,
	pairKey(PropT, PropH):   true,
	pairKey(PropT, PropS):   true,
	pairKey(PropT, PropU):   true,
	pairKey(PropT, PropRho): true,
	pairKey(PropT, PropX):   true,
	pairKey(PropH, PropS):   true,
	pairKey(PropU, PropRho): true,
	pairKey(PropH, PropRho): true,
	pairKey(PropRho, PropS): true,
	pairKey(PropRho, PropH): true,
	pairKey(PropRho, PropU): true,
	pairKey(PropS, PropU):   true,
}

func pairKey(a, b Property) [2]Property {
	if a > b {
		a, b = b, a
	}
	return [2]Property{a, b}
}

func admissible(a, b Property) bool {
	return admissiblePairs[pairKey(a, b)]
}

// isSpecXY returns true for both orderings of (x, y) against s, the
// generalized form of the spec's per-pair is_spec_XY predicates (§4.A).
func isSpecXY(s Spec, x, y Property) bool {
	return (s.A == x && s.B == y) || (s.A == y && s.B == x)
}

// IsSpecPT, IsSpecPH, ... expose the named predicates spec.md lists by
// pair; kept as a small set of the most-used ones plus the generic form.
func IsSpecPT(s Spec) bool   { return isSpecXY(s, PropP, PropT) }
func IsSpecPX(s Spec) bool   { return isSpecXY(s, PropP, PropX) }
func IsSpecTX(s Spec) bool   { return isSpecXY(s, PropT, PropX) }
func IsSpecHS(s Spec) bool   { return isSpecXY(s, PropH, PropS) }
func IsSpecPRho(s Spec) bool { return isSpecXY(s, PropP, PropRho) }
func IsSpecTRho(s Spec) bool { return isSpecXY(s, PropT, PropRho) }

// Has reports whether s has a member with the given tag.
func (s Spec) Has(p Property) bool { return s.A == p || s.B == p }

// Other returns the member of s that is not p; it panics if p is not a
// member, since callers only call this after confirming s.Has(p).
func (s Spec) Other(p Property) Property {
	switch p {
	case s.A:
		return s.B
	case s.B:
		return s.A
	default:
		panic(fmt.Sprintf("quantity: %v not a member of spec %v", p, s))
	}
}

func (p Property) String() string {
	switch p {
	case PropT:
		return "T"
	case PropP:
		return "P"
	case PropRho:
		return "Rho"
	case PropH:
		return "H"
	case PropS:
		return "S"
	case PropU:
		return "U"
	case PropV:
		return "V"
	case PropX:
		return "X"
	case PropA:
		return "A"
	case PropG:
		return "G"
	case PropZ:
		return "Z"
	case PropKappa:
		return "Kappa"
	case PropAlpha:
		return "Alpha"
	case PropCp:
		return "Cp"
	case PropCv:
		return "Cv"
	case PropW:
		return "W"
	case PropEta:
		return "Eta"
	case PropNu:
		return "Nu"
	case PropTC:
		return "TC"
	case PropPR:
		return "PR"
	case PropMW:
		return "MW"
	case PropPhase:
		return "Phase"
	default:
		return "Unknown"
	}
}
