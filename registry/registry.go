// Package registry is the runtime string/enum property registry (§4.F):
// a list of (uppercased alias -> Property) built once at initialization,
// and the inverse (Property -> canonical short string). It generalizes
// the teacher's lee-kesler.Property switch-based Correlation lookup
// (four cases) to the ~20 aliases §3.1 names, which a switch does not
// scale to cleanly.
package registry

import (
	"strings"

	"github.com/gothermo/thermocore/quantity"
)

var (
	aliasToProp = map[string]quantity.Property{}
	propToShort = map[quantity.Property]string{}
)

type entry struct {
	short   string
	aliases []string
	prop    quantity.Property
}

// table is built once; Unknown strings map to PropUnknown rather than
// raising, per §4.F.
var table = []entry{
	{"T", []string{"T", "TEMP", "TEMPERATURE"}, quantity.PropT},
	{"P", []string{"P", "PRESS", "PRESSURE"}, quantity.PropP},
	{"RHO", []string{"RHO", "D", "DENS", "DENSITY"}, quantity.PropRho},
	{"H", []string{"H", "ENTH", "ENTHALPY"}, quantity.PropH},
	{"S", []string{"S", "ENTR", "ENTROPY"}, quantity.PropS},
	{"U", []string{"U", "INTENERGY", "INTERNALENERGY"}, quantity.PropU},
	{"V", []string{"V", "VOL", "VOLUME"}, quantity.PropV},
	{"X", []string{"X", "Q", "QUALITY"}, quantity.PropX},
	{"A", []string{"A", "HELMHOLTZ"}, quantity.PropA},
	{"G", []string{"G", "GIBBS"}, quantity.PropG},
	{"Z", []string{"Z", "COMPRESSIBILITY"}, quantity.PropZ},
	{"KAPPA", []string{"KAPPA", "ISOTHERMALCOMPRESSIBILITY"}, quantity.PropKappa},
	{"ALPHA", []string{"ALPHA", "THERMALEXPANSION"}, quantity.PropAlpha},
	{"CP", []string{"CP"}, quantity.PropCp},
	{"CV", []string{"CV"}, quantity.PropCv},
	{"W", []string{"W", "SPEEDOFSOUND"}, quantity.PropW},
	{"ETA", []string{"ETA", "VISCOSITY", "DYNAMICVISCOSITY"}, quantity.PropEta},
	{"NU", []string{"NU", "KINEMATICVISCOSITY"}, quantity.PropNu},
	{"TC", []string{"TC", "CONDUCTIVITY", "THERMALCONDUCTIVITY"}, quantity.PropTC},
	{"PR", []string{"PR", "PRANDTL"}, quantity.PropPR},
	{"MW", []string{"MW", "MOLARMASS"}, quantity.PropMW},
	{"PHASE", []string{"PHASE"}, quantity.PropPhase},
}

func init() {
	for _, e := range table {
		propToShort[e.prop] = e.short
		for _, a := range e.aliases {
			aliasToProp[a] = e.prop
		}
	}
}

// Lookup maps a string alias (case-insensitive) to its Property tag.
// An unrecognized alias yields quantity.PropUnknown, never an error
// (§4.F: "Unknown strings map to the Unknown tag rather than raising").
func Lookup(alias string) quantity.Property {
	if p, ok := aliasToProp[strings.ToUpper(strings.TrimSpace(alias))]; ok {
		return p
	}
	return quantity.PropUnknown
}

// LookupAll maps a slice of string aliases in one call. The facade's
// dynamic proxy (FlashResults.PropertiesByName) calls Lookup per name
// rather than this function.
func LookupAll(aliases []string) []quantity.Property {
	out := make([]quantity.Property, len(aliases))
	for i, a := range aliases {
		out[i] = Lookup(a)
	}
	return out
}

// Name returns the canonical short string for a Property tag.
func Name(p quantity.Property) string {
	if s, ok := propToShort[p]; ok {
		return s
	}
	return "UNKNOWN"
}
