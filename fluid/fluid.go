// Package fluid is the unified property facade (§4.E): a value-semantic
// handle over any backend.Contract, a flash() entry point that drives
// the backend to a requested state without disturbing the caller's
// fluid, and proxies for reading the resulting properties by name or by
// type.
package fluid

import (
	"github.com/sirupsen/logrus"

	"github.com/gothermo/thermocore/adapter"
	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/flash"
	"github.com/gothermo/thermocore/quantity"
)

// Fluid is a lightweight handle over a backend instance, the single type
// application code holds and passes around (§4.E "Fluid handle").
type Fluid struct {
	backend backend.Contract
	log     logrus.FieldLogger
}

// New wraps an already-configured backend.
func New(b backend.Contract) *Fluid {
	log := logrus.New()
	return &Fluid{backend: b, log: log}
}

// WithLogger attaches a logger used for flash diagnostics.
func (f *Fluid) WithLogger(log logrus.FieldLogger) *Fluid {
	f.log = log
	return f
}

// Backend exposes the underlying contract, e.g. for a caller that wants
// to inspect envelope bounds directly.
func (f *Fluid) Backend() backend.Contract { return f.backend }

// Adapter returns the property adapter for the fluid's current state,
// without flashing to a new specification. This is the "direct
// property/properties on an already-set fluid" path (§4.E).
func (f *Fluid) Adapter() *adapter.Adapter {
	a := adapter.New(f.backend)
	a.Log = f.log
	return a
}

// Clone returns an independent copy of the fluid's current state when
// the backend supports it, preserving value semantics across Flash calls.
func (f *Fluid) Clone() (*Fluid, bool) {
	cl, ok := f.backend.(backend.Cloneable)
	if !ok {
		return nil, false
	}
	return &Fluid{backend: cl.Clone(), log: f.log}, true
}

// Flash drives a copy of f's backend to the state defined by the
// specification pair (s1=v1, s2=v2) and returns the resulting
// FlashResults (§4.E "flash(fluid, s1, s2) -> FlashResults"). f itself is
// left untouched when the backend is Cloneable; otherwise the flash
// mutates f's backend in place and f is also updated.
func (f *Fluid) Flash(s1 quantity.Property, v1 float64, s2 quantity.Property, v2 float64) (*FlashResults, error) {
	target := f.backend
	if cl, ok := f.backend.(backend.Cloneable); ok {
		target = cl.Clone()
	}
	opts := flash.DefaultOptions()
	opts.Log = f.log

	solve, err := flash.Run(target, s1, v1, s2, v2, opts)
	a := adapter.New(target)
	a.Log = f.log
	results := &FlashResults{Adapter: a, Solve: solve}
	return results, err
}
