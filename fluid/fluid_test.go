package fluid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/fluid"
	"github.com/gothermo/thermocore/quantity"
	"github.com/gothermo/thermocore/units"
)

const idealR = 8.314

type idealGas struct {
	p, t, x float64
	mw      float64
	tc, pc  float64
}

func (g *idealGas) SetPT(p, t float64) error { g.p, g.t, g.x = p, t, math.NaN(); return nil }
func (g *idealGas) SetPX(p, x float64) error { g.p, g.x, g.t = p, x, 373.15; return nil }
func (g *idealGas) SetTX(t, x float64) error { g.t, g.x, g.p = t, x, 101325; return nil }

func (g *idealGas) T() float64   { return g.t }
func (g *idealGas) P() float64   { return g.p }
func (g *idealGas) Rho() float64 { return g.p / (idealR * g.t) }
func (g *idealGas) X() float64   { return g.x }
func (g *idealGas) H() float64   { return 3.5 * idealR * g.t }
func (g *idealGas) S() float64   { return idealR * math.Log(g.t) }
func (g *idealGas) U() float64   { return 2.5 * idealR * g.t }

func (g *idealGas) MolarMass() float64 { return g.mw }
func (g *idealGas) Pc() float64        { return g.pc }
func (g *idealGas) Tc() float64        { return g.tc }
func (g *idealGas) Tmin() float64      { return 100 }
func (g *idealGas) Tmax() float64      { return 2000 }
func (g *idealGas) Pmin() float64      { return 1000 }
func (g *idealGas) Pmax() float64      { return 5e7 }

func (g *idealGas) Clone() backend.Contract {
	cp := *g
	return &cp
}

func newIdealGas() *idealGas {
	return &idealGas{p: 101325, t: 300, x: math.NaN(), mw: 0.028, tc: 647.1, pc: 2.2064e7}
}

func TestFluid_FlashNativePT_LeavesOriginalUntouched(t *testing.T) {
	g := newIdealGas()
	f := fluid.New(g)

	results, err := f.Flash(quantity.PropP, 5e5, quantity.PropT, 500)
	require.NoError(t, err)
	assert.True(t, results.Converged())
	assert.InDelta(t, 500, results.T(), 1e-9)

	// g is untouched because idealGas is Cloneable.
	assert.InDelta(t, 300, g.T(), 1e-9)
}

func TestFluid_PropertiesByName(t *testing.T) {
	g := newIdealGas()
	f := fluid.New(g)
	results, err := f.Flash(quantity.PropP, 101325, quantity.PropT, 350)
	require.NoError(t, err)

	out, err := results.PropertiesByName(units.Molar, []string{"T", "P"})
	require.NoError(t, err)
	assert.InDelta(t, 350, out["T"], 1e-9)
	assert.InDelta(t, 101325, out["P"], 1e-9)
}

func TestEnvelope_CriticalAndBounds(t *testing.T) {
	g := newIdealGas()
	f := fluid.New(g)
	assert.Equal(t, g.tc, fluid.CriticalT(f))
	assert.Equal(t, g.pc, fluid.CriticalP(f))
	assert.Equal(t, g.Tmin(), fluid.MinT(f))
	assert.Equal(t, g.Pmax(), fluid.MaxP(f))
}
