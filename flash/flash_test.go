package flash_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gothermo/thermocore/backend"
	"github.com/gothermo/thermocore/flash"
	"github.com/gothermo/thermocore/quantity"
)

const idealR = 8.314

// idealGas is a minimal ideal-gas backend.Contract: beyond the required
// SetPT/SetPX/SetTX it has no native setter, forcing every other spec
// pair through the 1-D or 2-D solver.
type idealGas struct {
	p, t, x float64
	mw      float64
}

func (g *idealGas) SetPT(p, t float64) error { g.p, g.t, g.x = p, t, math.NaN(); return nil }
func (g *idealGas) SetPX(p, x float64) error { g.p, g.x, g.t = p, x, 373.15; return nil }
func (g *idealGas) SetTX(t, x float64) error { g.t, g.x, g.p = t, x, 101325; return nil }

func (g *idealGas) T() float64   { return g.t }
func (g *idealGas) P() float64   { return g.p }
func (g *idealGas) Rho() float64 { return g.p / (idealR * g.t) }
func (g *idealGas) X() float64   { return g.x }
func (g *idealGas) H() float64   { return 3.5 * idealR * g.t }
func (g *idealGas) S() float64   { return idealR * math.Log(g.t) - idealR*math.Log(g.p) }
func (g *idealGas) U() float64   { return 2.5 * idealR * g.t }

func (g *idealGas) MolarMass() float64 { return g.mw }
func (g *idealGas) Pc() float64        { return 2.2064e7 }
func (g *idealGas) Tc() float64        { return 647.1 }
func (g *idealGas) Tmin() float64      { return 100 }
func (g *idealGas) Tmax() float64      { return 2000 }
func (g *idealGas) Pmin() float64      { return 1000 }
func (g *idealGas) Pmax() float64      { return 5e7 }

func newIdealGas() *idealGas {
	return &idealGas{p: 101325, t: 300, x: math.NaN(), mw: 0.028}
}

func TestRun_NativePT_NoIteration(t *testing.T) {
	g := newIdealGas()
	res, err := flash.Run(g, quantity.PropP, 2e5, quantity.PropT, 350, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 0, res.Iterations)
	assert.InDelta(t, 350, g.T(), 1e-9)
	assert.InDelta(t, 2e5, g.P(), 1e-9)
}

func TestRun_PH_Monotonic1D(t *testing.T) {
	g := newIdealGas()
	targetH := 3.5 * idealR * 400.0
	opts := flash.DefaultOptions()
	res, err := flash.Run(g, quantity.PropP, 101325, quantity.PropH, targetH, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 400, g.T(), 1e-3)
}

func TestRun_VFoldsToRho(t *testing.T) {
	g := newIdealGas()
	g.SetPT(101325, 300)
	targetV := 1 / g.Rho()
	opts := flash.DefaultOptions()
	res, err := flash.Run(g, quantity.PropT, 300, quantity.PropV, targetV, opts)
	require.NoError(t, err)
	assert.True(t, res.Converged)
}

func TestRun_OutOfRange(t *testing.T) {
	g := newIdealGas()
	_, err := flash.Run(g, quantity.PropP, -5, quantity.PropT, 300, flash.DefaultOptions())
	require.Error(t, err)
}

func TestRun_UnsupportedSpec(t *testing.T) {
	var _ backend.Contract = newIdealGas()
	g := newIdealGas()
	_, err := flash.Run(g, quantity.PropP, 101325, quantity.PropP, 101325, flash.DefaultOptions())
	require.Error(t, err)
}

// domeGas is a backend.Contract double with a genuine saturation dome: H
// jumps by a fixed latent heat across T_sat(P) (or P_sat(T)), so a target
// that falls between the saturated-liquid and saturated-vapor values can
// only be reached by a quality solve, not by bisecting T or P directly.
// The weak -k*P term in the liquid branch keeps an isothermal P-search
// (the TH/TS/TU case) non-degenerate.
type domeGas struct {
	p, t, x float64
	tc, pc  float64
}

func newDomeGas() *domeGas { return &domeGas{p: 101325, t: 300, x: math.NaN(), tc: 500, pc: 5e6} }

func (g *domeGas) tsat(p float64) float64 { return 300 + 150*(p/g.pc) }
func (g *domeGas) psat(t float64) float64 { return g.pc * (t - 300) / 150 }

func (g *domeGas) SetPT(p, t float64) error { g.p, g.t, g.x = p, t, math.NaN(); return nil }
func (g *domeGas) SetPX(p, x float64) error { g.p, g.t, g.x = p, g.tsat(p), x; return nil }
func (g *domeGas) SetTX(t, x float64) error { g.t, g.p, g.x = t, g.psat(t), x; return nil }

func (g *domeGas) T() float64   { return g.t }
func (g *domeGas) P() float64   { return g.p }
func (g *domeGas) Rho() float64 { return g.p / (idealR * g.t) }
func (g *domeGas) X() float64   { return g.x }

const (
	domeSlope  = 50.0
	domeLatent = 20000.0
	domeLiqPK  = 2e-3
)

func (g *domeGas) H() float64 {
	ts := g.tsat(g.p)
	if !math.IsNaN(g.x) {
		return domeSlope*ts - domeLiqPK*g.p + g.x*domeLatent
	}
	if g.t <= ts {
		return domeSlope*g.t - domeLiqPK*g.p
	}
	return domeSlope*ts - domeLiqPK*g.p + domeLatent + domeSlope*(g.t-ts)
}
func (g *domeGas) S() float64 { return idealR * math.Log(g.t/300) }
func (g *domeGas) U() float64 { return g.H() - idealR*g.t }

func (g *domeGas) MolarMass() float64 { return 0.03 }
func (g *domeGas) Pc() float64        { return g.pc }
func (g *domeGas) Tc() float64        { return g.tc }
func (g *domeGas) Tmin() float64      { return 300 }
func (g *domeGas) Tmax() float64      { return 480 }
func (g *domeGas) Pmin() float64      { return 1e5 }
func (g *domeGas) Pmax() float64      { return 4.9e6 }

func TestRun_PH_CompressedLiquidBranch(t *testing.T) {
	g := newDomeGas()
	res, err := flash.Run(g, quantity.PropP, 2e6, quantity.PropH, 13000, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 340, g.T(), 1e-2)
	assert.True(t, math.IsNaN(g.X()))
}

func TestRun_PH_SuperheatedVaporBranch(t *testing.T) {
	g := newDomeGas()
	res, err := flash.Run(g, quantity.PropP, 2e6, quantity.PropH, 36000, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 400, g.T(), 1e-2)
}

func TestRun_PH_TwoPhase_SolvesVaporQuality(t *testing.T) {
	g := newDomeGas()
	res, err := flash.Run(g, quantity.PropP, 2e6, quantity.PropH, 24000, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.5, g.X(), 1e-3)
	assert.InDelta(t, 360, g.T(), 1e-2)
}

func TestRun_TH_LiquidBranch_SplitsAroundInflectionPressure(t *testing.T) {
	g := newDomeGas()
	res, err := flash.Run(g, quantity.PropT, 350, quantity.PropH, 11500, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, 3e6, g.P(), 1e3)
}

// oracleIdealGas adds a backend.OptionalGuess correlation on top of
// idealGas, recording whether the solver actually consulted it.
type oracleIdealGas struct {
	*idealGas
	called bool
}

func newOracleIdealGas() *oracleIdealGas {
	return &oracleIdealGas{idealGas: newIdealGas()}
}

func (o *oracleIdealGas) GuessPT(prop1 string, v1 float64, prop2 string, v2 float64) (float64, float64, bool) {
	o.called = true
	return 101325, 300, true
}

var _ backend.OptionalGuess = (*oracleIdealGas)(nil)

func TestRun1DMonotonic_UsesGuessOracle(t *testing.T) {
	g := newOracleIdealGas()
	targetH := 3.5 * idealR * 400.0
	g.called = false

	res, err := flash.Run(g, quantity.PropP, 101325, quantity.PropH, targetH, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, g.called)
	assert.InDelta(t, 400, g.T(), 1e-3)
}

func TestRun2DNewton_UsesGuessOracle(t *testing.T) {
	g := newOracleIdealGas()
	require.NoError(t, g.SetPT(101325, 320))
	targetS, targetU := g.S(), g.U()
	g.called = false

	res, err := flash.Run(g, quantity.PropS, targetS, quantity.PropU, targetU, flash.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.True(t, g.called)
	assert.InDelta(t, 320, g.T(), 1e-2)
}
