// Package pvplot draws pressure-volume diagrams for a fluid.Fluid,
// adapted from the teacher's state.DrawPV to work through the
// backend.Contract abstraction (any backend, not just a cubic EOS) so it
// can plot isotherms, the saturation dome, and flashed state points for
// whatever substance the caller's backend represents.
package pvplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gothermo/thermocore/fluid"
	"github.com/gothermo/thermocore/units"
)

var validExts = map[string]bool{
	".eps": true, ".jpg": true, ".jpeg": true, ".pdf": true,
	".png": true, ".svg": true, ".tex": true, ".tif": true, ".tiff": true,
}

// Color is an alias for image/color.Color.
type Color = color.Color

var (
	Red     Color = color.RGBA{R: 255, A: 255}
	Blue    Color = color.RGBA{B: 255, A: 255}
	Black   Color = color.RGBA{A: 255}
	Magenta Color = color.RGBA{R: 255, B: 255, A: 255}
)

// Length is an alias for vg.Length.
type Length = vg.Length

const (
	Inch       Length = vg.Inch
	Centimeter Length = vg.Centimeter
)

// Config customizes the appearance of the PV diagram, mirroring the
// teacher's PVConfig field-for-field where the concept still applies.
type Config struct {
	Title                 string
	TitleColor            Color
	IsothermsColor        Color
	CriticalIsothermColor Color
	DomeColor             Color
	StatePointColor       Color
	NumberStates          bool
	Width, Height         Length
	VolumeScaleFactor     float64
	ShowOutputPath        bool
}

// DrawPV renders isotherms, the saturation dome, and each fluid's
// current state point onto a single PV diagram saved to output. All
// fluids must share the same critical point (same substance).
func DrawPV(cfg *Config, output string, states ...*fluid.Fluid) error {
	if cfg == nil {
		return errors.New("pvplot: config cannot be nil")
	}
	if len(states) == 0 {
		return errors.New("pvplot: at least one state is required")
	}
	ext := filepath.Ext(output)
	if !validExts[ext] {
		closest, minDist := "", int(^uint(0)>>1)
		for valid := range validExts {
			if d := levenshtein(ext, valid); d < minDist {
				minDist, closest = d, valid
			}
		}
		suggestion := output[:len(output)-len(ext)] + closest
		return fmt.Errorf("pvplot: invalid file extension %q, did you mean %q?", output, suggestion)
	}

	tc := states[0].Backend().Tc()
	pc := states[0].Backend().Pc()

	p := plot.New()
	if cfg.Title == "" {
		p.Title.Text = "Pressure-Volume Diagram"
	} else {
		p.Title.Text = cfg.Title
	}
	if cfg.TitleColor != nil {
		p.Title.TextStyle.Color = cfg.TitleColor
	}
	p.X.Label.Text = "Molar Volume (m^3/mol)"
	p.Y.Label.Text = "Pressure (Pa)"

	minP, maxP := states[0].Backend().Pmin(), states[0].Backend().Pmax()

	maxViewV := volumeAt(states[0], maxP, tc) * 1.2
	for _, s := range states {
		v := 1 / s.Adapter().Rho(units.Molar)
		if v > maxViewV {
			maxViewV = v * 1.1
		}
	}

	critLine, critPts := isotherm(states[0], tc, minP, maxP, maxViewV)
	if critLine != nil {
		if cfg.CriticalIsothermColor == nil {
			critLine.Color = Magenta
		} else {
			critLine.Color = cfg.CriticalIsothermColor
		}
		critLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(critLine)
	}
	_ = critPts

	domeLine := saturationDome(states[0], tc, pc)
	if domeLine != nil {
		if cfg.DomeColor == nil {
			domeLine.Color = Black
		} else {
			domeLine.Color = cfg.DomeColor
		}
		domeLine.LineStyle.Width = vg.Points(1.5)
		p.Add(domeLine)
	}

	for i, s := range states {
		t := s.Adapter().T()
		line, _ := isotherm(s, t, minP, maxP, maxViewV)
		if line != nil {
			if cfg.IsothermsColor == nil {
				line.Color = Blue
			} else {
				line.Color = cfg.IsothermsColor
			}
			p.Add(line)
		}

		v := 1 / s.Adapter().Rho(units.Molar)
		pt := plotter.XYs{{X: v, Y: s.Adapter().P()}}
		scatter, _ := plotter.NewScatter(pt)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		if cfg.StatePointColor == nil {
			scatter.Color = Red
		} else {
			scatter.Color = cfg.StatePointColor
		}
		p.Add(scatter)

		if cfg.NumberStates {
			labels, _ := plotter.NewLabels(plotter.XYLabels{XYs: pt, Labels: []string{fmt.Sprintf("%d", i+1)}})
			p.Add(labels)
		}
	}

	p.X.Min, p.X.Max = 0, maxViewV
	p.Y.Min, p.Y.Max = 0, pc*1.5

	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = 6 * vg.Inch
	}
	if height == 0 {
		height = 4 * vg.Inch
	}
	if err := p.Save(width, height, output); err != nil {
		return err
	}
	if cfg.ShowOutputPath {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("pvplot: failed to get working directory: %w", err)
		}
		fmt.Printf("image saved to %s\n", filepath.Join(wd, output))
	}
	return nil
}

// isotherm samples (V, P) by sweeping pressure at fixed temperature on a
// clone of f's backend, reading volume back as 1/Rho.
func isotherm(f *fluid.Fluid, t, minP, maxP, maxV float64) (*plotter.Line, plotter.XYs) {
	clone, ok := f.Clone()
	if !ok {
		return nil, nil
	}
	pts := make(plotter.XYs, 0, 200)
	for pp := minP; pp <= maxP; pp *= 1.05 {
		if err := clone.Backend().SetPT(pp, t); err != nil {
			continue
		}
		rho := clone.Adapter().Rho(units.Molar)
		if rho <= 0 {
			continue
		}
		v := 1 / rho
		if v > maxV {
			continue
		}
		pts = append(pts, plotter.XY{X: v, Y: pp})
	}
	if len(pts) == 0 {
		return nil, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, nil
	}
	return line, pts
}

// saturationDome traces the two-phase boundary from 0.6*Tc to 0.99*Tc
// using the adapter's Psat and the backend's required SetPX.
func saturationDome(f *fluid.Fluid, tc, pc float64) *plotter.Line {
	clone, ok := f.Clone()
	if !ok {
		return nil
	}
	var liquidPts, vaporPts plotter.XYs
	startT, endT := tc*0.6, tc*0.99
	stepT := (endT - startT) / 100
	for t := startT; t <= endT; t += stepT {
		psat, err := clone.Adapter().Psat(t)
		if err != nil || math.IsNaN(psat) {
			continue
		}
		liqClone, okL := clone.Clone()
		vapClone, okV := clone.Clone()
		if !okL || !okV {
			continue
		}
		if err := liqClone.Backend().SetPX(psat, 0); err != nil {
			continue
		}
		if err := vapClone.Backend().SetPX(psat, 1); err != nil {
			continue
		}
		liquidPts = append(liquidPts, plotter.XY{X: 1 / liqClone.Adapter().Rho(units.Molar), Y: psat})
		vaporPts = append(vaporPts, plotter.XY{X: 1 / vapClone.Adapter().Rho(units.Molar), Y: psat})
	}
	for i := len(vaporPts) - 1; i >= 0; i-- {
		liquidPts = append(liquidPts, vaporPts[i])
	}
	if len(liquidPts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(liquidPts)
	if err != nil {
		return nil
	}
	return line
}

func volumeAt(f *fluid.Fluid, p, t float64) float64 {
	clone, ok := f.Clone()
	if !ok {
		return 1 / f.Adapter().Rho(units.Molar)
	}
	if err := clone.Backend().SetPT(p, t); err != nil {
		return 1 / f.Adapter().Rho(units.Molar)
	}
	return 1 / clone.Adapter().Rho(units.Molar)
}

func levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	n, m := len(r1), len(r2)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	row := make([]int, n+1)
	for i := 0; i <= n; i++ {
		row[i] = i
	}
	for j := 1; j <= m; j++ {
		prev := j
		for i := 1; i <= n; i++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			current := min(row[i]+1, prev+1, row[i-1]+cost)
			row[i-1] = prev
			prev = current
		}
		row[n] = prev
	}
	return row[n]
}
