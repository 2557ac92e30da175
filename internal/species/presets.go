package species

import (
	"strconv"

	"arbor/internal/tree"
)

// QuakingAspen returns the classic aspen parameter set: a tend-flame
// silhouette with a curvy trunk, dense minor branching and small leaves.
func QuakingAspen() tree.Params {
	return tree.Params{
		Shape:  tree.ShapeTendFlame,
		Scale:  13,
		ScaleV: 3,

		BaseSize:   0.4,
		Ratio:      0.015,
		RatioPower: 1.2,

		Flare:     0.6,
		Lobes:     5,
		LobeDepth: 0.07,

		AttractionUp:      0.5,
		SplitAngle:        20,
		SplitAngleV:       5,
		SplitRadiusShrink: 0.02,

		Leaves:    25,
		LeafShape: 0,
		LeafScale: 0.17,

		Levels: []tree.Level{
			{Length: 1, Taper: 1, CurveV: 20, CurveRes: 5},
			{Children: 50, Length: 0.3, Taper: 1, DownAngle: 60, DownAngleV: 20,
				Rotate: 140, Curve: -40, CurveV: 50, CurveRes: 5},
			{Children: 30, Length: 0.6, Taper: 1, DownAngle: 45, DownAngleV: 10,
				Rotate: 140, Curve: -40, CurveV: 75, CurveRes: 3},
		},
	}
}

// BlackTupelo returns a tall tapered-cylinder species with four hierarchy
// levels and drooping minor branches.
func BlackTupelo() tree.Params {
	return tree.Params{
		Shape:  tree.ShapeTaperedCylinder,
		Scale:  23,
		ScaleV: 5,

		BaseSize:   0.2,
		Ratio:      0.015,
		RatioPower: 1.3,

		Flare:     1,
		Lobes:     3,
		LobeDepth: 0.1,

		AttractionUp:      0.5,
		SplitAngle:        25,
		SplitAngleV:       5,
		SplitRadiusShrink: 0.02,

		Leaves:    6,
		LeafShape: 3,
		LeafScale: 0.3,

		Levels: []tree.Level{
			{Length: 1, Taper: 1, CurveV: 40, CurveRes: 10},
			{Children: 50, Length: 0.3, LengthV: 0.05, Taper: 1, DownAngle: 90, DownAngleV: 25,
				Rotate: 140, Curve: 0, CurveV: 90, CurveRes: 10},
			{Children: 25, Length: 0.6, LengthV: 0.1, Taper: 1, DownAngle: 48, DownAngleV: 8,
				Rotate: 140, Curve: -10, CurveV: 150, CurveRes: 10},
			{Children: 12, Length: 0.4, Taper: 1, DownAngle: 45, DownAngleV: 10,
				Rotate: 140, Curve: 0, CurveV: 100, CurveRes: 1},
		},
	}
}

// CaliforniaBlackOak returns a broad spherical crown with a forked trunk
// and heavy curvature variance.
func CaliforniaBlackOak() tree.Params {
	return tree.Params{
		Shape:  tree.ShapeHemispherical,
		Scale:  10,
		ScaleV: 2,

		BaseSize:   0.05,
		Ratio:      0.018,
		RatioPower: 1.3,

		Flare:     1.2,
		Lobes:     5,
		LobeDepth: 0.1,

		AttractionUp:      0.8,
		BaseSplits:        2,
		SplitAngle:        10,
		SplitAngleV:       10,
		SplitRadiusShrink: 0.03,

		Leaves:    25,
		LeafShape: 2,
		LeafScale: 0.12,

		Levels: []tree.Level{
			{Length: 1, Taper: 0.95, Curve: 0, CurveV: 90, CurveRes: 8, SegSplits: 0.4},
			{Children: 40, Length: 0.8, LengthV: 0.1, Taper: 1, DownAngle: 30, DownAngleV: 15,
				Rotate: 80, Curve: 40, CurveV: 150, CurveRes: 10, SegSplits: 0.2},
			{Children: 120, Length: 0.2, LengthV: 0.05, Taper: 1, DownAngle: 45, DownAngleV: 10,
				Rotate: 140, Curve: 0, CurveV: 30, CurveRes: 3},
		},
	}
}

// WeepingWillow returns a pendulous species: branches curve up then fall
// back with strong curve-back, under a cylindrical envelope.
func WeepingWillow() tree.Params {
	return tree.Params{
		Shape:  tree.ShapeCylindrical,
		Scale:  15,
		ScaleV: 2,

		BaseSize:   0.05,
		Ratio:      0.03,
		RatioPower: 2,

		Flare:     0.75,
		Lobes:     9,
		LobeDepth: 0.03,

		AttractionUp:      -1.5,
		BaseSplits:        2,
		SplitAngle:        3,
		SplitAngleV:       2,
		SplitRadiusShrink: 0.02,

		Leaves:    15,
		LeafShape: 1,
		LeafScale: 0.12,

		Levels: []tree.Level{
			{Length: 0.8, LengthV: 0.1, Taper: 1, Curve: 0, CurveV: 120, CurveRes: 8, SegSplits: 0.1},
			{Children: 25, Length: 0.5, LengthV: 0.1, Taper: 1, DownAngle: 20, DownAngleV: 10,
				Rotate: -120, Curve: 40, CurveBack: 80, CurveV: 90, CurveRes: 16},
			{Children: 20, Length: 1.5, Taper: 1, DownAngle: 30, DownAngleV: 10,
				Rotate: -120, Curve: 0, CurveV: 0, CurveRes: 7},
		},
	}
}

func init() {
	Register("quaking_aspen", func(cfg map[string]string) tree.Params {
		p := QuakingAspen()
		applyOverrides(&p, cfg)
		return p
	})
	Register("black_tupelo", func(cfg map[string]string) tree.Params {
		p := BlackTupelo()
		applyOverrides(&p, cfg)
		return p
	})
	Register("black_oak", func(cfg map[string]string) tree.Params {
		p := CaliforniaBlackOak()
		applyOverrides(&p, cfg)
		return p
	})
	Register("weeping_willow", func(cfg map[string]string) tree.Params {
		p := WeepingWillow()
		applyOverrides(&p, cfg)
		return p
	})
}

// applyOverrides patches a preset from flag-style key/value pairs. Unknown
// keys are ignored; malformed values leave the preset untouched.
func applyOverrides(p *tree.Params, cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			p.Scale = parsed
		}
	}
	if v, ok := cfg["scale_v"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.ScaleV = parsed
		}
	}
	if v, ok := cfg["base_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed < 1 {
			p.BaseSize = parsed
		}
	}
	if v, ok := cfg["leaves"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.Leaves = parsed
		}
	}
	if v, ok := cfg["base_splits"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.BaseSplits = parsed
		}
	}
	if v, ok := cfg["attraction_up"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.AttractionUp = parsed
		}
	}
	if v, ok := cfg["lobes"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.Lobes = parsed
		}
	}
}
