package tree

import (
	"fmt"
	"math"
	"strconv"

	"arbor/internal/core"
)

// Shape selects the silhouette envelope used to scale branch lengths along
// the trunk.
type Shape int

const (
	ShapeConical Shape = iota
	ShapeSpherical
	ShapeHemispherical
	ShapeCylindrical
	ShapeTaperedCylinder
	ShapeFlame
	ShapeInverseConical
	ShapeTendFlame
	shapeCount
)

// MaxLevels is the deepest supported branching hierarchy: trunk, major
// branch, minor branch, twig.
const MaxLevels = 4

// Level holds the decoded growth parameters for one hierarchy depth. The
// trunk is level 0; child-placement fields (Children, Rotate, DownAngle)
// describe how stems of this level attach to their parents.
type Level struct {
	Children  float64 `yaml:"children"`   // stems of this level per parent stem
	ChildrenV float64 `yaml:"children_v"` // spread on the per-stem child count

	Length  float64 `yaml:"length"` // length ratio; absolute base length for the trunk
	LengthV float64 `yaml:"length_v"`
	Taper   float64 `yaml:"taper"` // 0 = cylinder, 1 = cone to a point

	Curve     float64 `yaml:"curve"`      // total forward curvature, degrees
	CurveBack float64 `yaml:"curve_back"` // second-half curvature for S-curves
	CurveV    float64 `yaml:"curve_v"`    // random lateral bend, degrees
	CurveRes  int     `yaml:"curve_res"`  // longitudinal segments, >= 1

	Rotate     float64 `yaml:"rotate"` // spin between successive children, degrees
	RotateV    float64 `yaml:"rotate_v"`
	DownAngle  float64 `yaml:"down_angle"` // pitch away from the parent, degrees
	DownAngleV float64 `yaml:"down_angle_v"`

	SegSplits float64 `yaml:"seg_splits"` // fractional splits per segment boundary
}

// Params is the fully-decoded species descriptor: global growth values plus
// one Level per hierarchy depth. A Params value is built once per tree and
// read-only afterwards.
type Params struct {
	Shape  Shape   `yaml:"shape"`
	Levels []Level `yaml:"levels"`

	Scale  float64 `yaml:"scale"` // overall tree size multiplier
	ScaleV float64 `yaml:"scale_v"`

	BaseSize float64 `yaml:"base_size"` // unbranched basal fraction of the trunk

	Ratio      float64 `yaml:"ratio"`       // trunk base radius / trunk length
	RatioPower float64 `yaml:"ratio_power"` // child radius power-law exponent

	Flare     float64 `yaml:"flare"` // trunk base flare strength
	Lobes     int     `yaml:"lobes"` // bark ridge count on the trunk ring
	LobeDepth float64 `yaml:"lobe_depth"`

	AttractionUp float64 `yaml:"attraction_up"` // upward tropism for level >= 2

	BaseSplits  int     `yaml:"base_splits"` // forced splits after the trunk's first segment
	SplitAngle  float64 `yaml:"split_angle"`
	SplitAngleV float64 `yaml:"split_angle_v"`

	// SplitRadiusShrink is the cosmetic fraction removed from a clone's
	// radius so fork surfaces do not coincide. Zero disables it.
	SplitRadiusShrink float64 `yaml:"split_radius_shrink"`

	Leaves    float64 `yaml:"leaves"` // leaves per final-level stem
	LeafShape int     `yaml:"leaf_shape"`
	LeafScale float64 `yaml:"leaf_scale"`

	// Prune reserves the envelope-pruning pass. Only false is accepted.
	Prune bool `yaml:"prune"`
}

// trunkMeshPoints is the ring tessellation of a level-0 stem before the
// lobe correction. Deeper levels halve it down to a floor of 3.
const trunkMeshPoints = 16

// MeshPoints returns the ring tessellation for the given level: the trunk
// gets the full budget plus one point per lobe, each deeper level halves
// it, and every level keeps at least a triangle.
func (p *Params) MeshPoints(level int) int {
	pts := trunkMeshPoints >> uint(level)
	if level == 0 && p.Lobes > 0 {
		pts += p.Lobes
	}
	if pts < 3 {
		pts = 3
	}
	return pts
}

// Validate reports the first malformed value, or nil. A Params value that
// validates generates a tree for any seed.
func (p *Params) Validate() error {
	if len(p.Levels) == 0 {
		return fmt.Errorf("params: at least one level required")
	}
	if len(p.Levels) > MaxLevels {
		return fmt.Errorf("params: %d levels exceeds maximum %d", len(p.Levels), MaxLevels)
	}
	if p.Shape < 0 || p.Shape >= shapeCount {
		return fmt.Errorf("params: unknown shape %d", p.Shape)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("params: scale must be positive, got %v", p.Scale)
	}
	if p.ScaleV < 0 {
		return fmt.Errorf("params: scale variance must be non-negative, got %v", p.ScaleV)
	}
	if p.BaseSize < 0 || p.BaseSize >= 1 {
		return fmt.Errorf("params: base size %v outside [0, 1)", p.BaseSize)
	}
	if p.Ratio <= 0 {
		return fmt.Errorf("params: ratio must be positive, got %v", p.Ratio)
	}
	if p.RatioPower < 0 {
		return fmt.Errorf("params: ratio power must be non-negative, got %v", p.RatioPower)
	}
	if p.Flare < 0 {
		return fmt.Errorf("params: flare must be non-negative, got %v", p.Flare)
	}
	if p.Lobes < 0 || p.LobeDepth < 0 {
		return fmt.Errorf("params: lobe settings must be non-negative")
	}
	if p.BaseSplits < 0 {
		return fmt.Errorf("params: base splits must be non-negative, got %d", p.BaseSplits)
	}
	if p.Leaves < 0 || p.LeafScale < 0 {
		return fmt.Errorf("params: leaf settings must be non-negative")
	}
	if p.SplitRadiusShrink < 0 || p.SplitRadiusShrink >= 1 {
		return fmt.Errorf("params: split radius shrink %v outside [0, 1)", p.SplitRadiusShrink)
	}
	if p.Prune {
		return fmt.Errorf("params: envelope pruning is not implemented")
	}
	for i := range p.Levels {
		lv := &p.Levels[i]
		if lv.CurveRes < 1 {
			return fmt.Errorf("params: level %d curve resolution must be >= 1, got %d", i, lv.CurveRes)
		}
		if lv.Length <= 0 {
			return fmt.Errorf("params: level %d length must be positive, got %v", i, lv.Length)
		}
		if lv.LengthV < 0 || lv.LengthV >= lv.Length {
			return fmt.Errorf("params: level %d length variance %v outside [0, length)", i, lv.LengthV)
		}
		if lv.Taper < 0 || lv.Taper > 1 {
			return fmt.Errorf("params: level %d taper %v outside [0, 1]", i, lv.Taper)
		}
		if lv.Children < 0 || lv.ChildrenV < 0 {
			return fmt.Errorf("params: level %d child counts must be non-negative", i)
		}
		if lv.SegSplits < 0 {
			return fmt.Errorf("params: level %d segment splits must be non-negative, got %v", i, lv.SegSplits)
		}
	}
	return nil
}

// ShapeRatio maps a normalized position along the parent stem (0 = base,
// 1 = tip) to a length multiplier in [0, 1]. This envelope is what gives a
// species its silhouette.
func ShapeRatio(shape Shape, pos float64) float64 {
	if pos < 0 {
		pos = 0
	} else if pos > 1 {
		pos = 1
	}
	r := 1 - pos
	switch shape {
	case ShapeConical:
		return 0.2 + 0.8*r
	case ShapeSpherical:
		return 0.2 + 0.8*math.Sin(math.Pi*r)
	case ShapeHemispherical:
		return 0.2 + 0.8*math.Sin(0.5*math.Pi*r)
	case ShapeCylindrical:
		return 1
	case ShapeTaperedCylinder:
		return 0.5 + 0.5*r
	case ShapeFlame:
		if r <= 0.7 {
			return r / 0.7
		}
		return (1 - r) / 0.3
	case ShapeInverseConical:
		return 1 - 0.8*r
	case ShapeTendFlame:
		if r <= 0.7 {
			return 0.5 + 0.5*r/0.7
		}
		return 0.5 + 0.5*(1-r)/0.3
	default:
		return 1
	}
}

// Snapshot returns the grouped parameter listing shown by the describe
// command and the viewer overlay.
func (p *Params) Snapshot() core.ParameterSnapshot {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 4, 64) }
	global := core.ParameterGroup{
		Name: "Global",
		Params: []core.Parameter{
			{Key: "shape", Label: "Shape", Type: core.ParamTypeInt, Value: strconv.Itoa(int(p.Shape))},
			{Key: "scale", Label: "Scale", Type: core.ParamTypeFloat, Value: f(p.Scale)},
			{Key: "scale_v", Label: "Scale variance", Type: core.ParamTypeFloat, Value: f(p.ScaleV)},
			{Key: "base_size", Label: "Base size", Type: core.ParamTypeFloat, Value: f(p.BaseSize)},
			{Key: "ratio", Label: "Radius ratio", Type: core.ParamTypeFloat, Value: f(p.Ratio)},
			{Key: "ratio_power", Label: "Ratio power", Type: core.ParamTypeFloat, Value: f(p.RatioPower)},
			{Key: "flare", Label: "Flare", Type: core.ParamTypeFloat, Value: f(p.Flare)},
			{Key: "lobes", Label: "Lobes", Type: core.ParamTypeInt, Value: strconv.Itoa(p.Lobes)},
			{Key: "attraction_up", Label: "Attraction up", Type: core.ParamTypeFloat, Value: f(p.AttractionUp)},
			{Key: "base_splits", Label: "Base splits", Type: core.ParamTypeInt, Value: strconv.Itoa(p.BaseSplits)},
			{Key: "leaves", Label: "Leaves", Type: core.ParamTypeFloat, Value: f(p.Leaves)},
		},
	}
	groups := []core.ParameterGroup{global}
	for i := range p.Levels {
		lv := &p.Levels[i]
		groups = append(groups, core.ParameterGroup{
			Name: fmt.Sprintf("Level %d", i),
			Params: []core.Parameter{
				{Key: "children", Label: "Children", Type: core.ParamTypeFloat, Value: f(lv.Children)},
				{Key: "length", Label: "Length", Type: core.ParamTypeFloat, Value: f(lv.Length)},
				{Key: "taper", Label: "Taper", Type: core.ParamTypeFloat, Value: f(lv.Taper)},
				{Key: "curve", Label: "Curve", Type: core.ParamTypeFloat, Value: f(lv.Curve)},
				{Key: "curve_res", Label: "Curve resolution", Type: core.ParamTypeInt, Value: strconv.Itoa(lv.CurveRes)},
				{Key: "rotate", Label: "Rotate", Type: core.ParamTypeFloat, Value: f(lv.Rotate)},
				{Key: "down_angle", Label: "Down angle", Type: core.ParamTypeFloat, Value: f(lv.DownAngle)},
				{Key: "seg_splits", Label: "Segment splits", Type: core.ParamTypeFloat, Value: f(lv.SegSplits)},
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}
