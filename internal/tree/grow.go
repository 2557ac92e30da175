package tree

import (
	"math"

	"arbor/internal/core"
)

// Stems shorter or thinner than these thresholds are discarded instead of
// being added to the structure. This cutoff is what terminates recursion at
// the finest twigs.
const (
	minStemLength = 1e-3
	minStemRadius = 1e-4
)

// generator carries the per-tree state of one structural generation pass:
// the immutable parameters, the single variation stream, and the arena
// being filled. Variation draws happen in structure-build order, so the
// stream's call order fully determines the result.
type generator struct {
	p    *Params
	rng  *core.RNG
	tree *Tree
}

// stemState is the growth scope of a single stem: the precomputed
// per-segment child rate, the running child spin, and one fractional
// accumulator per purpose. It never crosses stem boundaries; clones get a
// fresh one.
type stemState struct {
	childRate  float64
	childSpin  float64
	leafRate   float64
	leafSpin   float64
	substemAcc core.Diffuser
	leafAcc    core.Diffuser
	splitAcc   core.Diffuser
}

// Generate grows the full abstract structure for the given species
// parameters and seed. It is a pure function of its inputs: the same
// (params, seed) pair always produces a bit-identical tree. The only error
// condition is malformed parameters; degenerate stems are silently dropped.
func Generate(p Params, seed int64) (*Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &generator{
		p:    &p,
		rng:  core.NewRNG(seed),
		tree: &Tree{seed: seed, params: p},
	}
	g.growTrunk()
	return g.tree, nil
}

func (g *generator) growTrunk() {
	lp := &g.p.Levels[0]
	scale := g.p.Scale + g.rng.Uniform(g.p.ScaleV)
	length := (lp.Length + g.rng.Uniform(lp.LengthV)) * scale
	radius := length * g.p.Ratio
	if length < minStemLength || radius < minStemRadius {
		return
	}
	trunk := g.newStem(0, nil, 0, core.NewTransform(), length, radius, false)
	g.tree.roots = append(g.tree.roots, trunk)
	g.growStem(trunk, 0, trunk.Base)
}

// newStem allocates a stem into the arena and updates the running stats.
func (g *generator) newStem(level int, parent *Stem, offset float64, base core.Transform, length, radius float64, clone bool) *Stem {
	lp := &g.p.Levels[level]
	st := &Stem{
		ID:     len(g.tree.stems),
		Parent: -1,
		Level:  level,
		Offset: offset,
		Base:   base,
		Length: length,
		Radius: radius,
		SegLen: length / float64(lp.CurveRes),
		Clone:  clone,
	}
	if parent != nil {
		st.Parent = parent.ID
	}
	g.tree.stems = append(g.tree.stems, st)
	if clone {
		g.tree.stats.Clones++
	} else {
		g.tree.stats.Stems++
	}
	if level > g.tree.stats.MaxLevel {
		g.tree.stats.MaxLevel = level
	}
	return st
}

// growStem runs the segment loop of a stem whose geometry has already been
// accepted. startSeg is 0 for original stems; clones continue from the
// segment after their fork. The transform t is the frame at the start of
// segment startSeg.
func (g *generator) growStem(st *Stem, startSeg int, t core.Transform) {
	lp := &g.p.Levels[st.Level]
	ss := &stemState{}
	final := st.Level == len(g.p.Levels)-1
	if final {
		g.prepareLeafParams(st, ss)
	} else {
		g.prepareSubstemParams(st, ss)
	}

	for i := startSeg; i < lp.CurveRes; i++ {
		t = g.curveSegment(st, i, t)
		seg := g.buildSegment(st, i, t)
		st.Segments = append(st.Segments, seg)
		g.tree.stats.Segments++

		if final {
			g.spawnLeaves(st, ss, i, t)
		} else {
			g.spawnChildren(st, ss, i, t)
		}

		t = t.Translate(st.SegLen)

		if i < lp.CurveRes-1 {
			t = g.checkSplits(st, ss, i, t)
		}
	}
}

// curveSegment applies one segment's worth of curvature to the running
// frame: the configured forward/backward curve split, an optional random
// lateral bend, and the upward tropism term for minor branches.
func (g *generator) curveSegment(st *Stem, i int, t core.Transform) core.Transform {
	lp := &g.p.Levels[st.Level]
	res := float64(lp.CurveRes)

	var delta float64
	if lp.CurveBack == 0 {
		delta = lp.Curve / res
	} else {
		half := res / 2
		if float64(i+1) <= half {
			delta = lp.Curve / half
		} else {
			delta = lp.CurveBack / half
		}
	}
	t = t.RotateX(delta)

	if lp.CurveV > 0 {
		theta := g.rng.Float() * 2 * math.Pi
		axis := core.Vec3{X: math.Cos(theta), Y: math.Sin(theta)}
		t = t.RotateLocal(axis, g.rng.Uniform(lp.CurveV)/res)
	}

	// Phototropism: droopy minor branches bend back up. Levels 0 and 1 are
	// exempt so the trunk silhouette stays under explicit control.
	if st.Level >= 2 && g.p.AttractionUp != 0 {
		decl := t.Declination()
		bend := g.p.AttractionUp * math.Abs(decl*math.Sin(decl)) / res
		axis := t.Heading().Cross(core.Vec3{Z: 1})
		if axis.Len() > 1e-9 {
			t = t.RotateWorld(axis, bend*180/math.Pi)
		}
	}
	return t
}

// buildSegment samples the radii of segment i. Extra subsegments carry the
// trunk's base flare and the taper detail at a stem's tip.
func (g *generator) buildSegment(st *Stem, i int, t core.Transform) Segment {
	lp := &g.p.Levels[st.Level]
	subs := 1
	switch {
	case st.Level == 0 && i == 0 && g.p.Flare > 0:
		subs = 6
	case i == lp.CurveRes-1 && lp.Taper > 0:
		subs = 3
	}

	seg := Segment{Index: i, Start: t}
	for k := 0; k <= subs; k++ {
		f := float64(k) / float64(subs)
		dist := (float64(i) + f) * st.SegLen
		seg.Subs = append(seg.Subs, Subsegment{
			Pos:    f,
			Radius: g.radiusAt(st, dist/st.Length),
			Dist:   dist,
		})
	}
	seg.StartRadius = seg.Subs[0].Radius
	seg.EndRadius = seg.Subs[len(seg.Subs)-1].Radius
	return seg
}

func (g *generator) radiusAt(st *Stem, z float64) float64 {
	return stemRadiusAt(g.p, st, z)
}

// stemRadiusAt evaluates the stem radius at normalized position z in
// [0, 1], applying taper and, on the trunk, the base flare. Lobe modulation
// is angle-dependent and applied at mesh time instead.
func stemRadiusAt(p *Params, st *Stem, z float64) float64 {
	if z < 0 {
		z = 0
	} else if z > 1 {
		z = 1
	}
	lp := &p.Levels[st.Level]
	r := st.Radius * (1 - lp.Taper*z)
	if st.Level == 0 && p.Flare > 0 {
		if y := 1 - 8*z; y > 0 {
			r *= p.Flare*(math.Pow(100, y)-1)/100 + 1
		}
	}
	if r < 0 {
		r = 0
	}
	return r
}
