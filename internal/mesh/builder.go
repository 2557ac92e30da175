package mesh

import (
	"math"

	"arbor/internal/core"
	"arbor/internal/tree"
)

// cullSeedSalt separates the mesh builder's culling stream from the
// generation stream so the two never correlate.
const cullSeedSalt = 0x6c6f64 // "lod"

// texRepeatPerRadius scales the lateral texture repeat of a ring with its
// radius, so bark texels keep roughly constant density across thick and
// thin stems.
const texRepeatPerRadius = 8.0

// collapseRadius is the threshold below which a ring degenerates to a
// single tip vertex, closing the stem without a hole.
const collapseRadius = 1e-6

// Builder walks a finished structure and emits geometry plus per-branch
// metadata into a Sink. It never mutates the structure and may run any
// number of times, for example at different densities.
type Builder struct {
	t *tree.Tree

	// Density holds one byte per level, interpreted as keep-probability
	// (255 = keep always). Stems culled here disappear together with their
	// subtree, without regenerating structure.
	Density []uint8

	branchCount int
}

// NewBuilder returns a Builder that keeps every stem.
func NewBuilder(t *tree.Tree) *Builder {
	density := make([]uint8, tree.MaxLevels)
	for i := range density {
		density[i] = 255
	}
	return &Builder{t: t, Density: density}
}

// Build runs the structure pass and then the geometry pass. Both passes
// seed an identical culling stream, and both save and restore its state
// around the child traversal of every stem, so a stem's cull decision is
// independent of how many clones preceded it.
func (b *Builder) Build(sink Sink) error {
	b.branchCount = 0
	cull := core.NewRNG(b.t.Seed() ^ cullSeedSalt)
	for _, root := range b.t.Roots() {
		if err := b.walkStructure(root, -1, cull, sink); err != nil {
			return err
		}
	}

	cull.Seed(b.t.Seed() ^ cullSeedSalt)
	for _, root := range b.t.Roots() {
		if err := b.walkGeometry(root, cull, sink); err != nil {
			return err
		}
	}
	return nil
}

// keep draws one culling decision for a stem at the given level. The draw
// is consumed even for always-keep levels so both passes stay aligned.
func (b *Builder) keep(level int, cull *core.RNG) bool {
	draw := cull.Byte()
	d := uint8(255)
	if level < len(b.Density) {
		d = b.Density[level]
	}
	return d == 255 || draw < d
}

func (b *Builder) walkStructure(st *tree.Stem, parent int, cull *core.RNG, sink Sink) error {
	if !b.keep(st.Level, cull) {
		return nil
	}
	idx := b.branchCount
	b.branchCount++
	err := sink.Branch(BranchMeta{
		Parent: parent,
		Pos:    st.Base.Pos,
		Rot:    st.Base.Rot,
		Radius: st.Radius,
	})
	if err != nil {
		return err
	}

	saved := cull.State()
	for _, child := range st.Children {
		if err := b.walkStructure(child, idx, cull, sink); err != nil {
			return err
		}
	}
	cull.Restore(saved)
	for _, clone := range st.Clones {
		if err := b.walkStructure(clone, idx, cull, sink); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) walkGeometry(st *tree.Stem, cull *core.RNG, sink Sink) error {
	if !b.keep(st.Level, cull) {
		return nil
	}
	if err := b.emitStem(st, sink); err != nil {
		return err
	}
	for _, leaf := range st.Leaves {
		if err := b.emitLeaf(leaf, sink); err != nil {
			return err
		}
	}

	saved := cull.State()
	for _, child := range st.Children {
		if err := b.walkGeometry(child, cull, sink); err != nil {
			return err
		}
	}
	cull.Restore(saved)
	for _, clone := range st.Clones {
		if err := b.walkGeometry(clone, cull, sink); err != nil {
			return err
		}
	}
	return nil
}

// ring is one emitted vertex ring (or a collapsed tip vertex).
type ring struct {
	idx       []int
	v         float32 // longitudinal texture coordinate
	collapsed bool
}

// emitStem writes the vertex rings and connecting polygons of one stem.
// Each subsegment boundary becomes a ring of MeshPoints vertices; adjacent
// rings within a segment connect with quads, and rings at radius zero
// collapse into a single vertex closed with triangles.
func (b *Builder) emitStem(st *tree.Stem, sink Sink) error {
	p := b.t.Params()
	points := p.MeshPoints(st.Level)

	for si := range st.Segments {
		seg := &st.Segments[si]
		repeat := float32(math.Max(1, math.Round(seg.StartRadius*texRepeatPerRadius)))

		var prev ring
		havePrev := false
		for _, sub := range seg.Subs {
			frame := seg.Start.Translate(sub.Pos * st.SegLen)
			r, err := b.emitRing(st, frame, sub.Radius, sub.Dist, points, sink)
			if err != nil {
				return err
			}
			if havePrev {
				if err := b.connectRings(prev, r, points, repeat, sink); err != nil {
					return err
				}
			}
			prev = r
			havePrev = true
		}
	}
	return nil
}

func (b *Builder) emitRing(st *tree.Stem, frame core.Transform, radius, dist float64, points int, sink Sink) (ring, error) {
	r := ring{v: float32(dist)}
	if radius < collapseRadius {
		idx, err := sink.Vertex(frame.Pos)
		if err != nil {
			return ring{}, err
		}
		r.idx = []int{idx}
		r.collapsed = true
		return r, nil
	}

	p := b.t.Params()
	for a := 0; a < points; a++ {
		theta := 2 * math.Pi * float64(a) / float64(points)
		ra := radius
		if st.Level == 0 && p.Lobes > 0 {
			// Bark ridges: lobed silhouette on the trunk rings.
			ra *= 1 + p.LobeDepth*math.Cos(float64(p.Lobes)*theta)
		}
		pos := frame.Apply(core.Vec3{X: ra * math.Cos(theta), Y: ra * math.Sin(theta)})
		idx, err := sink.Vertex(pos)
		if err != nil {
			return ring{}, err
		}
		r.idx = append(r.idx, idx)
	}
	return r, nil
}

// connectRings joins two adjacent rings with quads, or with a triangle fan
// when either side is a collapsed tip.
func (b *Builder) connectRings(lo, hi ring, points int, repeat float32, sink Sink) error {
	u := func(a int) float32 { return float32(a) / float32(points) * repeat }

	switch {
	case lo.collapsed && hi.collapsed:
		return nil
	case hi.collapsed:
		apex := hi.idx[0]
		for a := 0; a < points; a++ {
			n := (a + 1) % points
			err := sink.Triangle(
				[3]int{lo.idx[a], lo.idx[n], apex},
				[3]UV{{u(a), lo.v}, {u(a + 1), lo.v}, {(u(a) + u(a+1)) / 2, hi.v}},
			)
			if err != nil {
				return err
			}
		}
		return nil
	case lo.collapsed:
		apex := lo.idx[0]
		for a := 0; a < points; a++ {
			n := (a + 1) % points
			err := sink.Triangle(
				[3]int{apex, hi.idx[n], hi.idx[a]},
				[3]UV{{(u(a) + u(a+1)) / 2, lo.v}, {u(a + 1), hi.v}, {u(a), hi.v}},
			)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		for a := 0; a < points; a++ {
			n := (a + 1) % points
			err := sink.Quad(
				[4]int{lo.idx[a], lo.idx[n], hi.idx[n], hi.idx[a]},
				[4]UV{{u(a), lo.v}, {u(a + 1), lo.v}, {u(a + 1), hi.v}, {u(a), hi.v}},
			)
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// leafAspects maps the leaf shape selector to a width/length ratio.
var leafAspects = []float64{0.5, 1.0, 0.3, 0.7}

// emitLeaf writes one four-vertex quad in the leaf's frame, storing the
// anchor position on every vertex so external animation can pivot the quad
// at its base.
func (b *Builder) emitLeaf(leaf tree.Leaf, sink Sink) error {
	p := b.t.Params()
	aspect := leafAspects[0]
	if p.LeafShape >= 0 && p.LeafShape < len(leafAspects) {
		aspect = leafAspects[p.LeafShape]
	}
	l := p.LeafScale
	w := l * aspect
	anchor := leaf.Frame.Pos

	corners := [4]core.Vec3{
		{X: -w / 2},
		{X: w / 2},
		{X: w / 2, Z: l},
		{X: -w / 2, Z: l},
	}
	var idx [4]int
	for i, c := range corners {
		vi, err := sink.LeafVertex(leaf.Frame.Apply(c), anchor)
		if err != nil {
			return err
		}
		idx[i] = vi
	}
	return sink.Quad(idx, [4]UV{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
}
