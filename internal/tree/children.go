package tree

import (
	"math"

	"arbor/internal/core"
)

// prepareSubstemParams computes the fractional child rate consumed once per
// segment. Trunk stems spread their configured total over the fraction of
// the stem above the unbranched base region; deeper stems spread it over
// the whole stem.
func (g *generator) prepareSubstemParams(st *Stem, ss *stemState) {
	child := &g.p.Levels[st.Level+1]
	total := child.Children + g.rng.Uniform(child.ChildrenV)
	if total < 0 {
		total = 0
	}
	res := float64(g.p.Levels[st.Level].CurveRes)
	if st.Level == 0 {
		ss.childRate = total / res / (1 - g.p.BaseSize)
	} else {
		ss.childRate = total / res
	}
}

// spawnChildren emits the child stems of segment i. The integer count comes
// from the stem's substem accumulator; within the segment, children sit at
// evenly spaced offsets jittered by up to a quarter of the spacing.
func (g *generator) spawnChildren(st *Stem, ss *stemState, i int, t core.Transform) {
	segStart := float64(i) * st.SegLen
	segEnd := segStart + st.SegLen

	rate := ss.childRate
	winStart := segStart
	if st.Level == 0 {
		baseLen := g.p.BaseSize * st.Length
		switch {
		case segEnd <= baseLen:
			rate = 0
		case segStart < baseLen:
			// The base boundary falls mid-segment: scale the rate by the
			// usable fraction and place children beyond the boundary.
			rate *= (segEnd - baseLen) / st.SegLen
			winStart = baseLen
		}
	}

	count := ss.substemAcc.Next(rate)
	if count <= 0 {
		return
	}

	spacing := (segEnd - winStart) / float64(count)
	for k := 0; k < count; k++ {
		offset := winStart + (float64(k)+0.5)*spacing + g.rng.Uniform(spacing/4)
		if offset < winStart {
			offset = winStart
		} else if offset > segEnd {
			offset = segEnd
		}
		g.makeChild(st, ss, offset, segStart, t)
	}
}

// makeChild orients and grows a single child stem attached at the given
// absolute offset. The child is kept only if its derived geometry clears
// the pruning thresholds.
func (g *generator) makeChild(st *Stem, ss *stemState, offset, segStart float64, t core.Transform) {
	child := &g.p.Levels[st.Level+1]

	ss.childSpin += child.Rotate + g.rng.Uniform(child.RotateV)
	down := child.DownAngle + g.rng.Uniform(child.DownAngleV)

	ct := t.Translate(offset - segStart)
	ct = ct.Spin(ss.childSpin)
	ct = ct.RotateX(down)

	ratio := child.Length + g.rng.Uniform(child.LengthV)
	var length float64
	if st.Level == 0 {
		length = st.Length * ratio * ShapeRatio(g.p.Shape, offset/st.Length)
	} else {
		length = ratio * (st.Length - 0.6*offset)
	}
	if length < minStemLength {
		return
	}

	radius := st.Radius * math.Pow(length/st.Length, g.p.RatioPower)
	// A child may never be thicker than its parent at the attachment point.
	if parentR := g.radiusAt(st, offset/st.Length); radius > parentR {
		radius = parentR
	}
	if radius < minStemRadius {
		return
	}

	cs := g.newStem(st.Level+1, st, offset, ct, length, radius, false)
	st.Children = append(st.Children, cs)
	g.growStem(cs, 0, ct)
}
