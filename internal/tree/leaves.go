package tree

import "arbor/internal/core"

// prepareLeafParams computes the per-segment leaf rate for a final-level
// stem. Stems deeper in the canopy carry fewer leaves, following the
// tapered-cylinder envelope of their attachment position.
func (g *generator) prepareLeafParams(st *Stem, ss *stemState) {
	total := g.p.Leaves
	if st.Offset > 0 && st.Length > 0 {
		parent := g.tree.stems[st.Parent]
		if parent.Length > 0 {
			total *= ShapeRatio(ShapeTaperedCylinder, st.Offset/parent.Length)
		}
	}
	ss.leafRate = total / float64(g.p.Levels[st.Level].CurveRes)
}

// spawnLeaves mirrors child spawning at the final level: an integer count
// per segment from the leaf accumulator, even spacing with jitter, and the
// same spin/down-angle orientation rules a child stem would get.
func (g *generator) spawnLeaves(st *Stem, ss *stemState, i int, t core.Transform) {
	count := ss.leafAcc.Next(ss.leafRate)
	if count <= 0 {
		return
	}

	lp := &g.p.Levels[st.Level]
	spacing := st.SegLen / float64(count)
	for k := 0; k < count; k++ {
		pos := (float64(k)+0.5)*spacing + g.rng.Uniform(spacing/4)
		if pos < 0 {
			pos = 0
		} else if pos > st.SegLen {
			pos = st.SegLen
		}

		ss.leafSpin += lp.Rotate + g.rng.Uniform(lp.RotateV)
		down := lp.DownAngle + g.rng.Uniform(lp.DownAngleV)

		lt := t.Translate(pos)
		lt = lt.Spin(ss.leafSpin)
		lt = lt.RotateX(down)
		st.Leaves = append(st.Leaves, Leaf{Frame: lt})
		g.tree.stats.Leaves++
	}
}
