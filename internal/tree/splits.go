package tree

import (
	"math"

	"arbor/internal/core"
)

// checkSplits runs the fork check at the boundary after segment i and
// returns the (possibly deflected) frame the original stem continues with.
// Each clone spins around the heading by 360/(n+1)*(1+j) degrees relative
// to the original, pitches away by the split angle, and then recurses
// through the remaining segments exactly like a primary stem.
func (g *generator) checkSplits(st *Stem, ss *stemState, i int, t core.Transform) core.Transform {
	lp := &g.p.Levels[st.Level]

	var count int
	if st.Level == 0 && i == 0 && g.p.BaseSplits > 0 {
		// The trunk's first boundary uses the forced base split count.
		count = g.p.BaseSplits
	} else if lp.SegSplits > 0 {
		count = ss.splitAcc.Next(lp.SegSplits)
	}
	if count <= 0 {
		return t
	}

	angle := g.p.SplitAngle + g.rng.Uniform(g.p.SplitAngleV) - t.Declination()*180/math.Pi
	if angle < 0 {
		angle = 0
	}

	forkOffset := float64(i+1) * st.SegLen
	for j := 0; j < count; j++ {
		div := 360 / float64(count+1) * float64(1+j)
		ct := t.Spin(div).RotateX(angle)

		radius := st.Radius * (1 - g.p.SplitRadiusShrink)
		if radius < minStemRadius {
			continue
		}
		clone := g.newStem(st.Level, st, forkOffset, ct, st.Length, radius, true)
		st.Clones = append(st.Clones, clone)
		g.growStem(clone, i+1, ct)
	}

	// The original's own trajectory deflects to complete the fork.
	return t.RotateX(angle)
}
