package tree

import (
	"math"
	"testing"
)

// bareTrunk is a single-level species with no variance anywhere: one stem,
// straight up, uniform radius.
func bareTrunk() Params {
	return Params{
		Shape:    ShapeCylindrical,
		Scale:    1,
		BaseSize: 0,
		Ratio:    0.1,
		Levels: []Level{
			{Length: 10, Taper: 0, CurveRes: 5},
		},
	}
}

func TestSingleStemScenario(t *testing.T) {
	tr, err := Generate(bareTrunk(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tr.Roots()) != 1 || len(tr.Stems()) != 1 {
		t.Fatalf("want exactly one stem, got %d roots / %d stems", len(tr.Roots()), len(tr.Stems()))
	}
	trunk := tr.Roots()[0]
	if trunk.Length != 10 || trunk.Radius != 1 {
		t.Fatalf("trunk length %v radius %v, want 10 and 1", trunk.Length, trunk.Radius)
	}
	if len(trunk.Segments) != 5 {
		t.Fatalf("trunk has %d segments, want 5", len(trunk.Segments))
	}
	for i, seg := range trunk.Segments {
		wantZ := float64(i) * 2
		if math.Abs(seg.Start.Pos.Z-wantZ) > 1e-9 || math.Abs(seg.Start.Pos.X) > 1e-9 || math.Abs(seg.Start.Pos.Y) > 1e-9 {
			t.Fatalf("segment %d starts at %+v, want (0,0,%v)", i, seg.Start.Pos, wantZ)
		}
		if math.Abs(seg.StartRadius-1) > 1e-9 || math.Abs(seg.EndRadius-1) > 1e-9 {
			t.Fatalf("segment %d radii %v..%v, want uniform 1", i, seg.StartRadius, seg.EndRadius)
		}
	}
	if tr.Stats().Leaves != 0 {
		t.Fatalf("leafless species produced %d leaves", tr.Stats().Leaves)
	}
	if len(trunk.Clones) != 0 || len(trunk.Children) != 0 {
		t.Fatal("single-level trunk must not branch or fork")
	}
}

// baseRegionParams reproduces the base-size distribution scenario: 8
// children over a 10-segment trunk whose first 30% is unbranched.
func baseRegionParams() Params {
	return Params{
		Shape:    ShapeCylindrical,
		Scale:    1,
		BaseSize: 0.3,
		Ratio:    0.1,
		Levels: []Level{
			{Length: 10, Taper: 0, CurveRes: 10},
			{Children: 8, Length: 0.3, Taper: 0, CurveRes: 1, DownAngle: 45, Rotate: 140},
		},
	}
}

func TestBaseSizeDistribution(t *testing.T) {
	tr, err := Generate(baseRegionParams(), 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	trunk := tr.Roots()[0]
	if len(trunk.Children) != 8 {
		t.Fatalf("trunk spawned %d children, want 8", len(trunk.Children))
	}

	baseLen := 0.3 * trunk.Length
	perSegment := make([]int, 10)
	for _, ch := range trunk.Children {
		if ch.Offset < baseLen {
			t.Fatalf("child at offset %v inside the unbranched base region (< %v)", ch.Offset, baseLen)
		}
		perSegment[int(ch.Offset/trunk.SegLen)]++
	}
	for i := 0; i < 3; i++ {
		if perSegment[i] != 0 {
			t.Fatalf("segment %d inside the base region has %d children", i, perSegment[i])
		}
	}
	min, max := 8, 0
	for i := 3; i < 10; i++ {
		if perSegment[i] < min {
			min = perSegment[i]
		}
		if perSegment[i] > max {
			max = perSegment[i]
		}
	}
	if max-min > 1 {
		t.Fatalf("per-segment child counts %v spread by more than 1", perSegment[3:])
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := Params{
		Shape:        ShapeTendFlame,
		Scale:        13,
		ScaleV:       3,
		BaseSize:     0.4,
		Ratio:        0.015,
		RatioPower:   1.2,
		Flare:        0.6,
		AttractionUp: 0.5,
		Leaves:       12,
		LeafScale:    0.17,
		Levels: []Level{
			{Length: 1, Taper: 1, CurveV: 20, CurveRes: 5},
			{Children: 20, Length: 0.3, Taper: 1, DownAngle: 60, DownAngleV: 20, Rotate: 140, Curve: -40, CurveV: 50, CurveRes: 5},
			{Children: 10, Length: 0.6, Taper: 1, DownAngle: 45, DownAngleV: 10, Rotate: 140, CurveV: 75, CurveRes: 3},
		},
	}

	a, err := Generate(p, 42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(p, 42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if a.Stats() != b.Stats() {
		t.Fatalf("stats differ: %+v vs %+v", a.Stats(), b.Stats())
	}
	as, bs := a.Stems(), b.Stems()
	if len(as) != len(bs) {
		t.Fatalf("stem counts differ: %d vs %d", len(as), len(bs))
	}
	for i := range as {
		if as[i].Length != bs[i].Length || as[i].Radius != bs[i].Radius ||
			as[i].Offset != bs[i].Offset || as[i].Base != bs[i].Base {
			t.Fatalf("stem %d differs between identical runs", i)
		}
		if len(as[i].Leaves) != len(bs[i].Leaves) {
			t.Fatalf("stem %d leaf counts differ", i)
		}
		for j := range as[i].Leaves {
			if as[i].Leaves[j] != bs[i].Leaves[j] {
				t.Fatalf("stem %d leaf %d differs", i, j)
			}
		}
	}
}

func TestSeedInfluencesStructure(t *testing.T) {
	p := baseRegionParams()
	p.ScaleV = 0.5
	p.Levels[1].DownAngleV = 20
	p.Levels[1].RotateV = 30

	a, err := Generate(p, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(p, 2)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a.Roots()[0].Length != b.Roots()[0].Length {
		return // scale variance already separated the trees
	}
	as, bs := a.Stems(), b.Stems()
	if len(as) != len(bs) {
		return
	}
	for i := range as {
		if as[i].Base != bs[i].Base {
			return
		}
	}
	t.Fatal("seeds 1 and 2 produced identical structures")
}

func TestChildRadiusNeverExceedsParent(t *testing.T) {
	p := Params{
		Shape:      ShapeSpherical,
		Scale:      10,
		BaseSize:   0.1,
		Ratio:      0.05,
		RatioPower: 0, // forces the clamp: raw child radius equals parent base radius
		Flare:      1,
		Levels: []Level{
			{Length: 1, Taper: 1, CurveRes: 6},
			{Children: 15, Length: 0.4, Taper: 1, CurveRes: 3, DownAngle: 50, Rotate: 120},
			{Children: 8, Length: 0.5, Taper: 1, CurveRes: 2, DownAngle: 40, Rotate: 140},
		},
	}
	tr, err := Generate(p, 9)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	stems := tr.Stems()
	checked := 0
	for _, st := range stems {
		for _, ch := range st.Children {
			parentR := tr.RadiusAt(st, ch.Offset/st.Length)
			if ch.Radius > parentR+1e-9 {
				t.Fatalf("child radius %v exceeds parent radius %v at offset %v", ch.Radius, parentR, ch.Offset)
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatal("no children generated, invariant untested")
	}
}

func TestSplitScenario(t *testing.T) {
	p := Params{
		Shape:      ShapeCylindrical,
		Scale:      1,
		Ratio:      0.1,
		SplitAngle: 30,
		Levels: []Level{
			{Length: 10, Taper: 0, CurveRes: 2, SegSplits: 1},
		},
	}
	tr, err := Generate(p, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	trunk := tr.Roots()[0]
	if len(trunk.Clones) != 1 {
		t.Fatalf("split count 1 produced %d clones, want 1", len(trunk.Clones))
	}
	clone := trunk.Clones[0]
	if !clone.Clone {
		t.Fatal("clone flag not set")
	}
	if clone.Offset != trunk.SegLen {
		t.Fatalf("clone forks at offset %v, want %v", clone.Offset, trunk.SegLen)
	}
	if len(clone.Segments) != 1 || clone.Segments[0].Index != 1 {
		t.Fatalf("clone must continue with segment 1 only, got %+v", clone.Segments)
	}
	if clone.Radius != trunk.Radius {
		t.Fatalf("with zero shrink, clone radius %v should match trunk %v", clone.Radius, trunk.Radius)
	}

	// The fork's two continuations leave in opposite azimuths.
	oh := trunk.Segments[1].Start.Heading()
	ch := clone.Segments[0].Start.Heading()
	oAz := math.Atan2(oh.Y, oh.X)
	cAz := math.Atan2(ch.Y, ch.X)
	diff := math.Abs(oAz - cAz)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	if math.Abs(diff-math.Pi) > 1e-6 {
		t.Fatalf("fork azimuths differ by %v rad, want pi", diff)
	}
}

func TestCloneRadiusShrink(t *testing.T) {
	p := Params{
		Shape:             ShapeCylindrical,
		Scale:             1,
		Ratio:             0.1,
		SplitAngle:        20,
		SplitRadiusShrink: 0.1,
		Levels: []Level{
			{Length: 10, Taper: 0, CurveRes: 2, SegSplits: 1},
		},
	}
	tr, err := Generate(p, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	trunk := tr.Roots()[0]
	if len(trunk.Clones) != 1 {
		t.Fatalf("want 1 clone, got %d", len(trunk.Clones))
	}
	want := trunk.Radius * 0.9
	if math.Abs(trunk.Clones[0].Radius-want) > 1e-12 {
		t.Fatalf("clone radius %v, want %v", trunk.Clones[0].Radius, want)
	}
}

func TestBaseSplitsForced(t *testing.T) {
	p := Params{
		Shape:      ShapeCylindrical,
		Scale:      1,
		Ratio:      0.1,
		BaseSplits: 2,
		SplitAngle: 15,
		Levels: []Level{
			{Length: 10, Taper: 0, CurveRes: 4},
		},
	}
	tr, err := Generate(p, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	trunk := tr.Roots()[0]
	if len(trunk.Clones) != 2 {
		t.Fatalf("base splits 2 produced %d clones at the first boundary", len(trunk.Clones))
	}
	for _, c := range trunk.Clones {
		if c.Offset != trunk.SegLen {
			t.Fatalf("forced split forked at %v, want first boundary %v", c.Offset, trunk.SegLen)
		}
	}
}

func TestGenerationTerminates(t *testing.T) {
	// Four levels with generous child counts: the prune cutoff must still
	// bound the structure.
	p := Params{
		Shape:      ShapeConical,
		Scale:      8,
		BaseSize:   0.2,
		Ratio:      0.02,
		RatioPower: 1.5,
		Leaves:     4,
		LeafScale:  0.2,
		Levels: []Level{
			{Length: 1, Taper: 1, CurveRes: 4},
			{Children: 12, Length: 0.35, Taper: 1, CurveRes: 4, DownAngle: 50, Rotate: 140},
			{Children: 10, Length: 0.45, Taper: 1, CurveRes: 3, DownAngle: 45, Rotate: 140},
			{Children: 8, Length: 0.4, Taper: 1, CurveRes: 2, DownAngle: 45, Rotate: 77},
		},
	}
	tr, err := Generate(p, 11)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	st := tr.Stats()
	if st.Stems == 0 {
		t.Fatal("no stems generated")
	}
	if st.MaxLevel >= MaxLevels {
		t.Fatalf("recursion exceeded the configured depth: max level %d", st.MaxLevel)
	}
}

func TestDegenerateStemsPruned(t *testing.T) {
	p := baseRegionParams()
	// Children would come out far below the length threshold.
	p.Levels[1].Length = 0.00005
	tr, err := Generate(p, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n := len(tr.Roots()[0].Children); n != 0 {
		t.Fatalf("degenerate children were kept: %d", n)
	}
	if len(tr.Stems()) != 1 {
		t.Fatalf("arena should hold only the trunk, got %d stems", len(tr.Stems()))
	}
}
