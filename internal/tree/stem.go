package tree

import "arbor/internal/core"

// Stem is one chain of segments at a given hierarchy level: the trunk, a
// branch, or a twig. Stems own their children and clones; parent links are
// arena indices kept for metadata lookups only.
type Stem struct {
	ID     int
	Parent int // arena id of the stem this one grew from, -1 for the trunk
	Level  int

	Offset float64        // attachment distance along the parent stem
	Base   core.Transform // frame at the stem's base

	Length float64
	Radius float64 // base radius
	SegLen float64 // length of each of the CurveRes segments

	// Clone marks a forked continuation rather than an original stem.
	Clone bool

	Segments []Segment
	Children []*Stem
	Clones   []*Stem
	Leaves   []Leaf
}

// Segment is one longitudinal subdivision of a stem.
type Segment struct {
	Index       int // position within the stem; clones continue their fork's numbering
	Start       core.Transform
	StartRadius float64
	EndRadius   float64
	Subs        []Subsegment
}

// Subsegment is a fine radial sample within a segment, used for flare and
// tip detail. Pos 0 is the segment start.
type Subsegment struct {
	Pos    float64 // fraction along the segment, in [0, 1]
	Radius float64
	Dist   float64 // cumulative distance from the stem base, drives the V texture coordinate
}

// Leaf is an oriented anchor for a billboard quad emitted at mesh time.
type Leaf struct {
	Frame core.Transform
}

// Stats summarizes a generated structure.
type Stats struct {
	Stems    int // original stems, clones excluded
	Clones   int
	Segments int
	Leaves   int
	MaxLevel int // deepest level that produced at least one stem
}

// Tree is the completed abstract structure: an arena of stems plus the root
// trunk. It carries no vertices; the mesh builder derives geometry from it
// as many times as needed.
type Tree struct {
	seed   int64
	params Params

	stems []*Stem
	roots []*Stem
	stats Stats
}

// Seed returns the seed the structure was generated from.
func (t *Tree) Seed() int64 { return t.seed }

// Params exposes the species parameters the structure was grown with. The
// returned value must be treated as read-only.
func (t *Tree) Params() *Params { return &t.params }

// Roots returns the trunk stems.
func (t *Tree) Roots() []*Stem { return t.roots }

// Stems returns the arena of all stems in creation order; a stem's ID is
// its index here.
func (t *Tree) Stems() []*Stem { return t.stems }

// Stats returns structure counts gathered during generation.
func (t *Tree) Stats() Stats { return t.stats }

// RadiusAt evaluates a stem's radius at normalized position z in [0, 1],
// including taper and trunk flare. External analysis (collision proxies)
// uses this to sample the structure without rebuilding the mesh.
func (t *Tree) RadiusAt(st *Stem, z float64) float64 {
	return stemRadiusAt(&t.params, st, z)
}
