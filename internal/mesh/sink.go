package mesh

import (
	"arbor/internal/core"
)

// UV is one texture coordinate pair.
type UV struct {
	U, V float32
}

// BranchMeta is one entry of the flat per-branch metadata array: enough for
// external skeletal effects (wind sway, collision proxies) without walking
// the structure again. Parent is an index into the same array, -1 for
// roots; it is a lookup value, not an ownership edge.
type BranchMeta struct {
	Parent int
	Pos    core.Vec3
	Rot    core.Mat3
	Radius float64
}

// Sink receives mesh output in traversal order. Implementations that write
// to external I/O may fail; errors abort the build and propagate to the
// caller unchanged. The structure being built from stays valid and can be
// resubmitted.
type Sink interface {
	// Vertex adds a branch vertex and returns its index.
	Vertex(pos core.Vec3) (int, error)
	// LeafVertex adds a leaf vertex carrying the leaf's anchor position as
	// auxiliary data, so external animation can pivot the quad at its base.
	LeafVertex(pos, anchor core.Vec3) (int, error)
	// Quad adds a four-corner polygon with per-corner texture coordinates.
	Quad(idx [4]int, uv [4]UV) error
	// Triangle adds a three-corner polygon with per-corner texture
	// coordinates.
	Triangle(idx [3]int, uv [3]UV) error
	// Branch appends one entry to the per-branch metadata array.
	Branch(meta BranchMeta) error
}

// Collector is an in-memory Sink holding flat arrays: three floats per
// vertex, four indices per quad, eight floats per quad of UVs. It never
// returns an error.
type Collector struct {
	Vertices []float32
	Anchors  []float32 // parallel to Vertices; zero for branch vertices
	Quads    []uint32
	QuadUVs  []float32
	Tris     []uint32
	TriUVs   []float32
	Branches []BranchMeta
}

// VertexCount returns the number of vertices collected.
func (c *Collector) VertexCount() int { return len(c.Vertices) / 3 }

// PolyCount returns the number of polygons (quads plus triangles).
func (c *Collector) PolyCount() int { return len(c.Quads)/4 + len(c.Tris)/3 }

// Reset clears all buffers, retaining capacity.
func (c *Collector) Reset() {
	c.Vertices = c.Vertices[:0]
	c.Anchors = c.Anchors[:0]
	c.Quads = c.Quads[:0]
	c.QuadUVs = c.QuadUVs[:0]
	c.Tris = c.Tris[:0]
	c.TriUVs = c.TriUVs[:0]
	c.Branches = c.Branches[:0]
}

// Vertex implements Sink.
func (c *Collector) Vertex(pos core.Vec3) (int, error) {
	idx := c.VertexCount()
	c.Vertices = append(c.Vertices, float32(pos.X), float32(pos.Y), float32(pos.Z))
	c.Anchors = append(c.Anchors, 0, 0, 0)
	return idx, nil
}

// LeafVertex implements Sink.
func (c *Collector) LeafVertex(pos, anchor core.Vec3) (int, error) {
	idx := c.VertexCount()
	c.Vertices = append(c.Vertices, float32(pos.X), float32(pos.Y), float32(pos.Z))
	c.Anchors = append(c.Anchors, float32(anchor.X), float32(anchor.Y), float32(anchor.Z))
	return idx, nil
}

// Quad implements Sink.
func (c *Collector) Quad(idx [4]int, uv [4]UV) error {
	for _, i := range idx {
		c.Quads = append(c.Quads, uint32(i))
	}
	for _, t := range uv {
		c.QuadUVs = append(c.QuadUVs, t.U, t.V)
	}
	return nil
}

// Triangle implements Sink.
func (c *Collector) Triangle(idx [3]int, uv [3]UV) error {
	for _, i := range idx {
		c.Tris = append(c.Tris, uint32(i))
	}
	for _, t := range uv {
		c.TriUVs = append(c.TriUVs, t.U, t.V)
	}
	return nil
}

// Branch implements Sink.
func (c *Collector) Branch(meta BranchMeta) error {
	c.Branches = append(c.Branches, meta)
	return nil
}
