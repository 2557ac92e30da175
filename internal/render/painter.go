//go:build ebiten

package render

import (
	"image/color"
	"math"
	"sort"

	"arbor/internal/core"
	"arbor/internal/mesh"

	"github.com/hajimehoshi/ebiten/v2"
)

// MeshPainter rasterizes a collected mesh with a depth-sorted triangle
// pass. It reuses its scratch buffers across frames.
type MeshPainter struct {
	pixel *ebiten.Image

	BranchColor color.RGBA
	LeafColor   color.RGBA
	DrawLeaves  bool

	screenXY []float32 // two floats per projected vertex
	depth    []float64
	visible  []bool
	leafVert []bool
	tris     []paintTri

	verts   []ebiten.Vertex
	indices []uint16
}

type paintTri struct {
	a, b, c int
	depth   float64
	leaf    bool
}

// NewMeshPainter constructs a painter with default bark and foliage colors.
func NewMeshPainter() *MeshPainter {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &MeshPainter{
		pixel:       px,
		BranchColor: color.RGBA{R: 110, G: 82, B: 58, A: 255},
		LeafColor:   color.RGBA{R: 68, G: 140, B: 60, A: 255},
		DrawLeaves:  true,
	}
}

// Paint projects the mesh through cam and draws it onto screen, farthest
// triangles first.
func (p *MeshPainter) Paint(screen *ebiten.Image, c *mesh.Collector, cam *Camera) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	n := c.VertexCount()
	p.screenXY = p.screenXY[:0]
	p.depth = p.depth[:0]
	p.visible = p.visible[:0]
	p.leafVert = p.leafVert[:0]

	maxDepth := 0.0
	for i := 0; i < n; i++ {
		pos := core.Vec3{
			X: float64(c.Vertices[i*3]),
			Y: float64(c.Vertices[i*3+1]),
			Z: float64(c.Vertices[i*3+2]),
		}
		x, y, d, ok := cam.Project(pos, w, h)
		p.screenXY = append(p.screenXY, float32(x), float32(y))
		p.depth = append(p.depth, d)
		p.visible = append(p.visible, ok)
		leaf := c.Anchors[i*3] != 0 || c.Anchors[i*3+1] != 0 || c.Anchors[i*3+2] != 0
		p.leafVert = append(p.leafVert, leaf)
		if ok && d > maxDepth {
			maxDepth = d
		}
	}

	p.tris = p.tris[:0]
	for q := 0; q+3 < len(c.Quads); q += 4 {
		a, b, cc, d := int(c.Quads[q]), int(c.Quads[q+1]), int(c.Quads[q+2]), int(c.Quads[q+3])
		p.addTri(a, b, cc)
		p.addTri(a, cc, d)
	}
	for t := 0; t+2 < len(c.Tris); t += 3 {
		p.addTri(int(c.Tris[t]), int(c.Tris[t+1]), int(c.Tris[t+2]))
	}

	sort.Slice(p.tris, func(i, j int) bool { return p.tris[i].depth > p.tris[j].depth })

	p.verts = p.verts[:0]
	p.indices = p.indices[:0]
	flush := func() {
		if len(p.indices) > 0 {
			screen.DrawTriangles(p.verts, p.indices, p.pixel, nil)
			p.verts = p.verts[:0]
			p.indices = p.indices[:0]
		}
	}
	for _, tri := range p.tris {
		if len(p.verts) > math.MaxUint16-3 {
			flush()
		}
		col := p.BranchColor
		if tri.leaf {
			col = p.LeafColor
		}
		// Cheap depth shading toward the back of the crown.
		shade := 1 - 0.45*tri.depth/math.Max(maxDepth, 1e-6)
		base := len(p.verts)
		for _, vi := range [3]int{tri.a, tri.b, tri.c} {
			p.verts = append(p.verts, ebiten.Vertex{
				DstX:   p.screenXY[vi*2],
				DstY:   p.screenXY[vi*2+1],
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: float32(float64(col.R) / 255 * shade),
				ColorG: float32(float64(col.G) / 255 * shade),
				ColorB: float32(float64(col.B) / 255 * shade),
				ColorA: 1,
			})
		}
		p.indices = append(p.indices, uint16(base), uint16(base+1), uint16(base+2))
	}
	flush()
}

func (p *MeshPainter) addTri(a, b, c int) {
	if !p.visible[a] || !p.visible[b] || !p.visible[c] {
		return
	}
	leaf := p.leafVert[a] && p.leafVert[b] && p.leafVert[c]
	if leaf && !p.DrawLeaves {
		return
	}
	p.tris = append(p.tris, paintTri{
		a: a, b: b, c: c,
		depth: (p.depth[a] + p.depth[b] + p.depth[c]) / 3,
		leaf:  leaf,
	})
}
