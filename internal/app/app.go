//go:build ebiten

package app

import (
	"image/color"
	"time"

	"arbor/internal/mesh"
	"arbor/internal/render"
	"arbor/internal/tree"
	"arbor/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orbitStep = 0.03
	zoomStep  = 1.04
)

// densitySteps are the crown densities the bracket keys cycle through.
var densitySteps = []uint8{255, 192, 128, 64, 16}

var skyColor = color.RGBA{R: 168, G: 196, B: 220, A: 255}

// Game adapts a growing tree to the ebiten.Game interface: it regrows the
// structure on demand and repaints the mesh every frame.
type Game struct {
	species string
	params  tree.Params
	seed    int64

	tree      *tree.Tree
	builder   *mesh.Builder
	collector mesh.Collector

	cam     *render.Camera
	painter *render.MeshPainter
	panel   *ui.Panel

	width, height int
	densityIdx    int
}

// New grows the initial structure and constructs a Game around it.
func New(species string, p tree.Params, seed int64, width, height int) (*Game, error) {
	g := &Game{
		species: species,
		params:  p,
		seed:    seed,
		cam:     render.NewCamera(p.Scale * 2.5),
		painter: render.NewMeshPainter(),
		panel:   ui.NewPanel(),
		width:   width,
		height:  height,
	}
	g.cam.Target.Z = p.Scale * 0.5
	if err := g.regrow(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// regrow regenerates the structure with the provided seed and rebuilds the
// mesh at the current density.
func (g *Game) regrow(seed int64) error {
	t, err := tree.Generate(g.params, seed)
	if err != nil {
		return err
	}
	g.seed = seed
	g.tree = t
	g.builder = mesh.NewBuilder(t)
	return g.rebuild()
}

// rebuild re-runs the mesh builder against the existing structure.
func (g *Game) rebuild() error {
	d := densitySteps[g.densityIdx]
	for level := 1; level < len(g.builder.Density); level++ {
		g.builder.Density[level] = d
	}
	g.collector.Reset()
	return g.builder.Build(&g.collector)
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.regrow(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.regrow(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.painter.DrawLeaves = !g.painter.DrawLeaves
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && g.densityIdx > 0 {
		g.densityIdx--
		if err := g.rebuild(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && g.densityIdx < len(densitySteps)-1 {
		g.densityIdx++
		if err := g.rebuild(); err != nil {
			return err
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.Orbit(-orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.Orbit(orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.Orbit(0, orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.Orbit(0, -orbitStep)
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		if wheelY > 0 {
			g.cam.Zoom(1 / zoomStep)
		} else {
			g.cam.Zoom(zoomStep)
		}
	}

	g.panel.Update()
	return nil
}

// Draw paints the mesh and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.painter.Paint(screen, &g.collector, g.cam)
	g.panel.Draw(screen, ui.PanelInfo{
		Species:  g.species,
		Seed:     g.seed,
		Stats:    g.tree.Stats(),
		Snapshot: g.tree.Params().Snapshot(),
		Verts:    g.collector.VertexCount(),
		Polys:    g.collector.PolyCount(),
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
