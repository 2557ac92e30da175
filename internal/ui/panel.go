//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"arbor/internal/core"
	"arbor/internal/tree"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// PanelInfo is the per-frame state the panel renders.
type PanelInfo struct {
	Species  string
	Seed     int64
	Stats    tree.Stats
	Snapshot core.ParameterSnapshot
	Verts    int
	Polys    int
}

// Panel renders the species parameter sheet down the left edge of the
// viewer. H toggles it.
type Panel struct {
	visible bool
	pixel   *ebiten.Image
}

// NewPanel constructs a visible panel.
func NewPanel() *Panel {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &Panel{visible: true, pixel: px}
}

// Update handles the visibility toggle.
func (p *Panel) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		p.visible = !p.visible
	}
}

const (
	panelPadding = 12
	lineHeight   = 16
	panelWidth   = 260
)

var (
	panelBG    = color.RGBA{R: 16, G: 16, B: 20, A: 210}
	headerCol  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelCol   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueCol   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	helpString = "R reseed  S shuffle  L leaves  [ ] density  H panel  Q quit"
)

// Draw paints the panel onto the screen.
func (p *Panel) Draw(screen *ebiten.Image, info PanelInfo) {
	face := basicfont.Face7x13
	if !p.visible {
		text.Draw(screen, helpString, face, panelPadding, screen.Bounds().Dy()-panelPadding, labelCol)
		return
	}

	lines := p.lines(info)
	height := len(lines)*lineHeight + 2*panelPadding
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(panelWidth, float64(height))
	op.ColorM.Scale(
		float64(panelBG.R)/255, float64(panelBG.G)/255,
		float64(panelBG.B)/255, float64(panelBG.A)/255,
	)
	screen.DrawImage(p.pixel, op)

	y := panelPadding + lineHeight - 4
	for _, line := range lines {
		text.Draw(screen, line.text, face, panelPadding, y, line.col)
		y += lineHeight
	}
	text.Draw(screen, helpString, face, panelPadding, screen.Bounds().Dy()-panelPadding, labelCol)
}

type panelLine struct {
	text string
	col  color.RGBA
}

func (p *Panel) lines(info PanelInfo) []panelLine {
	lines := []panelLine{
		{fmt.Sprintf("%s  seed %d", info.Species, info.Seed), headerCol},
		{fmt.Sprintf("stems %d  clones %d  leaves %d",
			info.Stats.Stems, info.Stats.Clones, info.Stats.Leaves), valueCol},
		{fmt.Sprintf("verts %d  polys %d", info.Verts, info.Polys), valueCol},
	}
	for _, group := range info.Snapshot.Groups {
		lines = append(lines, panelLine{"", labelCol}, panelLine{group.Name, headerCol})
		for _, param := range group.Params {
			lines = append(lines, panelLine{
				fmt.Sprintf("  %-14s %s", param.Label, param.Value), valueCol,
			})
		}
	}
	return lines
}
