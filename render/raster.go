package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"travellog/board"
)

var (
	ColorTable     = color.RGBA{0xf5, 0xf5, 0xf4, 0xff}
	colorPaper     = color.RGBA{0xff, 0xfb, 0xf0, 0xff}
	colorEdge      = color.RGBA{0xe7, 0xe5, 0xe4, 0xff}
	colorPhoto     = color.RGBA{0x29, 0x25, 0x24, 0xff}
	colorInk       = color.RGBA{0x29, 0x25, 0x24, 0xff}
	colorFaded     = color.RGBA{0x78, 0x71, 0x6c, 0xff}
	colorLink      = color.RGBA{0x44, 0x40, 0x3c, 0xb3}
	colorSelected  = color.RGBA{0x60, 0xa5, 0xfa, 0x80}
	colorMarker    = color.RGBA{0x3b, 0x82, 0xf6, 0xff}
	colorTape      = color.RGBA{0xfe, 0xf0, 0x8a, 0x99}
	colorShadow    = color.RGBA{0x00, 0x00, 0x00, 0x26}
	colorButton    = color.RGBA{0xff, 0xff, 0xff, 0xe6}
	colorButtonInk = color.RGBA{0x57, 0x53, 0x4e, 0xff}
)

const (
	linkWidth   = 3.0
	photoBorder = 4.0
	fontSize    = 14.0
	lineSpacing = 1.5
	footerRule  = 34.0
	tapeW       = 96.0
	tapeH       = 32.0
)

// Raster draws scenes into images with gg.
type Raster struct {
	face   font.Face
	images map[string]image.Image
	// LoadImage resolves a card's image reference.
	LoadImage func(ref string) (image.Image, error)
}

func NewRaster() (*Raster, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Raster{
		face: truetype.NewFace(ttf, &truetype.Options{
			Size:    fontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
		images:    make(map[string]image.Image),
		LoadImage: gg.LoadImage,
	}, nil
}

type DrawOptions struct {
	Width       int
	Height      int
	ScaleFactor float64
	Background  color.Color
	// Exclude leaves matching nodes out of the image.
	Exclude func(Node) bool
}

// Draw renders the scene at Width x Height logical pixels, multiplied by ScaleFactor.
// The whole content layer is drawn under a single translate+scale so every node shares
// the same transform.
func (r *Raster) Draw(scene Scene, opts DrawOptions) image.Image {
	sf := opts.ScaleFactor
	if sf <= 0 {
		sf = 1
	}
	bg := opts.Background
	if bg == nil {
		bg = ColorTable
	}
	dc := gg.NewContext(int(math.Ceil(float64(opts.Width)*sf)), int(math.Ceil(float64(opts.Height)*sf)))
	dc.SetColor(bg)
	dc.Clear()
	dc.SetFontFace(r.face)
	dc.Scale(sf, sf)

	skip := func(n Node) bool { return opts.Exclude != nil && opts.Exclude(n) }

	tf := scene.Content.Transform
	dc.Push()
	dc.Translate(tf.OffsetX, tf.OffsetY)
	dc.Scale(tf.Scale, tf.Scale)
	for _, node := range scene.Content.Nodes {
		if skip(node) {
			continue
		}
		switch node.Kind {
		case ConnectorNode:
			r.drawConnector(dc, node)
		case CardNode:
			r.drawCard(dc, node.Card)
		}
	}
	dc.Pop()

	for _, node := range scene.Controls {
		if skip(node) || node.Control == nil {
			continue
		}
		r.drawButton(dc, node.Control)
	}
	return dc.Image()
}

func (r *Raster) drawConnector(dc *gg.Context, node Node) {
	c := node.Curve
	dc.Push()
	dc.SetColor(colorLink)
	dc.SetLineWidth(linkWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetDash(dashLength, dashGap)
	dc.MoveTo(c.From.X, c.From.Y)
	dc.QuadraticTo(c.Control.X, c.Control.Y, c.To.X, c.To.Y)
	dc.Stroke()
	dc.Pop()
}

func (r *Raster) image(ref string) image.Image {
	if ref == "" || r.LoadImage == nil {
		return nil
	}
	if img, ok := r.images[ref]; ok {
		return img
	}
	img, err := r.LoadImage(ref)
	if err != nil {
		img = nil
	}
	r.images[ref] = img
	return img
}

func (r *Raster) drawCard(dc *gg.Context, card *CardView) {
	w, h := card.Size()
	x, y := card.X, card.Y

	dc.Push()
	dc.RotateAbout(gg.Radians(card.Tilt()), x+w/2, y+h/2)

	dc.SetColor(colorShadow)
	dc.DrawRectangle(x+4, y+6, w, h)
	dc.Fill()

	dc.SetColor(colorPaper)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	dc.SetColor(colorEdge)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	px, py := x+board.CardPadding, y+board.CardPadding
	pw, ph := float64(board.PhotoWidth), card.Aspect.PhotoHeight()
	dc.SetColor(color.White)
	dc.DrawRectangle(px, py, pw, ph)
	dc.Fill()
	dc.SetColor(colorPhoto)
	dc.DrawRectangle(px+photoBorder, py+photoBorder, pw-2*photoBorder, ph-2*photoBorder)
	dc.Fill()

	if img := r.image(card.ImageRef); img != nil {
		drawCover(dc, img, px+photoBorder, py+photoBorder, pw-2*photoBorder, ph-2*photoBorder)
	} else {
		dc.SetColor(colorFaded)
		dc.DrawStringAnchored("NO IMAGE", px+pw/2, py+ph/2, 0.5, 0.5)
	}
	if card.Connecting {
		dc.SetColor(colorMarker)
		dc.DrawCircle(px+pw/2, py+ph/2, 8)
		dc.Fill()
	}

	text := card.Visible
	if card.Typing() {
		text += "▌"
	}
	dc.SetColor(colorInk)
	dc.DrawStringWrapped(text, px, py+ph+board.CardPadding, 0, 0, pw, lineSpacing, gg.AlignLeft)

	ruleY := y + h - footerRule
	dc.SetColor(colorEdge)
	dc.DrawLine(px, ruleY, px+pw, ruleY)
	dc.Stroke()
	dc.SetColor(colorFaded)
	dc.DrawStringAnchored(card.Date, px, ruleY+footerRule/2, 0, 0.5)

	dc.SetColor(colorTape)
	dc.DrawRectangle(x+w/2-tapeW/2, y-12, tapeW, tapeH)
	dc.Fill()

	if card.Selected {
		dc.SetColor(colorSelected)
		dc.SetLineWidth(4)
		dc.DrawRectangle(x-2, y-2, w+4, h+4)
		dc.Stroke()
	}
	dc.Pop()
}

// drawCover scales img to fill the box, cropping what overflows.
func drawCover(dc *gg.Context, img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	s := math.Max(w/iw, h/ih)

	dc.Push()
	dc.DrawRectangle(x, y, w, h)
	dc.Clip()
	dc.Translate(x+(w-iw*s)/2, y+(h-ih*s)/2)
	dc.Scale(s, s)
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	dc.Pop()
}

func (r *Raster) drawButton(dc *gg.Context, b *Button) {
	dc.SetColor(colorButton)
	dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, b.H/2)
	dc.Fill()
	dc.SetColor(colorButtonInk)
	dc.DrawStringAnchored(b.Label, b.X+b.W/2, b.Y+b.H/2, 0.5, 0.5)
}
