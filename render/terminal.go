package render

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"travellog/viewport"
)

const (
	// each terminal cell stands for a block of virtual screen pixels
	DefaultCellW = 8.0
	DefaultCellH = 16.0

	gridStep    = 100.0
	minGridCell = 2.0
	cellDashOn  = 3
	cellDashOff = 2

	// connector dash pattern in world pixels
	dashLength = 12.0
	dashGap    = 6.0
)

type class int

const (
	clsNone class = iota
	clsGrid
	clsLink
	clsCard
	clsCardSelected
	clsPhoto
	clsText
	clsDate
	clsMarker
	clsButton
	clsButtonActive
	clsButtonDisabled
)

var styles = map[class]lipgloss.Style{
	clsGrid:           lipgloss.NewStyle().Foreground(lipgloss.Color("#57534e")),
	clsLink:           lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e")),
	clsCard:           lipgloss.NewStyle().Foreground(lipgloss.Color("#e7e5e4")),
	clsCardSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Bold(true),
	clsPhoto:          lipgloss.NewStyle().Foreground(lipgloss.Color("#78716c")),
	clsText:           lipgloss.NewStyle().Foreground(lipgloss.Color("#fffbf0")),
	clsDate:           lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e")),
	clsMarker:         lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Bold(true),
	clsButton:         lipgloss.NewStyle().Foreground(lipgloss.Color("#44403c")).Background(lipgloss.Color("#f5f5f4")),
	clsButtonActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f5f5f4")).Background(lipgloss.Color("#2563eb")).Bold(true),
	clsButtonDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#a8a29e")).Background(lipgloss.Color("#e7e5e4")),
}

// Terminal draws a scene onto a grid of character cells.
type Terminal struct {
	Cols  int
	Rows  int
	CellW float64
	CellH float64
	// Plain disables styling.
	Plain bool
}

func NewTerminal(cols, rows int) Terminal {
	return Terminal{Cols: cols, Rows: rows, CellW: DefaultCellW, CellH: DefaultCellH}
}

// ScreenPoint is the screen-space center of a cell.
func (t Terminal) ScreenPoint(col, row int) viewport.Point {
	return viewport.Point{
		X: (float64(col) + 0.5) * t.CellW,
		Y: (float64(row) + 0.5) * t.CellH,
	}
}

// ScreenSize is the pixel size of the whole grid.
func (t Terminal) ScreenSize() (float64, float64) {
	return float64(t.Cols) * t.CellW, float64(t.Rows) * t.CellH
}

type grid struct {
	cells   [][]rune
	classes [][]class
	cellW   float64
	cellH   float64
}

func (g *grid) set(col, row int, r rune, c class) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return
	}
	g.cells[row][col] = r
	g.classes[row][col] = c
}

func (g *grid) text(col, row int, s string, c class) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, c)
	}
}

func (g *grid) cellOf(p viewport.Point) (int, int) {
	return int(math.Floor(p.X / g.cellW)), int(math.Floor(p.Y / g.cellH))
}

func (t Terminal) Render(scene Scene) []string {
	cols, rows := max(t.Cols, 1), max(t.Rows, 1)
	g := &grid{
		cells:   make([][]rune, rows),
		classes: make([][]class, rows),
		cellW:   t.CellW,
		cellH:   t.CellH,
	}
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", cols))
		g.classes[i] = make([]class, cols)
	}

	tf := scene.Content.Transform
	t.drawGrid(g, tf)
	for _, node := range scene.Content.Nodes {
		switch node.Kind {
		case ConnectorNode:
			drawConnectorCells(g, tf, node)
		case CardNode:
			drawCardCells(g, tf, node.Card)
		}
	}
	for _, node := range scene.Controls {
		drawButtonCells(g, node.Control)
	}
	return t.lines(g)
}

// drawGrid puts a dot on every world grid intersection while the grid is coarse
// enough to read.
func (t Terminal) drawGrid(g *grid, tf viewport.Viewport) {
	step := gridStep * tf.Scale
	if step < minGridCell*t.CellW || step < minGridCell*t.CellH {
		return
	}
	w, h := t.ScreenSize()
	topLeft := tf.ScreenToWorld(viewport.Point{})
	bottomRight := tf.ScreenToWorld(viewport.Point{X: w, Y: h})
	for gy := math.Ceil(topLeft.Y/gridStep) * gridStep; gy <= bottomRight.Y; gy += gridStep {
		for gx := math.Ceil(topLeft.X/gridStep) * gridStep; gx <= bottomRight.X; gx += gridStep {
			col, row := g.cellOf(tf.WorldToScreen(viewport.Point{X: gx, Y: gy}))
			g.set(col, row, '·', clsGrid)
		}
	}
}

// drawConnectorCells walks the curve and marks the dashed stretches. Dashes are
// measured on screen in whole cells; world-sized dashes would fall inside one cell.
func drawConnectorCells(g *grid, tf viewport.Viewport, node Node) {
	curve := node.Curve
	screenLen := curve.Length(16) * tf.Scale
	n := max(8, int(screenLen/(g.cellW/2)))
	points := curve.Sample(n)
	on, off := cellDashOn*g.cellW, cellDashOff*g.cellW

	travelled := 0.0
	for i, p := range points {
		if i > 0 {
			travelled += points[i-1].Dist(p) * tf.Scale
		}
		if math.Mod(travelled, on+off) >= on {
			continue
		}
		col, row := g.cellOf(tf.WorldToScreen(p))
		g.set(col, row, '•', clsLink)
	}
}

func drawCardCells(g *grid, tf viewport.Viewport, card *CardView) {
	w, h := card.Size()
	topLeft := tf.WorldToScreen(viewport.Point{X: card.X, Y: card.Y})
	bottomRight := tf.WorldToScreen(viewport.Point{X: card.X + w, Y: card.Y + h})
	x0, y0 := g.cellOf(topLeft)
	x1, y1 := g.cellOf(bottomRight)
	x1--
	y1--

	border := clsCard
	if card.Selected {
		border = clsCardSelected
	}
	if x1-x0 < 2 || y1-y0 < 2 {
		for row := y0; row <= max(y0, y1); row++ {
			for col := x0; col <= max(x0, x1); col++ {
				g.set(col, row, '▪', border)
			}
		}
		return
	}

	// clear the footprint so the card hides whatever lies below it
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			g.set(col, row, ' ', clsText)
		}
	}

	h1, v1, tl, tr, bl, br := '─', '│', '┌', '┐', '└', '┘'
	if card.Selected {
		h1, v1, tl, tr, bl, br = '═', '║', '╔', '╗', '╚', '╝'
	}
	for col := x0 + 1; col < x1; col++ {
		g.set(col, y0, h1, border)
		g.set(col, y1, h1, border)
	}
	for row := y0 + 1; row < y1; row++ {
		g.set(x0, row, v1, border)
		g.set(x1, row, v1, border)
	}
	g.set(x0, y0, tl, border)
	g.set(x1, y0, tr, border)
	g.set(x0, y1, bl, border)
	g.set(x1, y1, br, border)

	inner := x1 - x0 - 1
	last := y1 - 1

	photoRows := int(math.Round(card.Aspect.PhotoHeight() * tf.Scale / g.cellH))
	photoTop := y0 + 1
	photoBottom := min(photoTop+photoRows-1, last-1)
	for row := photoTop; row <= photoBottom; row++ {
		for col := x0 + 1; col < x1; col++ {
			g.set(col, row, '░', clsPhoto)
		}
	}
	if photoBottom >= photoTop {
		label := "NO IMAGE"
		if card.ImageRef != "" {
			label = filepath.Base(card.ImageRef)
		}
		mid := (photoTop + photoBottom) / 2
		if card.Connecting {
			g.text(x0+1+(inner-1)/2, mid, "◉", clsMarker)
			mid++
		}
		if mid <= photoBottom {
			label = truncate.String(label, uint(inner))
			g.text(x0+1+(inner-len([]rune(label)))/2, mid, label, clsPhoto)
		}
	}

	text := card.Visible
	if card.Typing() {
		text += "▌"
	}
	row := photoBottom + 1
	for _, line := range strings.Split(wordwrap.String(text, inner), "\n") {
		if row >= last {
			break
		}
		g.text(x0+1, row, truncate.String(line, uint(inner)), clsText)
		row++
	}
	if last > photoBottom && card.Date != "" {
		g.text(x0+1, last, truncate.String("▣ "+card.Date, uint(inner)), clsDate)
	}
}

func drawButtonCells(g *grid, b *Button) {
	if b == nil {
		return
	}
	col, row := g.cellOf(viewport.Point{X: b.X, Y: b.Y})
	c := clsButton
	switch {
	case b.Disabled:
		c = clsButtonDisabled
	case b.Active:
		c = clsButtonActive
	}
	g.text(col, row, "[ "+b.Label+" ]", c)
}

// lines joins each row into a string, styling runs of cells that share a class.
func (t Terminal) lines(g *grid) []string {
	result := make([]string, len(g.cells))
	for i, row := range g.cells {
		if t.Plain {
			result[i] = string(row)
			continue
		}
		var line strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && g.classes[i][j] == g.classes[i][start] {
				continue
			}
			run := string(row[start:j])
			if style, ok := styles[g.classes[i][start]]; ok {
				run = style.Render(run)
			}
			line.WriteString(run)
			start = j
		}
		result[i] = line.String()
	}
	return result
}
