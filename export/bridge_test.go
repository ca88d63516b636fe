package export

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travellog/board"
	"travellog/render"
	"travellog/viewport"
)

type fakeRasterizer struct {
	scene render.Scene
	opts  CaptureOptions
	err   error
	calls int
}

func (f *fakeRasterizer) Capture(_ context.Context, scene render.Scene, opts CaptureOptions) (image.Image, error) {
	f.calls++
	f.scene, f.opts = scene, opts
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)), nil
}

type fakeWriter struct {
	calls        int
	pageW, pageH float64
	orientation  Orientation
	panic        bool
}

func (f *fakeWriter) WriteDocument(_ image.Image, w, h float64, o Orientation) error {
	if f.panic {
		panic("writer exploded")
	}
	f.calls++
	f.pageW, f.pageH, f.orientation = w, h, o
	return nil
}

func newBoard(positions ...viewport.Point) *board.Board {
	b := board.New()
	for _, p := range positions {
		id := b.AddCard("memo", "2024-05-01", "", board.Square, viewport.Point{})
		b.MoveCard(id, p.X, p.Y)
	}
	return b
}

func composer(vp *viewport.Viewport, b *board.Board) func() render.Scene {
	return func() render.Scene {
		return render.Compose(render.Input{Viewport: *vp, Board: b})
	}
}

func TestPlan(t *testing.T) {
	_, err := Plan(board.New())
	assert.ErrorIs(t, err, ErrNothingToExport)

	frame, err := Plan(newBoard(viewport.Point{X: 0, Y: 0}, viewport.Point{X: 500, Y: -50}))
	require.NoError(t, err)
	assert.Equal(t, Frame{MinX: -100, MinY: -150, Width: 980, Height: 600}, frame)
	assert.Equal(t, Landscape, frame.Orientation())

	frame, _ = Plan(newBoard(viewport.Point{}))
	assert.Equal(t, Portrait, frame.Orientation())
}

func TestBridge_RunEmpty(t *testing.T) {
	raster, writer := &fakeRasterizer{}, &fakeWriter{}
	bridge := &Bridge{Rasterizer: raster, Writer: writer}
	vp := viewport.Viewport{OffsetX: 3, OffsetY: 4, Scale: 1.5}
	b := board.New()

	err := bridge.Run(context.Background(), &vp, b, composer(&vp, b))
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Equal(t, viewport.Viewport{OffsetX: 3, OffsetY: 4, Scale: 1.5}, vp)
	assert.Zero(t, raster.calls)
	assert.Zero(t, writer.calls)
}

func TestBridge_RunCapturesFrame(t *testing.T) {
	raster, writer := &fakeRasterizer{}, &fakeWriter{}
	bridge := &Bridge{Rasterizer: raster, Writer: writer, Settle: time.Millisecond}
	original := viewport.Viewport{OffsetX: -250, OffsetY: 90, Scale: 0.4}
	vp := original
	b := newBoard(viewport.Point{X: 40, Y: 60})

	require.NoError(t, bridge.Run(context.Background(), &vp, b, composer(&vp, b)))

	assert.Equal(t, original, vp, "viewport restored")
	assert.Equal(t, viewport.Viewport{OffsetX: 60, OffsetY: 40, Scale: 1}, raster.scene.Content.Transform)
	assert.Equal(t, 480, raster.opts.Width)
	assert.Equal(t, 550, raster.opts.Height)
	assert.Equal(t, 2.0, raster.opts.ScaleFactor)
	assert.Equal(t, render.ColorTable, raster.opts.Background)
	assert.True(t, raster.opts.Exclude(render.Node{Kind: render.ControlNode}))
	assert.False(t, raster.opts.Exclude(render.Node{Kind: render.CardNode}))

	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, 480.0, writer.pageW)
	assert.Equal(t, 550.0, writer.pageH)
	assert.Equal(t, Portrait, writer.orientation)
}

func TestBridge_RestoresOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		raster *fakeRasterizer
		writer *fakeWriter
	}{
		{"rasterizer error", &fakeRasterizer{err: errors.New("boom")}, &fakeWriter{}},
		{"writer panic", &fakeRasterizer{}, &fakeWriter{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := &Bridge{Rasterizer: tt.raster, Writer: tt.writer}
			original := viewport.Viewport{OffsetX: 7, OffsetY: 8, Scale: 2}
			vp := original
			b := newBoard(viewport.Point{})

			err := bridge.Run(context.Background(), &vp, b, composer(&vp, b))
			assert.Error(t, err)
			assert.Equal(t, original, vp)
		})
	}
}

func TestBridge_RestoresOnCancel(t *testing.T) {
	bridge := &Bridge{Rasterizer: &fakeRasterizer{}, Writer: &fakeWriter{}, Settle: time.Hour}
	original := viewport.Viewport{OffsetX: 1, OffsetY: 1, Scale: 1}
	vp := original
	b := newBoard(viewport.Point{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := bridge.Run(ctx, &vp, b, composer(&vp, b))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, original, vp)
}

func TestSession_BeginAndRestore(t *testing.T) {
	bridge := &Bridge{Rasterizer: &fakeRasterizer{}, Writer: &fakeWriter{}}
	original := viewport.Viewport{OffsetX: 10, OffsetY: 20, Scale: 3}
	vp := original

	s, err := bridge.Begin(&vp, newBoard(viewport.Point{X: 200, Y: 300}))
	require.NoError(t, err)
	assert.Equal(t, viewport.Viewport{OffsetX: -100, OffsetY: -200, Scale: 1}, vp)
	assert.Equal(t, original, s.Saved())

	s.Restore(&vp)
	assert.Equal(t, original, vp)

	vp.PanBy(5, 5)
	s.Restore(&vp)
	assert.Equal(t, viewport.Point{X: 15, Y: 25}, vp.Offset(), "second restore is a no-op")
}

func TestGGRasterizerAndPDFWriter(t *testing.T) {
	raster, err := render.NewRaster()
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "out")

	bridge := &Bridge{Rasterizer: GGRasterizer{Raster: raster}, Writer: NewPDFWriter(dir)}
	vp := viewport.New()
	b := newBoard(viewport.Point{}, viewport.Point{X: 400, Y: 120})

	require.NoError(t, bridge.Run(context.Background(), &vp, b, composer(&vp, b)))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGGRasterizer_InvalidSize(t *testing.T) {
	raster, err := render.NewRaster()
	require.NoError(t, err)
	_, err = GGRasterizer{Raster: raster}.Capture(context.Background(), render.Scene{}, CaptureOptions{})
	assert.Error(t, err)
}

func TestGGRasterizer_SizeBudget(t *testing.T) {
	raster, err := render.NewRaster()
	require.NoError(t, err)
	g := GGRasterizer{Raster: raster}

	tests := []struct {
		name    string
		opts    CaptureOptions
		wantErr bool
	}{
		{name: "small", opts: CaptureOptions{Width: 480, Height: 550, ScaleFactor: ScaleFactor}},
		{name: "far apart cards", opts: CaptureOptions{Width: 20000, Height: 15000, ScaleFactor: ScaleFactor}, wantErr: true},
		{name: "budget counts the scale factor", opts: CaptureOptions{Width: 5000, Height: 5000, ScaleFactor: ScaleFactor}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := g.Capture(context.Background(), render.Scene{}, tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCaptureTooLarge)
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 960, img.Bounds().Dx())
		})
	}
}

func TestBridge_RunTooLargeRestoresViewport(t *testing.T) {
	raster, err := render.NewRaster()
	require.NoError(t, err)
	writer := &fakeWriter{}
	bridge := &Bridge{Rasterizer: GGRasterizer{Raster: raster}, Writer: writer}

	b := board.New()
	a := b.AddCard("Lima", "2024-01-01", "", board.Square, viewport.Point{})
	c := b.AddCard("Cusco", "2024-01-02", "", board.Square, viewport.Point{})
	b.MoveCard(a, -30000, 0)
	b.MoveCard(c, 30000, 20000)

	vp := viewport.Viewport{OffsetX: 5, OffsetY: 6, Scale: 0.5}
	saved := vp
	err = bridge.Run(context.Background(), &vp, b, composer(&vp, b))
	assert.ErrorIs(t, err, ErrCaptureTooLarge)
	assert.Equal(t, saved, vp)
	assert.Zero(t, writer.calls)
}
