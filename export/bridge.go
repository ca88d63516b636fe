// Package export captures every card into a fixed frame and hands the raster to a
// document writer. The viewport is moved to the capture frame for the duration of the
// capture and always put back afterwards.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"travellog/board"
	"travellog/render"
	"travellog/viewport"
)

const (
	Padding     = 100.0
	ScaleFactor = 2.0
	SettleDelay = 200 * time.Millisecond
	FileName    = "travel-memories-log.pdf"
)

var ErrNothingToExport = errors.New("nothing to print, add some memories first")

type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

type CaptureOptions struct {
	Background  color.Color
	Width       int
	Height      int
	ScaleFactor float64
	Exclude     func(render.Node) bool
}

// Rasterizer turns a scene into pixels.
type Rasterizer interface {
	Capture(ctx context.Context, scene render.Scene, opts CaptureOptions) (image.Image, error)
}

// DocumentWriter packages a raster into the exported document.
type DocumentWriter interface {
	WriteDocument(img image.Image, pageW, pageH float64, o Orientation) error
}

// Frame is the world region an export covers.
type Frame struct {
	MinX, MinY    float64
	Width, Height float64
}

func (f Frame) Orientation() Orientation {
	if f.Width > f.Height {
		return Landscape
	}
	return Portrait
}

func (f Frame) Viewport() viewport.Viewport {
	return viewport.Frame(f.MinX, f.MinY)
}

// Plan computes the padded bounding box of all cards.
func Plan(b *board.Board) (Frame, error) {
	minX, minY, maxX, maxY, ok := b.Bounds()
	if !ok {
		return Frame{}, ErrNothingToExport
	}
	minX -= Padding
	minY -= Padding
	maxX += Padding
	maxY += Padding
	return Frame{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}, nil
}

// ExcludeControls keeps buttons out of the capture.
func ExcludeControls(n render.Node) bool {
	return n.Kind == render.ControlNode
}

type Bridge struct {
	Rasterizer Rasterizer
	Writer     DocumentWriter
	Settle     time.Duration
	Logger     *zap.Logger
}

func (b *Bridge) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Session is one export in flight.
type Session struct {
	bridge   *Bridge
	Frame    Frame
	saved    viewport.Viewport
	restored bool
}

// Begin plans the export and moves vp to the capture frame. Nothing is touched when
// the board is empty.
func (b *Bridge) Begin(vp *viewport.Viewport, brd *board.Board) (*Session, error) {
	frame, err := Plan(brd)
	if err != nil {
		return nil, err
	}
	s := &Session{bridge: b, Frame: frame, saved: *vp}
	*vp = frame.Viewport()
	b.logger().Debug("export frame",
		zap.Float64("minX", frame.MinX),
		zap.Float64("minY", frame.MinY),
		zap.Float64("width", frame.Width),
		zap.Float64("height", frame.Height))
	return s, nil
}

// Wait lets the display catch up with the capture frame.
func (s *Session) Wait(ctx context.Context) error {
	if s.bridge.Settle <= 0 {
		return nil
	}
	t := time.NewTimer(s.bridge.Settle)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Capture rasterizes the scene inside the frame and writes the document.
func (s *Session) Capture(ctx context.Context, scene render.Scene) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export panicked: %v", r)
		}
	}()

	w, h := s.Frame.Width, s.Frame.Height
	img, err := s.bridge.Rasterizer.Capture(ctx, scene, CaptureOptions{
		Background:  render.ColorTable,
		Width:       int(w),
		Height:      int(h),
		ScaleFactor: ScaleFactor,
		Exclude:     ExcludeControls,
	})
	if err != nil {
		return fmt.Errorf("failed to capture canvas: %w", err)
	}
	if err := s.bridge.Writer.WriteDocument(img, w, h, s.Frame.Orientation()); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Restore puts back the viewport saved by Begin. Calling it again does nothing.
func (s *Session) Restore(vp *viewport.Viewport) {
	if s.restored {
		return
	}
	*vp = s.saved
	s.restored = true
}

// Saved is the viewport the session will restore.
func (s *Session) Saved() viewport.Viewport {
	return s.saved
}

// Run performs a whole export synchronously. compose is called after the settle
// delay so the scene reflects the capture frame.
func (b *Bridge) Run(ctx context.Context, vp *viewport.Viewport, brd *board.Board, compose func() render.Scene) error {
	s, err := b.Begin(vp, brd)
	if err != nil {
		return err
	}
	defer s.Restore(vp)

	if err := s.Wait(ctx); err != nil {
		return err
	}
	if err := s.Capture(ctx, compose()); err != nil {
		b.logger().Error("export failed", zap.Error(err))
		return err
	}
	return nil
}
