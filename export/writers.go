package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"travellog/render"
)

// MaxCapturePixels caps the output raster, counted after the scale factor.
const MaxCapturePixels = 64 << 20

var ErrCaptureTooLarge = errors.New("capture too large")

// GGRasterizer captures scenes with the gg raster backend.
type GGRasterizer struct {
	Raster *render.Raster
}

func (g GGRasterizer) Capture(ctx context.Context, scene render.Scene, opts CaptureOptions) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", opts.Width, opts.Height)
	}
	sf := opts.ScaleFactor
	if sf <= 0 {
		sf = 1
	}
	if px := float64(opts.Width) * sf * float64(opts.Height) * sf; px > MaxCapturePixels {
		return nil, fmt.Errorf("%w: %dx%d at %gx", ErrCaptureTooLarge, opts.Width, opts.Height, sf)
	}
	return g.Raster.Draw(scene, render.DrawOptions{
		Width:       opts.Width,
		Height:      opts.Height,
		ScaleFactor: opts.ScaleFactor,
		Background:  opts.Background,
		Exclude:     opts.Exclude,
	}), nil
}

// PDFWriter writes a single page the size of the capture, in points.
type PDFWriter struct {
	Path string
}

func NewPDFWriter(dir string) PDFWriter {
	if dir == "" {
		return PDFWriter{Path: FileName}
	}
	return PDFWriter{Path: filepath.Join(dir, FileName)}
}

func (w PDFWriter) WriteDocument(img image.Image, pageW, pageH float64, o Orientation) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode capture: %w", err)
	}

	orientation := "P"
	if o == Landscape {
		orientation = "L"
	}
	// page sizes are given portrait; the orientation swaps them
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: min(pageW, pageH), Ht: max(pageW, pageH)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opts, &buf)
	pdf.ImageOptions("capture", 0, 0, pageW, pageH, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}

	if dir := filepath.Dir(w.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return pdf.OutputFileAndClose(w.Path)
}
