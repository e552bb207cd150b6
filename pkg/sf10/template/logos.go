package template

import (
	"bytes"
	"image"
	_ "image/png" // logo assets are PNG
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Logo describes one of the two header logos placed on every generated
// sheet. Geometry is fixed: it comes from the template design, not from
// data. Measurements are pixels at 96 DPI, offsets relative to A1.
type Logo struct {
	Path    string
	Width   int
	Height  int
	OffsetX int
	OffsetY int
}

// HeaderLogos returns the fixed logo placements for a given asset
// directory: the Kagawaran ng Edukasyon seal on the left and the DepED
// logo on the right. The original template geometry is in points
// (87x90 at x=43 and 137x137 at x=821,y=-24); converted here once.
func HeaderLogos(assetDir string) []Logo {
	return []Logo{
		{
			Path:    filepath.Join(assetDir, "kagawaran_seal.png"),
			Width:   PointsToPixels(87),
			Height:  PointsToPixels(90),
			OffsetX: PointsToPixels(43),
			OffsetY: 0,
		},
		{
			Path:    filepath.Join(assetDir, "deped_logo.png"),
			Width:   PointsToPixels(137),
			Height:  PointsToPixels(137),
			OffsetX: PointsToPixels(821),
			// The design sheet says -24pt, but a one-cell anchor at A1
			// has no headroom above row 1.
			OffsetY: 0,
		},
	}
}

// placeLogo stamps one logo onto a sheet. The asset file is decoded to
// learn its native pixel size so the picture can be scaled to the fixed
// target dimensions.
func placeLogo(f *excelize.File, sheet string, logo Logo) error {
	data, err := os.ReadFile(logo.Path)
	if err != nil {
		return err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}

	scaleX, scaleY := 1.0, 1.0
	if cfg.Width > 0 {
		scaleX = float64(logo.Width) / float64(cfg.Width)
	}
	if cfg.Height > 0 {
		scaleY = float64(logo.Height) / float64(cfg.Height)
	}

	return f.AddPictureFromBytes(sheet, "A1", &excelize.Picture{
		Extension: filepath.Ext(logo.Path),
		File:      data,
		Format: &excelize.GraphicOptions{
			OffsetX: logo.OffsetX,
			OffsetY: logo.OffsetY,
			ScaleX:  scaleX,
			ScaleY:  scaleY,
		},
	})
}
