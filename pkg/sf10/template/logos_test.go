package template

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

func writeLogoAssets(t *testing.T, dir string) {
	t.Helper()
	for _, logo := range HeaderLogos(dir) {
		out, err := os.Create(logo.Path)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		if err := png.Encode(out, img); err != nil {
			t.Fatalf("png.Encode failed: %v", err)
		}
		out.Close()
	}
}

func TestHeaderLogoGeometry(t *testing.T) {
	logos := HeaderLogos("assets")
	if len(logos) != 2 {
		t.Fatalf("expected 2 logos, got %d", len(logos))
	}

	seal := logos[0]
	if seal.Width != PointsToPixels(87) || seal.Height != PointsToPixels(90) {
		t.Errorf("unexpected seal size %dx%d", seal.Width, seal.Height)
	}
	if seal.OffsetX != PointsToPixels(43) || seal.OffsetY != 0 {
		t.Errorf("unexpected seal offset %d,%d", seal.OffsetX, seal.OffsetY)
	}
	if filepath.Base(seal.Path) != "kagawaran_seal.png" {
		t.Errorf("unexpected seal path %q", seal.Path)
	}
}

func TestMapperPlacesLogos(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "SF10.xlsx")
	outPath := filepath.Join(dir, "out.xlsx")
	writeTemplate(t, tmplPath)
	writeLogoAssets(t, dir)

	m, err := NewMapper(tmplPath, HeaderLogos(dir), nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	defer m.Close()

	rec := &models.StudentRecord{
		Identity: models.Identity{LastName: "AGOT", FirstName: "KHIAN CLOUD"},
	}
	sheet, err := m.Stamp(rec)
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}
	if err := m.Finalize(outPath); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	out, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer out.Close()

	pics, err := out.GetPictures(sheet, "A1")
	if err != nil {
		t.Fatalf("GetPictures failed: %v", err)
	}
	if len(pics) != 2 {
		t.Errorf("expected both logos anchored at A1, got %d", len(pics))
	}
}

func TestMapperSkipsMissingLogoAssets(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "SF10.xlsx")
	outPath := filepath.Join(dir, "out.xlsx")
	writeTemplate(t, tmplPath)

	// Asset directory with no files: generation proceeds without logos.
	m, err := NewMapper(tmplPath, HeaderLogos(filepath.Join(dir, "missing")), nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	defer m.Close()

	rec := &models.StudentRecord{
		Identity: models.Identity{LastName: "AGOT", FirstName: "KHIAN CLOUD"},
	}
	if _, err := m.Stamp(rec); err != nil {
		t.Fatalf("Stamp must not fail on missing assets: %v", err)
	}
	if err := m.Finalize(outPath); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
}
