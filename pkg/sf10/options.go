// Package sf10 generates and incrementally merges multi-student SF10
// record workbooks from quarterly grading sheets.
package sf10

import (
	"go.uber.org/zap"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/template"
)

// Options configures a merge engine.
type Options struct {
	// TemplatePath is the SF10 template workbook. Required.
	TemplatePath string
	// AssetDir is the directory holding the header logo images.
	// Empty means no logos are placed.
	AssetDir string
	// IncludeLogos overrides logo placement.
	// If nil, logos are placed whenever AssetDir is set.
	IncludeLogos *bool
	// Logger receives structured progress and warning logs.
	// If nil, logging is disabled.
	Logger *zap.Logger
}

// ShouldIncludeLogos returns whether generated sheets get header logos.
func (o Options) ShouldIncludeLogos() bool {
	if o.IncludeLogos != nil {
		return *o.IncludeLogos
	}
	return o.AssetDir != ""
}

func (o Options) logos() []template.Logo {
	if !o.ShouldIncludeLogos() {
		return nil
	}
	return template.HeaderLogos(o.AssetDir)
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
