// Package pptxtemplate extracts the editable structure of PowerPoint
// templates and rewrites shape text while keeping its formatting.
package pptxtemplate

import (
	"go.uber.org/zap"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/parser"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight extracts text shapes only (no tables or charts).
	ModeLight Mode = parser.ModeLight
	// ModeStandard extracts shapes with text, tables with content, and charts.
	ModeStandard Mode = parser.ModeStandard
	// ModeVerbose extracts every shape including pixel geometry and preset labels.
	ModeVerbose Mode = parser.ModeVerbose
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	}
	return "", false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// MaxFileSize bounds the template size in bytes.
	// If zero, security.DefaultMaxFileSize is used.
	MaxFileSize int64
	// Logger receives diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeStandard
	}
	return o.Mode
}

// UpdateOptions configures an update run.
type UpdateOptions struct {
	// WarnOnOverflow enables overflow warnings.
	// If nil, defaults to true.
	WarnOnOverflow *bool
	// OverflowRatio is the new/original length ratio above which a warning
	// is emitted. If zero, 1.5 is used.
	OverflowRatio float64
	// MaxFileSize bounds the template size in bytes.
	// If zero, security.DefaultMaxFileSize is used.
	MaxFileSize int64
	// Logger receives diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// ShouldWarnOnOverflow returns whether overflow warnings are emitted.
func (o UpdateOptions) ShouldWarnOnOverflow() bool {
	if o.WarnOnOverflow != nil {
		return *o.WarnOnOverflow
	}
	return true
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
