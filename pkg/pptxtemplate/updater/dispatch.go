package updater

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// Document is an open presentation the updater can mutate and persist.
type Document interface {
	SlideCount() int
	Slide(number int) (*presentation.Slide, error)
	Save(filename string) error
}

// Options configures an Updater.
type Options struct {
	// WarnOnOverflow enables the overflow heuristic.
	// If nil, defaults to true.
	WarnOnOverflow *bool
	// OverflowRatio is the new/original length ratio that triggers a warning.
	// If zero, DefaultOverflowRatio is used.
	OverflowRatio float64
	// Logger receives per-target diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// ShouldWarnOnOverflow returns whether overflow warnings are produced.
func (o Options) ShouldWarnOnOverflow() bool {
	if o.WarnOnOverflow != nil {
		return *o.WarnOnOverflow
	}
	return true
}

func (o Options) overflowRatio() float64 {
	if o.OverflowRatio > 0 {
		return o.OverflowRatio
	}
	return DefaultOverflowRatio
}

// Updater applies update instructions to a document, one at a time and in
// order. A failing instruction or cell is reported and the batch goes on.
type Updater struct {
	opts Options
	log  *zap.Logger
}

// New creates an Updater.
func New(opts Options) *Updater {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{opts: opts, log: log}
}

// Run applies every instruction and then saves the document to outputPath
// exactly once. A save failure is returned as an error together with the
// report of what had been applied in memory.
func (u *Updater) Run(doc Document, set models.UpdateSet, outputPath string) (*models.Report, error) {
	report := u.Apply(doc, set.Updates)
	if err := doc.Save(outputPath); err != nil {
		u.log.Error("save failed", zap.String("path", outputPath), zap.Error(err))
		return report, fmt.Errorf("save updated presentation: %w", err)
	}
	report.OutputPath = outputPath
	u.log.Info("presentation saved",
		zap.String("path", outputPath),
		zap.Int("updates_applied", report.UpdatesApplied),
		zap.Int("errors", len(report.Errors)),
		zap.Int("warnings", len(report.Warnings)))
	return report, nil
}

// Apply mutates doc in memory without saving it. Earlier successful
// updates stay applied when a later one fails.
func (u *Updater) Apply(doc Document, updates []models.UpdateInstruction) *models.Report {
	agg := newAggregator()
	for i, ins := range updates {
		u.apply(doc, i+1, ins, agg)
	}
	return agg.result()
}

func (u *Updater) apply(doc Document, n int, ins models.UpdateInstruction, agg *aggregator) {
	if ins.Invalid != "" {
		u.log.Warn("instruction rejected", zap.Int("update", n), zap.String("reason", ins.Invalid))
		agg.reject(fmt.Sprintf("Update %d", n), fmt.Sprintf("Update %d: %s", n, ins.Invalid))
		return
	}
	if ins.Slide == nil || ins.Shape == nil {
		u.log.Warn("instruction rejected", zap.Int("update", n), zap.String("reason", "missing slide or shape"))
		agg.reject(fmt.Sprintf("Update %d", n), fmt.Sprintf("Update %d: slide and shape are required.", n))
		return
	}
	slideNum, shapeIdx := *ins.Slide, *ins.Shape
	target := shapeTarget(slideNum, shapeIdx)

	if slideNum < 1 || slideNum > doc.SlideCount() {
		u.log.Warn("instruction rejected", zap.Int("update", n), zap.Int("slide", slideNum))
		agg.reject(target, fmt.Sprintf("Invalid slide number: %d. Template has %d slides.", slideNum, doc.SlideCount()))
		return
	}
	slide, err := doc.Slide(slideNum)
	if err != nil {
		agg.reject(target, err.Error())
		return
	}
	shape, err := slide.Shape(shapeIdx)
	if err != nil {
		u.log.Warn("instruction rejected", zap.Int("update", n), zap.Int("slide", slideNum), zap.Int("shape", shapeIdx))
		agg.reject(target, fmt.Sprintf("Invalid shape index: %d on slide %d. Slide has %d shapes.", shapeIdx, slideNum, slide.ShapeCount()))
		return
	}

	switch {
	case shape.Kind() == presentation.KindTable && len(ins.TableCells) > 0:
		table := shape.Table()
		if table == nil {
			agg.add(models.UpdateResult{Target: target, Error: "table frame holds no table"})
			return
		}
		for _, cu := range ins.TableCells {
			agg.add(u.updateCell(target, table, cu))
		}
	default:
		agg.add(u.UpdateShapeText(shape, ins.Text, ins.ShouldPreserveBullets()))
	}
}

// UpdateShapeText replaces the whole text of shape, keeping its formatting.
// Shapes that cannot hold text fail with a result error.
func (u *Updater) UpdateShapeText(shape *presentation.Shape, text string, preserveBullets bool) models.UpdateResult {
	res := models.UpdateResult{Target: shapeTarget(shape.Slide().Number(), shape.Index())}
	tb, err := shape.GetOrAddTextBody()
	if err != nil {
		res.Error = err.Error()
		u.log.Warn("shape update failed", zap.String("target", res.Target), zap.Error(err))
		return res
	}

	text = normalizeLineEndings(text)
	res.OriginalLength = textLength(tb.Text())
	res.NewLength = textLength(text)

	snap := CaptureFormatting(tb)
	ReplaceText(tb, text, snap, preserveBullets)
	res.Success = true

	if u.opts.ShouldWarnOnOverflow() {
		if w, ok := overflowWarning(res.OriginalLength, res.NewLength, u.opts.overflowRatio()); ok {
			res.Warnings = append(res.Warnings, w)
		}
	}
	u.log.Debug("shape updated",
		zap.String("target", res.Target),
		zap.Int("original_length", res.OriginalLength),
		zap.Int("new_length", res.NewLength),
		zap.Bool("preserve_bullets", preserveBullets))
	return res
}

func (u *Updater) updateCell(shapeTgt string, table *presentation.Table, cu models.TableCellUpdate) models.UpdateResult {
	if cu.Row == nil || cu.Column == nil {
		return models.UpdateResult{
			Target: shapeTgt + ", Cell",
			Error:  "row and column are required",
		}
	}
	row, col := *cu.Row, *cu.Column
	res := models.UpdateResult{Target: fmt.Sprintf("%s, Cell (%d,%d)", shapeTgt, row, col)}

	cell, err := table.Cell(row, col)
	if err != nil {
		res.Error = err.Error()
		u.log.Warn("cell update failed", zap.String("target", res.Target), zap.Error(err))
		return res
	}
	text := normalizeLineEndings(cu.Text)
	res.OriginalLength = textLength(cell.Text())
	res.NewLength = textLength(text)

	snap := CaptureFormatting(cell.TextBody())
	ReplaceCellText(cell, text, snap)
	res.Success = true
	if cell.Merged() {
		res.Warnings = append(res.Warnings, mergedCellWarning)
	}
	u.log.Debug("cell updated", zap.String("target", res.Target), zap.Int("new_length", res.NewLength))
	return res
}

const mergedCellWarning = "Cell is covered by a merged cell. Its text is not shown."

func shapeTarget(slide, shape int) string {
	return fmt.Sprintf("Slide %d, Shape %d", slide, shape)
}
