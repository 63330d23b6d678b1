package pptxtemplate

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/parser"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/security"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/updater"
)

var updateExts = []string{".json", ".xlsx"}

// Update applies updates to the template at templatePath and writes the
// result to outputPath. Per-instruction failures are collected in the
// report; a returned error means no output was written. The caller's
// UpdateSet is not modified.
func Update(templatePath string, updates *models.UpdateSet, outputPath string, opts UpdateOptions) (*models.Report, error) {
	if updates == nil {
		return nil, fmt.Errorf("%w: no update set", ErrInvalidUpdates)
	}
	log := logger(opts.Logger).With(zap.String("run_id", uuid.NewString()))

	pres, err := openTemplate(templatePath, opts.MaxFileSize)
	if err != nil {
		return nil, err
	}
	out, err := security.ValidateOutputFile(outputPath, templateExts)
	if err != nil {
		return nil, err
	}

	var set models.UpdateSet
	if err := deepcopy.Copy(&set, *updates); err != nil {
		return nil, fmt.Errorf("copy update set: %w", err)
	}
	withDefaults(&set)

	log.Info("applying updates",
		zap.String("template", templatePath),
		zap.Int("instructions", len(set.Updates)))
	logInstructions(log, set)

	warn := opts.ShouldWarnOnOverflow()
	u := updater.New(updater.Options{
		WarnOnOverflow: &warn,
		OverflowRatio:  opts.OverflowRatio,
		Logger:         log,
	})
	return u.Run(pres, set, out)
}

// UpdateFile is Update with the instructions read from a .json or .xlsx
// file.
func UpdateFile(templatePath, updatesPath, outputPath string, opts UpdateOptions) (*models.Report, error) {
	abs, err := security.ValidateInputFile(updatesPath, updateExts, opts.MaxFileSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, updatesPath)
		}
		return nil, err
	}
	set, err := parser.LoadUpdates(abs)
	if err != nil {
		return nil, err
	}
	return Update(templatePath, set, outputPath, opts)
}

// withDefaults makes the preserve_bullets default explicit on the working
// copy so the logged instructions show what is applied.
func withDefaults(set *models.UpdateSet) {
	for i := range set.Updates {
		if set.Updates[i].PreserveBullets == nil {
			preserve := true
			set.Updates[i].PreserveBullets = &preserve
		}
	}
}

func logInstructions(log *zap.Logger, set models.UpdateSet) {
	for i, ins := range set.Updates {
		if ins.Invalid != "" {
			log.Debug("instruction", zap.Int("update", i+1), zap.String("invalid", ins.Invalid))
			continue
		}
		log.Debug("instruction",
			zap.Int("update", i+1),
			zap.Intp("slide", ins.Slide),
			zap.Intp("shape", ins.Shape),
			zap.Boolp("preserve_bullets", ins.PreserveBullets),
			zap.Int("table_cells", len(ins.TableCells)),
			zap.Int("text_length", len([]rune(ins.Text))))
	}
}
