package updater

import (
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
)

// aggregator folds per-target results into a report.
type aggregator struct {
	report models.Report
}

func newAggregator() *aggregator {
	return &aggregator{report: models.Report{
		Errors:   []string{},
		Warnings: []string{},
	}}
}

// add merges a shape or cell result. Messages are qualified by the target.
func (a *aggregator) add(res models.UpdateResult) {
	a.report.Results = append(a.report.Results, res)
	if !res.Success {
		a.report.Errors = append(a.report.Errors, res.Target+": "+res.Error)
		return
	}
	a.report.UpdatesApplied++
	for _, w := range res.Warnings {
		a.report.Warnings = append(a.report.Warnings, res.Target+": "+w)
	}
}

// reject records an instruction that never reached a shape. The message is
// reported as is.
func (a *aggregator) reject(target, msg string) {
	a.report.Results = append(a.report.Results, models.UpdateResult{Target: target, Error: msg})
	a.report.Errors = append(a.report.Errors, msg)
}

func (a *aggregator) result() *models.Report {
	r := a.report
	return &r
}
