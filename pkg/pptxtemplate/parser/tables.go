package parser

import (
	"unicode/utf8"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// ExtractTable returns the table dimensions and its non-empty cells in row
// order. A nil table yields an empty result.
func ExtractTable(t *presentation.Table) *models.TableData {
	data := &models.TableData{Cells: []models.CellData{}}
	if t == nil {
		return data
	}
	data.Rows = t.Rows()
	data.Columns = t.Columns()

	for _, row := range t.Grid() {
		for _, cell := range row {
			text := cell.Text()
			if text == "" {
				continue
			}
			data.Cells = append(data.Cells, models.CellData{
				Row:            cell.Row(),
				Column:         cell.Column(),
				Text:           text,
				CharacterCount: utf8.RuneCountInString(text),
			})
		}
	}
	return data
}
