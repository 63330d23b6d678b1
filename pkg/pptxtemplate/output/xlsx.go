package output

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/parser"
)

// WriteStructureXLSX writes the structure as an update worksheet: one row
// per text shape and one per non-empty table cell, with an empty text
// column to fill in. The workbook can be passed back as update input.
func WriteStructureXLSX(s *models.TemplateStructure, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), parser.UpdateSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(parser.UpdateSheetHeader))
	for i, h := range parser.UpdateSheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(parser.UpdateSheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	writeRow := func(values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return f.SetSheetRow(parser.UpdateSheet, cell, &values)
	}

	for _, slide := range s.Slides {
		for _, shape := range slide.Shapes {
			if shape.IsTable && shape.Table != nil {
				for _, c := range shape.Table.Cells {
					if err := writeRow([]interface{}{
						slide.SlideNumber, shape.Index, c.Row, c.Column, shape.Name, shape.ShapeType,
						c.Text, c.CharacterCount, "", "",
					}); err != nil {
						return err
					}
				}
				continue
			}
			if shape.Chart != nil {
				continue
			}
			if err := writeRow([]interface{}{
				slide.SlideNumber, shape.Index, "", "", shape.Name, shape.ShapeType,
				shape.TextContent, shape.CharacterCount, "", "",
			}); err != nil {
				return err
			}
		}
	}

	if err := styleUpdateSheet(f); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func styleUpdateSheet(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(parser.UpdateSheet, "A1", "J1", headerStyle); err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	if err := f.SetColStyle(parser.UpdateSheet, "G", wrapStyle); err != nil {
		return err
	}
	if err := f.SetColStyle(parser.UpdateSheet, "I", wrapStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(parser.UpdateSheet, "E", "F", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(parser.UpdateSheet, "G", "G", 48); err != nil {
		return err
	}
	if err := f.SetColWidth(parser.UpdateSheet, "I", "I", 48); err != nil {
		return err
	}
	return f.SetPanes(parser.UpdateSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
