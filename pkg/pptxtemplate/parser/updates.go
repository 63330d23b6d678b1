package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
)

// ErrInvalidUpdates indicates an update document that cannot be parsed.
var ErrInvalidUpdates = errors.New("invalid update instructions")

// UpdateSheet is the worksheet holding update instructions in a workbook.
const UpdateSheet = "updates"

// UpdateSheetHeader lists the worksheet columns in order. Only slide, shape,
// row, column, text and preserve_bullets are read back; the others describe
// the template for whoever fills in the text column.
var UpdateSheetHeader = []string{
	"slide", "shape", "row", "column", "name", "shape_type",
	"original_text", "character_count", "text", "preserve_bullets",
}

// LoadUpdates reads update instructions from a .json or .xlsx file.
func LoadUpdates(path string) (*models.UpdateSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadUpdatesXLSX(path)
	default:
		return LoadUpdatesJSON(path)
	}
}

// LoadUpdatesJSON reads an update document. A document without an
// "updates" key holds no instructions. A malformed document fails as a
// whole; an instruction that does not decode is kept in place with its
// Invalid reason so the rest of the batch still applies.
func LoadUpdatesJSON(path string) (*models.UpdateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Updates []json.RawMessage `json:"updates"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUpdates, filepath.Base(path), err)
	}

	set := &models.UpdateSet{}
	for _, raw := range doc.Updates {
		var ins models.UpdateInstruction
		if err := json.Unmarshal(raw, &ins); err != nil {
			ins = models.UpdateInstruction{Invalid: decodeReason(err)}
		}
		set.Updates = append(set.Updates, ins)
	}
	return set, nil
}

// decodeReason turns a JSON decode error into a short message naming the
// offending field.
func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("invalid %s: expected %s, got %s.", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return fmt.Sprintf("invalid instruction: %v.", err)
}

// LoadUpdatesXLSX reads instructions from the "updates" worksheet. Rows with
// an empty text column are skipped. Rows that carry row and column are
// table cells and are grouped into one instruction per slide and shape.
// A row with an unreadable index or flag becomes an Invalid instruction.
func LoadUpdatesXLSX(path string) (*models.UpdateSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUpdates, filepath.Base(path), err)
	}
	defer f.Close()

	rows, err := f.GetRows(UpdateSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidUpdates, filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return &models.UpdateSet{}, nil
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{"slide", "shape", "text"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: sheet %q has no %q column", ErrInvalidUpdates, UpdateSheet, required)
		}
	}

	set := &models.UpdateSet{}
	tables := make(map[[2]int]int) // (slide, shape) -> index in set.Updates
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		text := rawCell(row, cols["text"])
		if text == "" {
			continue
		}
		invalid := func(format string, args ...any) {
			reason := fmt.Sprintf("row %d: %s", rowNum, fmt.Sprintf(format, args...))
			set.Updates = append(set.Updates, models.UpdateInstruction{Invalid: reason})
		}
		slide, err := parseIndex(cell("slide"))
		if err != nil {
			invalid("slide: %v.", err)
			continue
		}
		shape, err := parseIndex(cell("shape"))
		if err != nil {
			invalid("shape: %v.", err)
			continue
		}

		rowStr, colStr := cell("row"), cell("column")
		if rowStr != "" || colStr != "" {
			r, err := parseIndex(rowStr)
			if err != nil {
				invalid("table row: %v.", err)
				continue
			}
			c, err := parseIndex(colStr)
			if err != nil {
				invalid("table column: %v.", err)
				continue
			}
			key := [2]int{slide, shape}
			idx, ok := tables[key]
			if !ok {
				set.Updates = append(set.Updates, models.UpdateInstruction{Slide: &slide, Shape: &shape})
				idx = len(set.Updates) - 1
				tables[key] = idx
			}
			set.Updates[idx].TableCells = append(set.Updates[idx].TableCells, models.TableCellUpdate{
				Row: &r, Column: &c, Text: text,
			})
			continue
		}

		ins := models.UpdateInstruction{Slide: &slide, Shape: &shape, Text: text}
		if pb := cell("preserve_bullets"); pb != "" {
			v, err := strconv.ParseBool(strings.ToLower(pb))
			if err != nil {
				invalid("preserve_bullets: %q is not a boolean.", pb)
				continue
			}
			ins.PreserveBullets = &v
		}
		set.Updates = append(set.Updates, ins)
	}
	return set, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[name]; !dup && name != "" {
			cols[name] = i
		}
	}
	return cols
}

// rawCell keeps surrounding whitespace and line breaks of the text column.
func rawCell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	if strings.TrimSpace(row[idx]) == "" {
		return ""
	}
	return row[idx]
}

func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	// Numeric cells may come back formatted as "2.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}
