package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadUpdatesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.json")
	doc := `{
  "updates": [
    {"slide": 1, "shape": 2, "text": "Hello\nWorld"},
    {"slide": 1, "shape": 3, "text": "Flat", "preserve_bullets": false},
    {"slide": 2, "shape": 1, "table_cells": [{"row": 0, "column": 1, "text": "42"}]}
  ]
}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadUpdates(path)
	if err != nil {
		t.Fatalf("LoadUpdates failed: %v", err)
	}
	if len(set.Updates) != 3 {
		t.Fatalf("Expected 3 updates, got %d", len(set.Updates))
	}
	if !set.Updates[0].ShouldPreserveBullets() {
		t.Error("preserve_bullets should default to true")
	}
	if set.Updates[1].ShouldPreserveBullets() {
		t.Error("preserve_bullets false was not kept")
	}
	cells := set.Updates[2].TableCells
	if len(cells) != 1 || *cells[0].Row != 0 || *cells[0].Column != 1 || cells[0].Text != "42" {
		t.Errorf("Unexpected table cells: %+v", cells)
	}
}

func TestLoadUpdatesJSONErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"updates": [`), 0644)
	if _, err := LoadUpdates(bad); !errors.Is(err, ErrInvalidUpdates) {
		t.Errorf("Expected ErrInvalidUpdates, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{}`), 0644)
	set, err := LoadUpdates(empty)
	if err != nil || len(set.Updates) != 0 {
		t.Errorf("Expected no updates, got %+v (err %v)", set, err)
	}

	if _, err := LoadUpdates(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestLoadUpdatesJSONKeepsInvalidInstructions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.json")
	doc := `{"updates": [
  {"slide": 1, "shape": 1, "text": "ok"},
  {"slide": "2", "shape": 1, "text": "bad"},
  {"slide": 1, "shape": 3, "table_cells": [{"row": 1.5, "column": 0, "text": "x"}]},
  {"slide": 1, "shape": 2, "text": "ok2", "preserve_bullets": "yes"},
  {"slide": 1, "shape": 2, "text": "ok3"}
]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadUpdates(path)
	if err != nil {
		t.Fatalf("One bad instruction must not fail the document: %v", err)
	}
	if len(set.Updates) != 5 {
		t.Fatalf("Expected 5 updates, got %d", len(set.Updates))
	}

	wantInvalid := map[int]string{
		1: "invalid slide: expected int, got string.",
		2: "invalid table_cells.row: expected int, got number 1.5.",
		3: "invalid preserve_bullets: expected bool, got string.",
	}
	for i, ins := range set.Updates {
		if got := ins.Invalid; got != wantInvalid[i] {
			t.Errorf("update %d: Invalid = %q, expected %q", i+1, got, wantInvalid[i])
		}
	}
	if set.Updates[1].Slide != nil || set.Updates[1].Text != "" {
		t.Errorf("Invalid instruction kept partial fields: %+v", set.Updates[1])
	}
	if *set.Updates[4].Shape != 2 || set.Updates[4].Text != "ok3" {
		t.Errorf("Unexpected last update: %+v", set.Updates[4])
	}
}

func TestLoadUpdatesXLSXKeepsInvalidRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(UpdateSheet); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"slide", "shape", "row", "column", "text", "preserve_bullets"},
		{1, 1, "", "", "first", ""},
		{"first", 1, "", "", "bad slide", ""},
		{1, 3, 0.5, 1, "bad row", ""},
		{1, 2, "", "", "bad flag", "maybe"},
		{2, 1, "", "", "last", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(UpdateSheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "updates.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	set, err := LoadUpdates(path)
	if err != nil {
		t.Fatalf("LoadUpdates failed: %v", err)
	}
	var got []string
	for _, ins := range set.Updates {
		got = append(got, ins.Invalid)
	}
	want := []string{
		"",
		`row 3: slide: "first" is not an integer.`,
		`row 4: table row: "0.5" is not an integer.`,
		`row 5: preserve_bullets: "maybe" is not a boolean.`,
		"",
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d updates, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("update %d: Invalid = %q, expected %q", i+1, got[i], want[i])
		}
	}
}

func TestLoadUpdatesXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(UpdateSheet); err != nil {
		t.Fatal(err)
	}
	rows := [][]interface{}{
		{"slide", "shape", "row", "column", "name", "shape_type", "original_text", "character_count", "text", "preserve_bullets"},
		{1, 1, "", "", "Title", "Placeholder", "Old", 3, "New title", ""},
		{1, 2, "", "", "Body", "TextBox", "a", 1, "", ""},
		{1, 3, 0, 1, "Table", "Table", "x", 1, "cell A", ""},
		{2, 1, "", "", "Body", "TextBox", "b", 1, "one\ntwo", "FALSE"},
		{1, 3, 1, 0, "Table", "Table", "y", 1, "cell B", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(UpdateSheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "updates.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	set, err := LoadUpdates(path)
	if err != nil {
		t.Fatalf("LoadUpdates failed: %v", err)
	}
	if len(set.Updates) != 3 {
		t.Fatalf("Expected 3 updates, got %d: %+v", len(set.Updates), set.Updates)
	}

	title := set.Updates[0]
	if *title.Slide != 1 || *title.Shape != 1 || title.Text != "New title" {
		t.Errorf("Unexpected title update: %+v", title)
	}

	table := set.Updates[1]
	if *table.Shape != 3 || len(table.TableCells) != 2 {
		t.Fatalf("Expected grouped table cells, got %+v", table)
	}
	if table.TableCells[1].Text != "cell B" || *table.TableCells[1].Row != 1 {
		t.Errorf("Unexpected second cell: %+v", table.TableCells[1])
	}

	body := set.Updates[2]
	if body.Text != "one\ntwo" || body.ShouldPreserveBullets() {
		t.Errorf("Unexpected body update: text=%q preserve=%v", body.Text, body.ShouldPreserveBullets())
	}
}

func TestLoadUpdatesXLSXErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{"missing text column", [][]interface{}{{"slide", "shape"}, {1, 1}}},
	}

	for _, tt := range tests {
		f := excelize.NewFile()
		f.NewSheet(UpdateSheet)
		for i, row := range tt.rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			f.SetSheetRow(UpdateSheet, cell, &row)
		}
		path := filepath.Join(t.TempDir(), "updates.xlsx")
		if err := f.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		f.Close()

		if _, err := LoadUpdates(path); !errors.Is(err, ErrInvalidUpdates) {
			t.Errorf("%s: expected ErrInvalidUpdates, got %v", tt.name, err)
		}
	}

	// A workbook without the updates sheet is rejected too.
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "nosheet.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if _, err := LoadUpdates(path); !errors.Is(err, ErrInvalidUpdates) {
		t.Errorf("Expected ErrInvalidUpdates for missing sheet, got %v", err)
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"3", 3, false},
		{"2.0", 2, false},
		{"-1", -1, false},
		{"2.5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		result, err := parseIndex(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if result != tt.expected {
			t.Errorf("parseIndex(%q) = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}
