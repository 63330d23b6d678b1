package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/pptxtemplate-go/internal/pptxtest"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func template(t *testing.T) string {
	t.Helper()
	return pptxtest.Write(t,
		pptxtest.TextBox(2, "Title", pptxtest.Plain("Hello"))+
			pptxtest.TextBox(3, "Body", pptxtest.Plain("First"), pptxtest.Plain("Second")))
}

func TestExtractToStdout(t *testing.T) {
	out, err := execute(t, "extract", template(t))
	require.NoError(t, err)

	var s models.TemplateStructure
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 1, s.TotalSlides)
	require.Len(t, s.Slides[0].Shapes, 2)
	assert.Equal(t, "First\nSecond", s.Slides[0].Shapes[1].TextContent)
}

func TestExtractToFiles(t *testing.T) {
	dir := t.TempDir()
	jsonOut := filepath.Join(dir, "structure.json")
	slides := filepath.Join(dir, "slides")

	_, err := execute(t, "extract", template(t), "-o", jsonOut, "--pretty", "--slides-dir", slides, "--mode", "verbose")
	require.NoError(t, err)
	assert.FileExists(t, jsonOut)
	assert.FileExists(t, filepath.Join(slides, "slide1.json"))

	xlsxOut := filepath.Join(dir, "structure.xlsx")
	_, err = execute(t, "extract", template(t), "-o", xlsxOut)
	require.NoError(t, err)
	assert.FileExists(t, xlsxOut)

	_, err = execute(t, "extract", template(t), "-o", filepath.Join(dir, "structure.txt"))
	assert.Error(t, err)
}

func TestExtractRejectsUnknownMode(t *testing.T) {
	_, err := execute(t, "extract", template(t), "--mode", "everything")
	assert.ErrorContains(t, err, "invalid mode")
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	updates := filepath.Join(dir, "updates.json")
	require.NoError(t, os.WriteFile(updates, []byte(`{"updates":[
		{"slide":1,"shape":1,"text":"Hello there, world"},
		{"slide":1,"shape":7,"text":"missing"}
	]}`), 0644))
	out := filepath.Join(dir, "out.pptx")
	reportFile := filepath.Join(dir, "report.json")

	stdout, err := execute(t, "update", template(t), updates, out, "--report", reportFile)
	require.NoError(t, err)
	assert.FileExists(t, out)
	assert.Contains(t, stdout, "Updates applied: 1")
	assert.Contains(t, stdout, "Warnings (1)")
	assert.Contains(t, stdout, "Invalid shape index: 7 on slide 1. Slide has 2 shapes.")

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	var report models.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 1, report.UpdatesApplied)
	assert.Len(t, report.Errors, 1)

	stdout, err = execute(t, "update", template(t), updates, out, "--no-overflow-warnings")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Warnings")
}

func TestUpdateStrict(t *testing.T) {
	dir := t.TempDir()
	updates := filepath.Join(dir, "updates.json")
	require.NoError(t, os.WriteFile(updates, []byte(`{"updates":[
		{"slide":1,"shape":1,"text":"Hi"},
		{"slide":"1","shape":2,"text":"typed wrong"}
	]}`), 0644))
	out := filepath.Join(dir, "out.pptx")

	stdout, err := execute(t, "update", template(t), updates, out, "--strict")
	require.EqualError(t, err, "1 of 2 updates failed")
	assert.FileExists(t, out, "output is written even when the run is not clean")
	assert.Contains(t, stdout, "Update 2: invalid slide: expected int, got string.")

	clean := filepath.Join(dir, "clean.json")
	require.NoError(t, os.WriteFile(clean, []byte(`{"updates":[{"slide":1,"shape":1,"text":"Hi"}]}`), 0644))
	_, err = execute(t, "update", template(t), clean, out, "--strict")
	assert.NoError(t, err)
}

func TestUpdateFatal(t *testing.T) {
	dir := t.TempDir()
	updates := filepath.Join(dir, "updates.json")
	require.NoError(t, os.WriteFile(updates, []byte(`{"updates":[]}`), 0644))
	out := filepath.Join(dir, "out.pptx")

	_, err := execute(t, "update", filepath.Join(dir, "missing.pptx"), updates, out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)

	_, err = execute(t, "update", template(t), updates)
	assert.Error(t, err)
}
