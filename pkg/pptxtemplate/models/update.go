package models

// UpdateSet is the instruction document consumed by the update engine.
type UpdateSet struct {
	Updates []UpdateInstruction `json:"updates"`
}

// UpdateInstruction targets exactly one shape. When the shape is a table and
// TableCells is non-empty the instruction fans out into cell updates and
// Text is ignored.
type UpdateInstruction struct {
	// Slide is the slide number (1-based).
	Slide *int `json:"slide"`
	// Shape is the shape index on the slide (1-based).
	Shape *int `json:"shape"`
	// Text is the replacement text; line feeds separate bullets.
	Text string `json:"text"`
	// PreserveBullets rebuilds one paragraph per line. Defaults to true.
	PreserveBullets *bool `json:"preserve_bullets,omitempty"`
	// TableCells lists per-cell replacements for table shapes.
	TableCells []TableCellUpdate `json:"table_cells,omitempty"`
	// Invalid is set by loaders when the instruction could not be decoded.
	// Such an instruction is reported as an error and never applied.
	Invalid string `json:"-"`
}

// ShouldPreserveBullets returns whether bullet structure is rebuilt.
func (u UpdateInstruction) ShouldPreserveBullets() bool {
	if u.PreserveBullets != nil {
		return *u.PreserveBullets
	}
	return true
}

// TableCellUpdate replaces the text of one cell. Row and Column are 0-based.
type TableCellUpdate struct {
	Row    *int   `json:"row"`
	Column *int   `json:"column"`
	Text   string `json:"text"`
}
