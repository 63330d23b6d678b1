// Package models defines data structures for template inspection and updates.
package models

// TemplateStructure represents the inspection report of a whole presentation.
type TemplateStructure struct {
	// FileName is the presentation file name (no path).
	FileName string `json:"file_name"`
	// TotalSlides is the number of slides.
	TotalSlides int `json:"total_slides"`
	// SlideWidth is the slide width in EMU.
	SlideWidth int64 `json:"slide_width"`
	// SlideHeight is the slide height in EMU.
	SlideHeight int64 `json:"slide_height"`
	// Slides lists every slide in presentation order.
	Slides []SlideData `json:"slides"`
}

// SlideData represents the shapes of one slide worth targeting.
type SlideData struct {
	// SlideNumber is the slide number (1-based).
	SlideNumber int `json:"slide_number"`
	// Shapes contains the reported shapes.
	Shapes []ShapeData `json:"shapes"`
}

// ShapeData represents one shape, addressed by its Index in update instructions.
type ShapeData struct {
	// Index is the shape index on the slide (1-based, counting every shape).
	Index int `json:"index"`
	// Name is the shape name.
	Name string `json:"name"`
	// ShapeType is the readable shape type (TextBox, Placeholder, Table, ...).
	ShapeType string `json:"shape_type"`
	// AutoShapeType is the preset geometry label (verbose mode only).
	AutoShapeType string `json:"auto_shape_type,omitempty"`
	// Position is the shape offset and extent in EMU.
	Position Position `json:"position"`
	// PositionPx is the position in pixels at 96 DPI (verbose mode only).
	PositionPx *PixelPosition `json:"position_px,omitempty"`
	// TextContent is the shape text; paragraphs are separated by line feeds.
	TextContent string `json:"text_content"`
	// CharacterCount is the length of TextContent in characters.
	CharacterCount int `json:"character_count"`
	// Paragraphs is the number of paragraphs.
	Paragraphs int `json:"paragraphs"`
	// Bullets is the number of indented or non-blank paragraphs.
	Bullets int `json:"bullets"`
	// IsTable marks table shapes.
	IsTable bool `json:"is_table"`
	// Table holds the table contents for table shapes.
	Table *TableData `json:"table,omitempty"`
	// Chart holds chart metadata for chart shapes.
	Chart *ChartData `json:"chart,omitempty"`
	// IsPlaceholder marks layout placeholders.
	IsPlaceholder bool `json:"is_placeholder,omitempty"`
	// PlaceholderType is the placeholder type (TITLE, BODY, ...).
	PlaceholderType string `json:"placeholder_type,omitempty"`
}

// Position represents a shape's offset and extent in EMU. Fields are nil
// when the shape inherits its position from the layout.
type Position struct {
	Left   *int64 `json:"left"`
	Top    *int64 `json:"top"`
	Width  *int64 `json:"width"`
	Height *int64 `json:"height"`
}

// PixelPosition represents a shape's position in pixels.
type PixelPosition struct {
	L int `json:"l"`
	T int `json:"t"`
	W int `json:"w"`
	H int `json:"h"`
}

// TableData represents the contents of a table shape.
type TableData struct {
	// Rows is the number of rows.
	Rows int `json:"rows"`
	// Columns is the number of grid columns.
	Columns int `json:"columns"`
	// Cells lists non-empty cells only.
	Cells []CellData `json:"cells"`
}

// CellData represents one non-empty table cell. Row and Column are 0-based.
type CellData struct {
	Row            int    `json:"row"`
	Column         int    `json:"column"`
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
}

// ChartData represents chart metadata read from the chart part.
type ChartData struct {
	// ChartType is the chart type (e.g., Bar, Line).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
}
