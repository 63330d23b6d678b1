package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// Extraction modes.
const (
	ModeLight    = "light"
	ModeStandard = "standard"
	ModeVerbose  = "verbose"
)

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"rect":                      "AutoShape-Rectangle",
	"roundRect":                 "AutoShape-RoundedRectangle",
	"snip1Rect":                 "AutoShape-SnipSingleCornerRectangle",
	"ellipse":                   "AutoShape-Oval",
	"diamond":                   "AutoShape-Diamond",
	"triangle":                  "AutoShape-IsoscelesTriangle",
	"rtTriangle":                "AutoShape-RightTriangle",
	"parallelogram":             "AutoShape-Parallelogram",
	"trapezoid":                 "AutoShape-Trapezoid",
	"hexagon":                   "AutoShape-Hexagon",
	"octagon":                   "AutoShape-Octagon",
	"pentagon":                  "AutoShape-Pentagon",
	"chevron":                   "AutoShape-Chevron",
	"homePlate":                 "AutoShape-Pentagon",
	"rightArrow":                "AutoShape-RightArrow",
	"leftArrow":                 "AutoShape-LeftArrow",
	"upArrow":                   "AutoShape-UpArrow",
	"downArrow":                 "AutoShape-DownArrow",
	"wedgeRectCallout":          "AutoShape-RectangularCallout",
	"wedgeRoundRectCallout":     "AutoShape-RoundedRectangularCallout",
	"cloudCallout":              "AutoShape-CloudCallout",
	"flowChartProcess":          "AutoShape-FlowchartProcess",
	"flowChartDecision":         "AutoShape-FlowchartDecision",
	"flowChartTerminator":       "AutoShape-FlowchartTerminator",
	"flowChartAlternateProcess": "AutoShape-FlowchartAlternateProcess",
	"straightConnector1":        "Line",
	"bentConnector3":            "AutoShape-Connector",
	"curvedConnector3":          "AutoShape-Connector",
	"line":                      "Line",
}

// PlaceholderTypeMap maps p:ph type attributes to placeholder type names.
var PlaceholderTypeMap = map[string]string{
	"title":    "TITLE",
	"body":     "BODY",
	"ctrTitle": "CENTER_TITLE",
	"subTitle": "SUBTITLE",
	"dt":       "DATE",
	"sldNum":   "SLIDE_NUMBER",
	"ftr":      "FOOTER",
	"hdr":      "HEADER",
	"obj":      "OBJECT",
	"chart":    "CHART",
	"tbl":      "TABLE",
	"clipArt":  "CLIP_ART",
	"dgm":      "ORG_CHART",
	"media":    "MEDIA_CLIP",
	"sldImg":   "SLIDE_IMAGE",
	"pic":      "PICTURE",
}

// ExtractShape analyzes a single shape. ok is false when the shape is
// filtered out by mode. err reports a chart part that could not be read;
// the shape data is still usable.
func ExtractShape(shape *presentation.Shape, mode string) (data models.ShapeData, ok bool, err error) {
	g := shape.Geometry()
	data = models.ShapeData{
		Index:     shape.Index(),
		Name:      shape.Name(),
		ShapeType: shape.TypeName(),
		Position: models.Position{
			Left:   g.Left,
			Top:    g.Top,
			Width:  g.Width,
			Height: g.Height,
		},
	}

	switch shape.Kind() {
	case presentation.KindTable:
		if mode == ModeLight {
			return data, false, nil
		}
		table := ExtractTable(shape.Table())
		data.IsTable = true
		data.Table = table
		for _, c := range table.Cells {
			data.CharacterCount += c.CharacterCount
		}
	case presentation.KindText:
		if tb := shape.TextBody(); tb != nil {
			data.TextContent = tb.Text()
			data.CharacterCount = utf8.RuneCountInString(data.TextContent)
			data.Paragraphs, data.Bullets = countParagraphs(tb)
		}
	default:
		if rID := shape.ChartRelID(); rID != "" && mode != ModeLight {
			data.Chart, err = ExtractChart(shape.Slide(), rID)
		}
	}

	if ph, isPh := shape.Placeholder(); isPh {
		data.IsPlaceholder = true
		data.PlaceholderType = placeholderTypeName(ph.Type)
	}

	if mode == ModeVerbose {
		data.AutoShapeType = autoShapeLabel(shape.PresetGeometry())
		data.PositionPx = PositionToPixels(data.Position)
	}

	return data, shouldIncludeShape(data, mode), err
}

// countParagraphs returns the paragraph count and the number of paragraphs
// that are indented or carry visible text.
func countParagraphs(tb *presentation.TextBody) (paragraphs, bullets int) {
	for _, p := range tb.Paragraphs() {
		paragraphs++
		if p.Level() > 0 || strings.TrimSpace(p.Text()) != "" {
			bullets++
		}
	}
	return paragraphs, bullets
}

func shouldIncludeShape(data models.ShapeData, mode string) bool {
	switch mode {
	case ModeVerbose:
		return true
	case ModeLight:
		return !data.IsTable && data.Chart == nil && data.TextContent != ""
	}
	// standard mode: include if text exists, the table has content or a chart
	if data.TextContent != "" || data.Chart != nil {
		return true
	}
	return data.IsTable && len(data.Table.Cells) > 0
}

func autoShapeLabel(prst string) string {
	if prst == "" {
		return ""
	}
	if label, ok := PresetGeomMap[prst]; ok {
		return label
	}
	return "AutoShape-" + prst
}

func placeholderTypeName(phType string) string {
	if name, ok := PlaceholderTypeMap[phType]; ok {
		return name
	}
	return strings.ToUpper(phType)
}
