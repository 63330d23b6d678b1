package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// ExtractChart reads the type and title of the chart part that a slide
// references through rID.
func ExtractChart(slide *presentation.Slide, rID string) (*models.ChartData, error) {
	name, data, ok := slide.RelatedPart(rID)
	if !ok {
		return &models.ChartData{ChartType: "unknown"}, fmt.Errorf("chart relationship %s on slide %d not found", rID, slide.Number())
	}
	chart, err := parseChartXML(data)
	if err != nil {
		return &models.ChartData{ChartType: "unknown"}, fmt.Errorf("parse %s: %w", name, err)
	}
	return chart, nil
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) (*models.ChartData, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	chart := &models.ChartData{}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "title":
			// c:title also appears on axes; only the first one names the chart.
			if chart.Title == "" && chart.ChartType == "" {
				chart.Title = parseChartTitle(decoder)
			}
		default:
			if ct, ok := ChartTypeMap[se.Name.Local]; ok && chart.ChartType == "" {
				chart.ChartType = ct
			}
		}
	}

	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	return chart, nil
}

// parseChartTitle collects the text runs of a c:title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var parts []string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					parts = append(parts, txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(strings.Join(parts, ""))
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}
