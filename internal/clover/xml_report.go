package clover

import (
	"encoding/xml"
	"fmt"
	"io"
)

// XMLReport is the subset of Clover's XML report needed for a coverage check.
type XMLReport struct {
	XMLName   xml.Name   `xml:"coverage"`
	Generated int64      `xml:"generated,attr"`
	Project   XMLProject `xml:"project"`
}

// XMLProject holds project-wide totals.
type XMLProject struct {
	Name    string     `xml:"name,attr"`
	Metrics XMLMetrics `xml:"metrics"`
}

// XMLMetrics are Clover's element counters. An element is a statement,
// a branch condition or a method entry.
type XMLMetrics struct {
	Elements        int `xml:"elements,attr"`
	CoveredElements int `xml:"coveredelements,attr"`
	Statements      int `xml:"statements,attr"`
	CoveredStmts    int `xml:"coveredstatements,attr"`
}

// ParseXMLReport decodes a Clover XML report.
func ParseXMLReport(r io.Reader) (*XMLReport, error) {
	var rep XMLReport
	if err := xml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decoding clover xml report: %w", err)
	}
	return &rep, nil
}

// Percentage returns total element coverage, 0-100. An empty project counts
// as fully covered.
func (r *XMLReport) Percentage() float64 {
	m := r.Project.Metrics
	if m.Elements == 0 {
		return 100
	}
	return float64(m.CoveredElements) * 100 / float64(m.Elements)
}
