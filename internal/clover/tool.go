// Package clover adapts the external Clover coverage tool. Instrumentation,
// coverage measurement and report rendering all happen inside the tool; this
// package only builds its invocations and reports success or failure.
package clover

import (
	"context"
	"errors"
)

// ErrCoverageBelowTarget is returned by Check when measured coverage is
// lower than the requested target.
var ErrCoverageBelowTarget = errors.New("coverage below target")

// Format is a report output format.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// InstrumentRequest carries everything needed to instrument and recompile
// the production sources.
type InstrumentRequest struct {
	InitString          string
	LicenseFile         string
	SrcDirs             []string
	Includes            []string
	Excludes            []string
	Classpath           []string
	GroovyClasspath     []string
	SourceCompatibility string
	TargetCompatibility string
	// ClassesDir receives the compiled, instrumented classes.
	ClassesDir string
	// WorkDir is scratch space for instrumented sources.
	WorkDir string
}

// ReportRequest asks for one report in one format.
type ReportRequest struct {
	InitString  string
	LicenseFile string
	OutputDir   string
	Format      Format
	Title       string
}

// CheckRequest asks the tool to verify total coverage against a target.
type CheckRequest struct {
	InitString       string
	LicenseFile      string
	TargetPercentage float64
	WorkDir          string
}

// Tool is the contract with the external coverage tool.
type Tool interface {
	Instrument(ctx context.Context, req InstrumentRequest) error
	Report(ctx context.Context, req ReportRequest) error
	Check(ctx context.Context, req CheckRequest) error
}
