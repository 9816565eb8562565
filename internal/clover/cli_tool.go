package clover

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/fsutil"
)

// Entry points of the Clover command-line distribution.
const (
	instrumenterClass = "com.atlassian.clover.CloverInstr"
	xmlReporterClass  = "com.atlassian.clover.reporters.xml.XMLReporter"
	jsonReporterClass = "com.atlassian.clover.reporters.json.JSONReporter"
	htmlReporterClass = "com.atlassian.clover.reporters.html.HtmlReporter"
	pdfReporterClass  = "com.atlassian.clover.reporters.pdf.PDFReporter"
)

// CLITool drives Clover through its command-line entry points and compiles
// the instrumented sources with javac (or groovyc for mixed sources).
type CLITool struct {
	Runner    command.Runner
	CloverJar string
	Java      string
	Javac     string
	Groovyc   string
}

// NewCLITool creates a CLITool using java, javac and groovyc from PATH.
func NewCLITool(runner command.Runner, cloverJar string) *CLITool {
	return &CLITool{
		Runner:    runner,
		CloverJar: cloverJar,
		Java:      "java",
		Javac:     "javac",
		Groovyc:   "groovyc",
	}
}

// Instrument rewrites every matching source file into WorkDir and compiles
// the result into ClassesDir.
func (c *CLITool) Instrument(ctx context.Context, req InstrumentRequest) error {
	logger := ctxlog.FromContext(ctx)
	if c.CloverJar == "" {
		return errors.New("clover jar is not configured")
	}

	instrDir := filepath.Join(req.WorkDir, "src")
	if err := os.RemoveAll(instrDir); err != nil {
		return err
	}
	if err := os.MkdirAll(instrDir, 0o755); err != nil {
		return err
	}

	for _, srcDir := range req.SrcDirs {
		files, err := fsutil.FindFiles(srcDir, req.Includes, req.Excludes)
		if err != nil {
			return fmt.Errorf("collecting sources in %s: %w", srcDir, err)
		}
		if len(files) == 0 {
			logger.Debug("No matching sources, skipping directory.", "dir", srcDir)
			continue
		}
		args := c.javaArgs(req.LicenseFile, instrumenterClass,
			"-i", req.InitString,
			"-s", srcDir,
			"-d", instrDir,
			"--source", req.SourceCompatibility,
		)
		args = append(args, files...)
		logger.Debug("Instrumenting sources.", "dir", srcDir, "files", len(files))
		if err := command.Check(ctx, c.Runner, command.Cmd{Name: c.Java, Args: args}); err != nil {
			return fmt.Errorf("instrumenting %s: %w", srcDir, err)
		}
	}

	return c.compile(ctx, req, instrDir)
}

func (c *CLITool) compile(ctx context.Context, req InstrumentRequest, instrDir string) error {
	javaFiles, err := fsutil.FindFiles(instrDir, []string{"**/*.java"}, nil)
	if err != nil {
		return err
	}
	groovyFiles, err := fsutil.FindFiles(instrDir, []string{"**/*.groovy"}, nil)
	if err != nil {
		return err
	}
	if len(javaFiles)+len(groovyFiles) == 0 {
		ctxlog.FromContext(ctx).Warn("No instrumented sources to compile.")
		return nil
	}
	if err := os.MkdirAll(req.ClassesDir, 0o755); err != nil {
		return err
	}

	cp := strings.Join(append(append([]string(nil), req.Classpath...), c.CloverJar), string(os.PathListSeparator))

	if len(groovyFiles) > 0 {
		gcp := cp
		if len(req.GroovyClasspath) > 0 {
			gcp = strings.Join(append(append([]string(nil), req.GroovyClasspath...), cp), string(os.PathListSeparator))
		}
		args := []string{"-j", "-d", req.ClassesDir, "--classpath", gcp}
		args = append(args, groovyFiles...)
		args = append(args, javaFiles...)
		if err := command.Check(ctx, c.Runner, command.Cmd{Name: c.Groovyc, Args: args}); err != nil {
			return fmt.Errorf("compiling instrumented sources: %w", err)
		}
		return nil
	}

	args := []string{
		"-source", req.SourceCompatibility,
		"-target", req.TargetCompatibility,
		"-d", req.ClassesDir,
		"-cp", cp,
	}
	args = append(args, javaFiles...)
	if err := command.Check(ctx, c.Runner, command.Cmd{Name: c.Javac, Args: args}); err != nil {
		return fmt.Errorf("compiling instrumented sources: %w", err)
	}
	return nil
}

// Report renders one report format into OutputDir.
func (c *CLITool) Report(ctx context.Context, req ReportRequest) error {
	if c.CloverJar == "" {
		return errors.New("clover jar is not configured")
	}
	class, out, err := reporterFor(req.Format, req.OutputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return err
	}
	args := c.javaArgs(req.LicenseFile, class, "-i", req.InitString, "-o", out)
	if req.Title != "" {
		args = append(args, "-t", req.Title)
	}
	if err := command.Check(ctx, c.Runner, command.Cmd{Name: c.Java, Args: args}); err != nil {
		return fmt.Errorf("generating %s report: %w", req.Format, err)
	}
	return nil
}

// Check renders an XML report into WorkDir and compares its total coverage
// with the target.
func (c *CLITool) Check(ctx context.Context, req CheckRequest) error {
	if err := c.Report(ctx, ReportRequest{
		InitString:  req.InitString,
		LicenseFile: req.LicenseFile,
		OutputDir:   req.WorkDir,
		Format:      FormatXML,
	}); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(req.WorkDir, "clover.xml"))
	if err != nil {
		return fmt.Errorf("reading coverage summary: %w", err)
	}
	defer f.Close()

	report, err := ParseXMLReport(f)
	if err != nil {
		return err
	}
	got := report.Percentage()
	ctxlog.FromContext(ctx).Info("Coverage measured.", "percentage", got, "target", req.TargetPercentage)
	if got < req.TargetPercentage {
		return fmt.Errorf("%w: %.2f%% < %.2f%%", ErrCoverageBelowTarget, got, req.TargetPercentage)
	}
	return nil
}

func (c *CLITool) javaArgs(licenseFile, mainClass string, rest ...string) []string {
	var args []string
	if licenseFile != "" {
		args = append(args, "-Dclover.license.path="+licenseFile)
	}
	args = append(args, "-cp", c.CloverJar, mainClass)
	return append(args, rest...)
}

func reporterFor(f Format, dir string) (class, out string, err error) {
	switch f {
	case FormatXML:
		return xmlReporterClass, filepath.Join(dir, "clover.xml"), nil
	case FormatJSON:
		return jsonReporterClass, filepath.Join(dir, "json"), nil
	case FormatHTML:
		return htmlReporterClass, filepath.Join(dir, "html"), nil
	case FormatPDF:
		return pdfReporterClass, filepath.Join(dir, "clover.pdf"), nil
	}
	return "", "", fmt.Errorf("unknown report format %q", f)
}

var _ Tool = (*CLITool)(nil)
