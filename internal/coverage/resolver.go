package coverage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/fsutil"
	"github.com/specialistvlad/clovergrid/internal/project"
)

// ErrUnknownSetting is returned by Resolve for a name it does not recognize.
var ErrUnknownSetting = errors.New("unknown clover setting")

// Setting names accepted by Resolver.Resolve.
const (
	SettingClassesBackupDir    = "classesBackupDir"
	SettingLicenseFile         = "licenseFile"
	SettingSrcDirs             = "srcDirs"
	SettingIncludes            = "includes"
	SettingExcludes            = "excludes"
	SettingInitString          = "initString"
	SettingReportsDir          = "reportsDir"
	SettingClassesDir          = "classesDir"
	SettingClasspath           = "classpath"
	SettingSourceCompatibility = "sourceCompatibility"
	SettingTargetCompatibility = "targetCompatibility"
	SettingTargetPercentage    = "targetPercentage"
	SettingFormats             = "formats"
	SettingCloverJar           = "cloverJar"
)

// Convention holds the user's explicit overrides from the clover block.
// A nil field means "not set"; paths are expected to be absolute already.
type Convention struct {
	ClassesBackupDir *string
	LicenseFile      *string
	Includes         []string
	Excludes         []string
	InitString       *string
	ReportsDir       *string
	TargetPercentage *float64
	CloverJar        *string

	XML  *bool
	JSON *bool
	HTML *bool
	PDF  *bool
}

// Resolver maps setting names to values. Every call recomputes its result
// from the current project state.
type Resolver struct {
	project *project.Project
	conv    *Convention
}

// NewResolver creates a resolver over p. conv may be nil.
func NewResolver(p *project.Project, conv *Convention) *Resolver {
	if conv == nil {
		conv = &Convention{}
	}
	return &Resolver{project: p, conv: conv}
}

// ClassesDir returns the main source set's compiled classes directory.
func (r *Resolver) ClassesDir() string {
	return r.project.ClassesDir(project.MainSourceSet)
}

func (r *Resolver) ClassesBackupDir() string {
	if r.conv.ClassesBackupDir != nil {
		return *r.conv.ClassesBackupDir
	}
	return r.ClassesDir() + "-bak"
}

func (r *Resolver) LicenseFile() string {
	if r.conv.LicenseFile != nil {
		return *r.conv.LicenseFile
	}
	return r.project.Path("clover.license")
}

// SrcDirs returns the existing main source directories: Java always, Groovy
// only when the groovy plugin is enabled. Each missing directory is logged
// once per call and left out.
func (r *Resolver) SrcDirs(ctx context.Context) []string {
	logger := ctxlog.FromContext(ctx)
	candidates := r.project.JavaSrcDirs(project.MainSourceSet)
	candidates = append(candidates, r.project.GroovySrcDirs(project.MainSourceSet)...)

	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if !fsutil.DirExists(dir) {
			logger.Warn("Clover source directory does not exist, skipping.", "dir", dir)
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

func (r *Resolver) Includes() []string {
	if r.conv.Includes != nil {
		return slices.Clone(r.conv.Includes)
	}
	includes := []string{"**/*.java"}
	if r.project.HasPlugin(project.PluginGroovy) {
		includes = append(includes, "**/*.groovy")
	}
	return includes
}

func (r *Resolver) Excludes() []string {
	return slices.Clone(r.conv.Excludes)
}

// InitString is the location of the coverage database.
func (r *Resolver) InitString() string {
	if r.conv.InitString != nil {
		return *r.conv.InitString
	}
	return filepath.Join(r.project.BuildPath(), ".clover", "clover.db")
}

func (r *Resolver) ReportsDir() string {
	if r.conv.ReportsDir != nil {
		return *r.conv.ReportsDir
	}
	return filepath.Join(r.project.BuildPath(), "reports", "clover")
}

func (r *Resolver) Classpath() []string {
	return r.project.ResolvedClasspath()
}

func (r *Resolver) GroovyClasspath() []string {
	return r.project.ResolvedGroovyClasspath()
}

func (r *Resolver) SourceCompatibility() string {
	source, _ := r.project.Compatibility()
	return source
}

func (r *Resolver) TargetCompatibility() string {
	_, target := r.project.Compatibility()
	return target
}

// TargetPercentage returns the coverage target and whether one is set.
func (r *Resolver) TargetPercentage() (float64, bool) {
	if r.conv.TargetPercentage == nil {
		return 0, false
	}
	return *r.conv.TargetPercentage, true
}

// Formats returns the enabled report formats, xml if none is enabled.
func (r *Resolver) Formats() []clover.Format {
	var formats []clover.Format
	for _, f := range []struct {
		flag   *bool
		format clover.Format
	}{
		{r.conv.XML, clover.FormatXML},
		{r.conv.JSON, clover.FormatJSON},
		{r.conv.HTML, clover.FormatHTML},
		{r.conv.PDF, clover.FormatPDF},
	} {
		if f.flag != nil && *f.flag {
			formats = append(formats, f.format)
		}
	}
	if len(formats) == 0 {
		return []clover.Format{clover.FormatXML}
	}
	return formats
}

func (r *Resolver) CloverJar() string {
	if r.conv.CloverJar != nil {
		return *r.conv.CloverJar
	}
	return r.project.Path(filepath.Join("lib", "clover.jar"))
}

// Resolve returns a setting by name. Recognized names never fail.
func (r *Resolver) Resolve(ctx context.Context, name string) (any, error) {
	switch name {
	case SettingClassesBackupDir:
		return r.ClassesBackupDir(), nil
	case SettingLicenseFile:
		return r.LicenseFile(), nil
	case SettingSrcDirs:
		return r.SrcDirs(ctx), nil
	case SettingIncludes:
		return r.Includes(), nil
	case SettingExcludes:
		return r.Excludes(), nil
	case SettingInitString:
		return r.InitString(), nil
	case SettingReportsDir:
		return r.ReportsDir(), nil
	case SettingClassesDir:
		return r.ClassesDir(), nil
	case SettingClasspath:
		return r.Classpath(), nil
	case SettingSourceCompatibility:
		return r.SourceCompatibility(), nil
	case SettingTargetCompatibility:
		return r.TargetCompatibility(), nil
	case SettingTargetPercentage:
		if v, ok := r.TargetPercentage(); ok {
			return v, nil
		}
		return nil, nil
	case SettingFormats:
		return r.Formats(), nil
	case SettingCloverJar:
		return r.CloverJar(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
}

// InstrumentSettings is the snapshot an InstrumentAction works from.
type InstrumentSettings struct {
	InitString          string
	LicenseFile         string
	SrcDirs             []string
	Includes            []string
	Excludes            []string
	Classpath           []string
	GroovyClasspath     []string
	SourceCompatibility string
	TargetCompatibility string
	ClassesDir          string
	ClassesBackupDir    string
	WorkDir             string
}

// InstrumentSettings resolves everything instrumentation needs, right now.
func (r *Resolver) InstrumentSettings(ctx context.Context) InstrumentSettings {
	return InstrumentSettings{
		InitString:          r.InitString(),
		LicenseFile:         r.LicenseFile(),
		SrcDirs:             r.SrcDirs(ctx),
		Includes:            r.Includes(),
		Excludes:            r.Excludes(),
		Classpath:           r.Classpath(),
		GroovyClasspath:     r.GroovyClasspath(),
		SourceCompatibility: r.SourceCompatibility(),
		TargetCompatibility: r.TargetCompatibility(),
		ClassesDir:          r.ClassesDir(),
		ClassesBackupDir:    r.ClassesBackupDir(),
		WorkDir:             filepath.Join(r.project.BuildPath(), "tmp", "clover"),
	}
}

// ReportSettings is the snapshot a ReportAction works from.
type ReportSettings struct {
	Title            string
	InitString       string
	LicenseFile      string
	ReportsDir       string
	Formats          []clover.Format
	TargetPercentage *float64
	WorkDir          string
}

func (r *Resolver) ReportSettings() ReportSettings {
	s := ReportSettings{
		Title:       r.project.Name,
		InitString:  r.InitString(),
		LicenseFile: r.LicenseFile(),
		ReportsDir:  r.ReportsDir(),
		Formats:     r.Formats(),
		WorkDir:     filepath.Join(r.project.BuildPath(), "tmp", "clover-check"),
	}
	if v, ok := r.TargetPercentage(); ok {
		s.TargetPercentage = &v
	}
	return s
}
