package coverage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/fsutil"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// instrumentation tracks what one build invocation did to the classes
// directory so it can be put back exactly once.
type instrumentation struct {
	mu         sync.Mutex
	done       bool
	backedUp   bool
	restored   bool
	failed     error
	classesDir string
	backupDir  string
}

// InstrumentAction backs up the main classes, instruments the sources and
// recompiles them into the classes directory. It is prepended to test tasks.
// Every test task in a run shares one instrumentation; only the first
// execution does the work. Once it has failed, every later execution fails
// with the same error.
type InstrumentAction struct {
	resolver *Resolver
	tool     clover.Tool
	state    *instrumentation
}

// ActionName implements task.Named.
func (a *InstrumentAction) ActionName() string {
	return "cloverInstrument"
}

// Execute implements task.Action.
func (a *InstrumentAction) Execute(ctx context.Context, _ *task.Task) error {
	logger := ctxlog.FromContext(ctx)

	a.state.mu.Lock()
	defer a.state.mu.Unlock()
	if a.state.failed != nil {
		return a.state.failed
	}
	if a.state.done {
		logger.Debug("Sources already instrumented for this run.")
		return nil
	}

	s := a.resolver.InstrumentSettings(ctx)
	backedUp, err := fsutil.ReplaceDir(s.ClassesDir, s.ClassesBackupDir)
	if err != nil {
		a.state.failed = fmt.Errorf("backing up classes: %w", err)
		return a.state.failed
	}
	a.state.backedUp = backedUp
	a.state.classesDir = s.ClassesDir
	a.state.backupDir = s.ClassesBackupDir
	// From here on the classes dir belongs to us, even if instrumenting fails.
	a.state.done = true

	logger.Info("Instrumenting sources with Clover.", "src_dirs", s.SrcDirs, "init_string", s.InitString)
	err = a.tool.Instrument(ctx, clover.InstrumentRequest{
		InitString:          s.InitString,
		LicenseFile:         s.LicenseFile,
		SrcDirs:             s.SrcDirs,
		Includes:            s.Includes,
		Excludes:            s.Excludes,
		Classpath:           s.Classpath,
		GroovyClasspath:     s.GroovyClasspath,
		SourceCompatibility: s.SourceCompatibility,
		TargetCompatibility: s.TargetCompatibility,
		ClassesDir:          s.ClassesDir,
		WorkDir:             s.WorkDir,
	})
	if err != nil {
		a.state.failed = fmt.Errorf("instrumenting: %w", err)
		return a.state.failed
	}
	return nil
}

// restore puts the original classes back. Without a backup, the classes dir
// did not exist before instrumentation and is removed.
func (s *instrumentation) restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done || s.restored {
		return nil
	}
	s.restored = true

	if !s.backedUp {
		if err := os.RemoveAll(s.classesDir); err != nil {
			return fmt.Errorf("removing instrumented classes: %w", err)
		}
		return nil
	}
	if _, err := fsutil.ReplaceDir(s.backupDir, s.classesDir); err != nil {
		return fmt.Errorf("restoring classes: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Restored original classes.", "dir", s.classesDir)
	return nil
}

// ReportAction is the body of the cloverReport task.
type ReportAction struct {
	resolver *Resolver
	tool     clover.Tool
	state    *instrumentation
}

func (a *ReportAction) ActionName() string {
	return "cloverReport"
}

// Execute writes one report per enabled format, checks the coverage target
// if one is set and restores the original classes.
func (a *ReportAction) Execute(ctx context.Context, _ *task.Task) error {
	logger := ctxlog.FromContext(ctx)
	s := a.resolver.ReportSettings()

	for _, format := range s.Formats {
		logger.Info("Generating Clover report.", "format", format, "dir", s.ReportsDir)
		err := a.tool.Report(ctx, clover.ReportRequest{
			InitString:  s.InitString,
			LicenseFile: s.LicenseFile,
			OutputDir:   s.ReportsDir,
			Format:      format,
			Title:       s.Title,
		})
		if err != nil {
			return fmt.Errorf("%s report: %w", format, err)
		}
	}

	if s.TargetPercentage != nil {
		err := a.tool.Check(ctx, clover.CheckRequest{
			InitString:       s.InitString,
			LicenseFile:      s.LicenseFile,
			TargetPercentage: *s.TargetPercentage,
			WorkDir:          s.WorkDir,
		})
		if err != nil {
			return err
		}
	}

	return a.state.restore(ctx)
}
