package hcl

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/clovergrid/internal/config"
	"github.com/specialistvlad/clovergrid/internal/schema"
)

// translateProject converts the HCL-specific project schema into the agnostic model.
func translateProject(s *schema.Project, rootDir string) *config.Project {
	p := &config.Project{
		Name:                s.Name,
		RootDir:             rootDir,
		BuildDir:            s.BuildDir,
		Plugins:             s.Plugins,
		SourceCompatibility: s.SourceCompatibility,
		TargetCompatibility: s.TargetCompatibility,
		Classpath:           s.Classpath,
		GroovyClasspath:     s.GroovyClasspath,
	}
	for _, ss := range s.SourceSets {
		p.SourceSets = append(p.SourceSets, &config.SourceSet{
			Name:       ss.Name,
			JavaDirs:   ss.JavaDirs,
			GroovyDirs: ss.GroovyDirs,
			ClassesDir: ss.ClassesDir,
		})
	}
	return p
}

// translateTask converts the HCL-specific task schema into the agnostic model.
func translateTask(s *schema.Task) (*config.Task, error) {
	args, err := extractBodyAttributes(s.Arguments)
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", s.Name, err)
	}
	return &config.Task{
		Type:        s.Type,
		Name:        s.Name,
		Description: s.Description,
		DependsOn:   s.DependsOn,
		Arguments:   args,
	}, nil
}

// translateClover converts the clover block, resolving its paths against rootDir.
func translateClover(s *schema.Clover, rootDir string) *config.Clover {
	return &config.Clover{
		LicenseFile:      absPath(s.LicenseFile, rootDir),
		ClassesBackupDir: absPath(s.ClassesBackupDir, rootDir),
		InitString:       absPath(s.InitString, rootDir),
		ReportsDir:       absPath(s.ReportsDir, rootDir),
		CloverJar:        absPath(s.CloverJar, rootDir),
		Includes:         s.Includes,
		Excludes:         s.Excludes,
		TargetPercentage: s.TargetPercentage,
		XML:              s.XML,
		JSON:             s.JSON,
		HTML:             s.HTML,
		PDF:              s.PDF,
	}
}

func absPath(p *string, rootDir string) *string {
	if p == nil {
		return nil
	}
	if filepath.IsAbs(*p) {
		clean := filepath.Clean(*p)
		return &clean
	}
	joined := filepath.Join(rootDir, *p)
	return &joined
}

func extractBodyAttributes(args *schema.Arguments) (map[string]hcl.Expression, error) {
	if args == nil || args.Body == nil {
		return nil, nil
	}
	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
