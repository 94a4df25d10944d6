package code_collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/morler/codeassist/app_errors"
	"github.com/morler/codeassist/code_collector/contracts"
	"github.com/morler/codeassist/code_collector/models"
	logger "github.com/morler/codeassist/logger/contracts"
	"github.com/morler/codeassist/utils"
)

// CodeCollector finds the project files that take part in a run.
type CodeCollector struct {
	Extensions  []string
	Excluded    []string
	IgnoredDirs []string
	Log         logger.ILogger
}

// NewCodeCollector initializes a new CodeCollector.
func NewCodeCollector(extensions, excluded, ignoredDirs []string, log logger.ILogger) contracts.ICodeCollector {
	return &CodeCollector{
		Extensions:  extensions,
		Excluded:    excluded,
		IgnoredDirs: ignoredDirs,
		Log:         log,
	}
}

// CollectFiles walks rootDir once per extension pattern and groups every match by its
// parent directory. Excluded names are dropped.
func (collector *CodeCollector) CollectFiles(rootDir string) (*models.FileSet, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("%w: no valid project directory configured, check [project_dir] value in config", app_errors.ErrConfiguration)
	}

	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: project directory %s: %v", app_errors.ErrConfiguration, rootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: project directory %s is not a directory", app_errors.ErrConfiguration, rootDir)
	}

	// WalkDir does not descend into a symlinked root
	walkRoot, err := filepath.EvalSymlinks(rootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: project directory %s: %v", app_errors.ErrConfiguration, rootDir, err)
	}

	collector.Log.Info("directory in config: %s", rootDir)

	result := models.NewFileSet()

	for _, pattern := range collector.Extensions {
		err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == walkRoot {
					return err
				}
				collector.Log.Warning("skipping %s: %v", path, err)
				return nil
			}

			if d.IsDir() {
				if path != walkRoot && utils.IsIgnoredDir(d.Name(), collector.IgnoredDirs) {
					return filepath.SkipDir
				}
				return nil
			}

			match, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return fmt.Errorf("%w: bad extension pattern %q", app_errors.ErrConfiguration, pattern)
			}
			if !match || utils.IsExcludedFile(d.Name(), collector.Excluded) {
				return nil
			}

			dir := filepath.Dir(path)
			if rel, err := filepath.Rel(walkRoot, dir); err == nil {
				dir = filepath.Join(rootDir, rel)
			}
			result.Add(dir, d.Name())
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if result.Len() == 0 {
		return nil, fmt.Errorf("%w: no files matching %v found in %s", app_errors.ErrNoEligibleFiles, collector.Extensions, rootDir)
	}

	collector.Log.Info("collected %d file(s) in %d director(y/ies)", result.Len(), len(result.Directories()))

	return result, nil
}
