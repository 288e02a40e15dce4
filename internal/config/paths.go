package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for the files and directories the
// pipeline touches.
type Paths struct {
	InputFile  string
	ReportFile string
	ChartsDir  string
	ReportsDir string
}

// NewPaths resolves the configured paths into a Paths value. Relative
// paths stay relative to the working directory; this is a batch tool run
// where the user invokes it.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		InputFile:  cfg.InputFile,
		ReportFile: cfg.ReportFile,
		ChartsDir:  cfg.ChartsDir,
		ReportsDir: cfg.ReportsDir,
	}
}

// EnsureDirectories creates every output directory the pipeline writes to.
// The input file's directory is left alone; its absence is the loader's
// error to report.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ChartsDir,
		p.ReportsDir,
		filepath.Dir(p.ReportFile),
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
