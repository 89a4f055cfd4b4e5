package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/renokit/reno/models"
)

// DiscoveredSelection is a staged selection file found on disk.
type DiscoveredSelection struct {
	Path        string
	DisplayName string
	File        models.SelectionFile
}

// FormatSelectionPath shortens a selection path for display, relative to
// the current directory or the configured selections directory.
func FormatSelectionPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Check if it's in the current directory
	cwd, err := os.Getwd()
	if err == nil {
		absCwd, err := filepath.Abs(cwd)
		if err == nil {
			if strings.HasPrefix(absPath, absCwd) {
				rel, err := filepath.Rel(absCwd, absPath)
				if err == nil && !strings.HasPrefix(rel, "..") {
					return "./" + rel
				}
			}
		}
	}

	// Check if it's in the global selections directory
	if Cfg != nil && Cfg.SelectionsDir != "" {
		absSelDir, err := filepath.Abs(Cfg.SelectionsDir)
		if err == nil {
			if strings.HasPrefix(absPath, absSelDir) {
				rel, err := filepath.Rel(absSelDir, absPath)
				if err == nil && !strings.HasPrefix(rel, "..") {
					return "<selections>/" + rel
				}
			}
		}
	}

	return absPath
}

// discoverSelections scans the working directory and the configured
// selections directory for staged selection files.
func discoverSelections() ([]DiscoveredSelection, error) {
	var selections []DiscoveredSelection
	fileMap := make(map[string]bool)

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to get current working directory: %v\n", err)
	}
	if Cfg != nil && Cfg.SelectionsDir != "" {
		absSelDir, err := filepath.Abs(Cfg.SelectionsDir)
		if err == nil {
			dirs = append(dirs, absSelDir)
		} else {
			dirs = append(dirs, Cfg.SelectionsDir)
		}
	}

	for _, dir := range dirs {
		// Evaluate symlinks for the root directory
		evalDir, err := filepath.EvalSymlinks(dir)
		if err == nil {
			dir = evalDir
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // skip errors for a single directory
		}

		for _, d := range entries {
			if d.IsDir() {
				continue
			}

			path := filepath.Join(dir, d.Name())
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				absPath = path
			}
			if fileMap[absPath] {
				continue
			}
			fileMap[absPath] = true

			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var file models.SelectionFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				// Not every yaml file in scope is a selection; skip quietly.
				continue
			}
			if file.PhaseID > 0 {
				selections = append(selections, DiscoveredSelection{
					Path:        absPath,
					DisplayName: FormatSelectionPath(absPath),
					File:        file,
				})
			}
		}
	}
	return selections, nil
}

// selectionPathForPhase is where pick writes a phase's staged selection:
// the selections dir when configured, the working directory otherwise.
func selectionPathForPhase(phaseID int, phaseName string) string {
	name := fmt.Sprintf("%s.selection.yaml", ToFileSlug(phaseName))
	if name == ".selection.yaml" {
		name = fmt.Sprintf("phase-%d.selection.yaml", phaseID)
	}
	if Cfg != nil && Cfg.SelectionsDir != "" {
		return filepath.Join(Cfg.SelectionsDir, name)
	}
	return name
}

// loadSelectionFile reads a staged selection from disk.
func loadSelectionFile(path string) (models.SelectionFile, error) {
	var file models.SelectionFile
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("failed to read selection file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse selection file %s: %w", path, err)
	}
	if file.PhaseID <= 0 {
		return file, fmt.Errorf("%s is not a selection file (missing phase_id)", path)
	}
	return file, nil
}

// saveSelectionFile writes the staged selection, creating the selections
// directory if needed.
func saveSelectionFile(path string, file models.SelectionFile) error {
	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create selections dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write selection file: %w", err)
	}
	return nil
}
