package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templatesFS embed.FS

// starterTemplate is the embedded project skeleton written by CreateProject.
const starterTemplate = "templates/starter"

// Scaffolder writes the starter project skeleton into a target directory,
// substituting the project name into template files.
type Scaffolder struct {
	verbose bool
}

func NewScaffolder(verbose bool) *Scaffolder {
	return &Scaffolder{verbose: verbose}
}

// CreateProject materializes the starter template at targetPath. The target
// must be empty or absent; existing files are never overwritten.
func (s *Scaffolder) CreateProject(projectName, targetPath string) error {
	if err := ensureEmptyTarget(targetPath); err != nil {
		return err
	}
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	s.logVerbose("Creating project '%s' at %s", projectName, targetPath)

	if err := s.writeTemplateTree(starterTemplate, targetPath, projectName); err != nil {
		return fmt.Errorf("failed to copy template files: %w", err)
	}

	s.logVerbose("Project created successfully")
	return nil
}

// writeTemplateTree walks the embedded template and mirrors it under
// targetPath, running each file through placeholder substitution.
func (s *Scaffolder) writeTemplateTree(templatePath, targetPath, projectName string) error {
	return fs.WalkDir(templatesFS, templatePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templatePath {
			return nil
		}

		relPath, err := filepath.Rel(templatePath, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(targetPath, relPath)

		if d.IsDir() {
			s.logVerbose("Creating directory: %s", relPath)
			return os.MkdirAll(dest, 0755)
		}

		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}
		rendered := strings.ReplaceAll(string(content), "{{PROJECT_NAME}}", projectName)

		s.logVerbose("Creating file: %s", relPath)
		if err := os.WriteFile(dest, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", dest, err)
		}
		return nil
	})
}

func (s *Scaffolder) logVerbose(format string, args ...interface{}) {
	if s.verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] "+format+"\n", args...)
	}
}

// ensureEmptyTarget errors unless targetPath is absent, or is an empty
// directory.
func ensureEmptyTarget(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("target directory '%s' is not empty\n\n"+
			"tabload init requires an empty directory to avoid overwriting existing files.\n\n"+
			"Options:\n"+
			"• Choose a different location\n"+
			"• Remove existing files manually\n"+
			"• Use a new directory name", path)
	}
	return nil
}

// BuildFileTree renders the directory under rootPath as an ASCII tree for
// the init summary.
func BuildFileTree(rootPath string) (string, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}

	var sb strings.Builder
	sb.WriteString(absPath + "/\n")
	if err := writeTreeLevel(&sb, rootPath, ""); err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}
	return sb.String(), nil
}

func writeTreeLevel(sb *strings.Builder, dir, prefix string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(entries)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		sb.WriteString(prefix + branch + name + "\n")

		if entry.IsDir() {
			if err := writeTreeLevel(sb, filepath.Join(dir, entry.Name()), childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
