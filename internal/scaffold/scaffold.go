package scaffold

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// CurrentDirSentinel is the project name that means "scaffold into the
// working directory" instead of creating a new subdirectory.
const CurrentDirSentinel = "."

// Options configures a single scaffold run.
type Options struct {
	// ProjectName is the directory name to create under WorkDir, or
	// CurrentDirSentinel to reuse WorkDir itself. Any string is accepted.
	ProjectName string

	// TemplateDir is the template source tree. It must exist.
	TemplateDir string

	// WorkDir is the base directory project names are resolved against.
	// Defaults to the process working directory when empty.
	WorkDir string

	// Progress receives one line per copied relative path. Defaults to
	// io.Discard when nil.
	Progress io.Writer
}

// Result holds the outcome of a scaffold run.
type Result struct {
	TargetDir string   // absolute-ish destination directory
	Files     []string // relative paths copied into TargetDir
	Skipped   []string // relative paths left untouched because they already existed
	Warnings  []string // non-fatal notes (e.g., reused an existing directory)
}

// Run copies the template tree into the resolved target directory.
//
// The target is created if missing and reused as-is if present; files already
// present at the destination are never overwritten. A missing TemplateDir is
// the one fatal precondition. Any other I/O error aborts the remaining walk
// and may leave a partially populated target behind.
func Run(opts Options) (*Result, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		workDir = cwd
	}

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	result := &Result{}

	// Resolve the target path. The sentinel reuses the working directory
	// verbatim; everything else becomes a subdirectory of it.
	if opts.ProjectName == CurrentDirSentinel {
		result.TargetDir = workDir
	} else {
		result.TargetDir = filepath.Join(workDir, opts.ProjectName)

		if info, err := os.Stat(result.TargetDir); err == nil && info.IsDir() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("directory %s already exists; adding missing files only", result.TargetDir))
		} else if err := os.MkdirAll(result.TargetDir, 0755); err != nil {
			return nil, fmt.Errorf("creating target directory %s: %w", result.TargetDir, err)
		}
	}

	// Validate the template source. There is no fallback template.
	info, err := os.Stat(opts.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("template source %s not found: %w", opts.TemplateDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template source %s is not a directory", opts.TemplateDir)
	}

	if err := copyTree(opts.TemplateDir, result.TargetDir, "", progress, result); err != nil {
		return nil, err
	}

	// The packaging channel cannot ship a leading-dot file, so templates
	// store the gitignore under a dot-free alias. Restore the intended name
	// once the copy has fully completed.
	if err := fixupGitignore(result.TargetDir); err != nil {
		return nil, err
	}

	return result, nil
}

// copyTree recursively copies src into dst. rel is the slash-separated path
// of src relative to the template root, used by the exclusion filter.
func copyTree(src, dst, rel string, progress io.Writer, result *Result) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", src, err)
	}

	for _, entry := range entries {
		childRel := path.Join(rel, entry.Name())
		if Excluded(childRel) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			// Reuse a pre-existing destination directory as-is.
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dstPath, err)
			}
			if err := copyTree(srcPath, dstPath, childRel, progress, result); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			copied, err := copyFile(srcPath, dstPath)
			if err != nil {
				return fmt.Errorf("copying %s: %w", childRel, err)
			}
			if copied {
				fmt.Fprintf(progress, "  %s\n", childRel)
				result.Files = append(result.Files, childRel)
			} else {
				result.Skipped = append(result.Skipped, childRel)
			}
		}
		// Skip symlinks and other special files.
	}

	return nil
}

// copyFile copies src to dst, preserving the source permission bits. A file
// already present at dst is left untouched; the false return marks the skip.
func copyFile(src, dst string) (bool, error) {
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return false, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		return false, err
	}
	return true, nil
}

// fixupGitignore renames a top-level "gitignore" alias to ".gitignore".
// A template without the alias makes this a silent no-op.
func fixupGitignore(targetDir string) error {
	alias := filepath.Join(targetDir, "gitignore")
	if _, err := os.Stat(alias); err != nil {
		return nil
	}
	if err := os.Rename(alias, filepath.Join(targetDir, ".gitignore")); err != nil {
		return fmt.Errorf("renaming gitignore to .gitignore: %w", err)
	}
	return nil
}
