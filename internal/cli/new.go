package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/expresskit-labs/expresskit/internal/config"
	"github.com/expresskit-labs/expresskit/internal/scaffold"
	"github.com/expresskit-labs/expresskit/internal/template"
	"github.com/spf13/cobra"
)

var newTemplateDir string

func init() {
	newCmd.Flags().StringVar(&newTemplateDir, "template-dir", "", "Use an explicit template directory instead of the bundled one")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Scaffold a new Express API project",
	Long: `Create a new Express + Mongoose + Zod project directory from the bundled template.

The name becomes a subdirectory of the current directory. Pass "." (or leave
the name out in a non-interactive shell) to scaffold into the current
directory. An existing directory is reused; files already present are never
overwritten.

Examples:
  expresskit new demo-api
  expresskit new .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	config.Load()

	name, err := projectNameFromArgs(args)
	if err != nil {
		return err
	}

	templateDir := newTemplateDir
	if templateDir == "" {
		templateDir, err = template.Resolve(template.DefaultName)
		if err != nil {
			return fmt.Errorf("resolving template directory: %w", err)
		}
	}

	// Template metadata is advisory: a missing or broken manifest never
	// blocks the scaffold.
	manifest, warnings, err := template.LoadManifest(templateDir)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("could not read template manifest: %v", err))
	}
	if w := manifest.CheckCliVersion(buildVersion); w != "" {
		warnings = append(warnings, w)
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	fmt.Println("Scaffolding project...")
	result, err := scaffold.Run(scaffold.Options{
		ProjectName: name,
		TemplateDir: templateDir,
		Progress:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", w)
	}
	if len(result.Skipped) > 0 {
		fmt.Printf("Skipped %d existing file(s).\n", len(result.Skipped))
	}

	fmt.Printf("\nCreated project at %s (%d files)\n", result.TargetDir, len(result.Files))
	fmt.Println("\nNext steps:")
	if name != scaffold.CurrentDirSentinel {
		fmt.Printf("  1. cd %s\n", name)
		fmt.Println("  2. npm install")
		fmt.Println("  3. cp .env.example .env, then npm run dev")
	} else {
		fmt.Println("  1. npm install")
		fmt.Println("  2. cp .env.example .env, then npm run dev")
	}
	return nil
}

// projectNameFromArgs returns the requested project name. With no argument it
// prompts on a terminal, and otherwise defaults to the current directory.
// Any non-empty string is accepted — the target is simply joined onto the
// working directory.
func projectNameFromArgs(args []string) (string, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return "", fmt.Errorf("project name must not be empty")
		}
		return args[0], nil
	}

	if !isTerminal(os.Stdin) {
		return scaffold.CurrentDirSentinel, nil
	}

	fmt.Printf("Project name [%s]: ", scaffold.CurrentDirSentinel)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading project name: %w", err)
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return scaffold.CurrentDirSentinel, nil
	}
	return name, nil
}

// isTerminal checks if the given file is a terminal (for auto-detecting
// interactive mode).
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
