package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dexhamter/tabload/internal/scaffold"
	"github.com/dexhamter/tabload/internal/tui"
	"github.com/dexhamter/tabload/internal/tui/wizards"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Initialize a new tabload project",
	Long: `Initialize a tabload project in the specified directory (default: current
directory).

The init command creates:
- tabload.yaml with connection and import defaults
- .env.example documenting the supported environment variables
- example.csv sample data to try the tool with
- README with usage instructions

When run in an interactive terminal, init offers a connection wizard that
tests the database connection and writes it into tabload.yaml. In
non-interactive environments (CI, piped input) the wizard is skipped and the
generated tabload.yaml contains placeholder values.

Target directory must be empty or non-existent.

Examples:
  tabload init                   # Initialize in current directory
  tabload init ./myproject       # Initialize in ./myproject
  tabload init --no-wizard .     # Skip the connection wizard`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

var initNoWizard bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initNoWizard, "no-wizard", false,
		"Skip the interactive connection wizard")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := "."
	if len(args) > 0 {
		targetPath = args[0]
	}

	// Determine project name from target path
	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}
	verbose := getVerboseFlag(cmd)

	scaffolder := scaffold.NewScaffolder(verbose)
	if err := scaffolder.CreateProject(projectName, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	progress := tui.NewProgressDisplay()

	// Display file tree
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		// Non-fatal - just skip tree display
		progress.Success(fmt.Sprintf("Project initialized successfully in '%s'", targetPath))
	} else {
		progress.Success("Project initialized successfully")
		fmt.Fprintln(os.Stderr, "\nCreated structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	if shouldRunConnectionWizard() {
		if err := runConnectionSetup(targetPath); err != nil {
			return err
		}
	}

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  tabload analyze example.csv -t example")
	fmt.Fprintln(os.Stderr, "  tabload import example.csv -t example")

	return nil
}

// shouldRunConnectionWizard decides whether the interactive connection wizard
// applies: never with --no-wizard, never without a terminal, and not when the
// environment already supplies a connection.
func shouldRunConnectionWizard() bool {
	if initNoWizard {
		return false
	}
	if !tui.IsInteractive() {
		return false
	}
	return !hasEnvConnectionSource()
}

// runConnectionSetup runs the connection wizard and persists the result into
// the freshly scaffolded tabload.yaml.
func runConnectionSetup(targetPath string) error {
	result, err := wizards.RunConnectionWizard()
	if err != nil {
		return fmt.Errorf("connection wizard failed: %w", err)
	}
	if result.Cancelled {
		fmt.Fprintln(os.Stderr, "\nConnection setup skipped. Edit tabload.yaml to configure the database.")
		return nil
	}

	if err := saveConnectionToConfig(targetPath, &result.Config); err != nil {
		return fmt.Errorf("failed to save connection to tabload.yaml: %w", err)
	}
	tui.NewProgressDisplay().Success("Connection saved to tabload.yaml")

	offerSavePgpass(&result.Config)
	return nil
}
