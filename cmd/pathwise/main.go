package main

import (
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/pathwise/pathwise/internal/api"
	"github.com/pathwise/pathwise/internal/catalog"
	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/logger"
	"github.com/pathwise/pathwise/internal/oauth"
	"github.com/pathwise/pathwise/internal/session"
	"github.com/pathwise/pathwise/internal/store"
	"github.com/pathwise/pathwise/internal/tui"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Terminal client for the pathwise learning-pathway service",
	Long: `Pathwise is a terminal client for the learning-pathway service.
It signs you in, walks you through the profile wizard and the preference
quiz, and shows recommended learning pathways with your progress.`,
	Run: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

// runTUI wires the application and runs the terminal UI
func runTUI(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		pterm.Error.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var deps tui.AppDeps
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		store.Module,
		api.Module,
		session.Module,
		catalog.Module,
		oauth.Module,
		fx.Populate(
			&deps.Session,
			&deps.Client,
			&deps.Catalog,
			&deps.Progress,
			&deps.Drafts,
			&deps.Listener,
		),
	)
	if err := app.Err(); err != nil {
		pterm.Error.Printf("Error wiring application: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.NewAppModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		pterm.Error.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
