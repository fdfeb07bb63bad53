// QS Desk is a forensic quantity surveying workspace for construction
// dispute consultants: browse the case workbook, review evidence documents,
// and build an append-only audit trail that an AI gateway can turn into a
// draft expert witness narrative.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/cmd/qsdesk/workspace"
	"qsdesk/internal/config"
	"qsdesk/internal/domain"
	"qsdesk/internal/gateway"
	"qsdesk/internal/logging"
	"qsdesk/internal/mockdata"
	"qsdesk/internal/uploads"
)

// Version metadata, set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

var (
	flagVerbose bool
	flagModel   string
)

var rootCmd = &cobra.Command{
	Use:   "qsdesk",
	Short: "Forensic quantity surveying workspace",
	Long: `QS Desk opens an interactive terminal workspace for construction
dispute work: spreadsheet forensics, an evidence locker, and an append-only
Logic Log that drafts into an expert witness narrative.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qsdesk %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "override the text-generation model")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// A .env in the working directory is a convenience for development;
	// its absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves stored preferences plus flag overrides.
func loadConfig() config.Config {
	cfg, _ := config.Load()
	if flagModel != "" {
		cfg.Model = flagModel
	}
	return cfg
}

func runTUI() error {
	cfg := loadConfig()

	// The TUI owns the terminal; log to a file under the config dir.
	dir, _ := config.Dir()
	logger := logging.NewFile(dir, flagVerbose)

	analyst := gateway.NewGemini(cfg.APIKey, mockdata.Rows(domain.SheetBudget),
		gateway.WithModel(cfg.Model),
		gateway.WithLogger(logger),
	)

	model := workspace.New(workspace.Options{
		Analyst: analyst,
		Uploads: uploads.NewStore(),
		Logger:  logger,
		Theme:   ui.ThemeByName(cfg.Theme),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()

	// Release staged evidence whichever way the program exits.
	if wm, ok := final.(workspace.Model); ok {
		wm.Shutdown()
	} else {
		model.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("run workspace: %w", err)
	}
	return nil
}
