package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qsdesk/cmd/qsdesk/ui"
	"qsdesk/internal/domain"
	"qsdesk/internal/gateway"
	"qsdesk/internal/logging"
	"qsdesk/internal/mockdata"
)

// askCmd is the non-interactive counterpart of the workspace's formula
// search: one query in, the matched row (or the fallback) out.
var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Resolve a free-text query against the case workbook",
	Long: `Ask where a figure was calculated, e.g.:

  qsdesk ask "Show me where we calculated Steel Waste"

The matched budget row is printed with the model's explanation. Requires
GEMINI_API_KEY (flag, env, or .env).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(strings.Join(args, " "))
	},
}

func runAsk(query string) error {
	logger, err := logging.NewCLI(flagVerbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	rows := mockdata.Rows(domain.SheetBudget)
	analyst := gateway.NewGemini(cfg.APIKey, rows,
		gateway.WithModel(cfg.Model),
		gateway.WithLogger(logger),
	)

	match := analyst.ResolveQuery(context.Background(), query)
	styles := ui.DefaultStyles()

	if !match.Found() {
		fmt.Println(styles.Warning.Render("No matching calculation logic found."))
		fmt.Println(styles.Muted.Render(match.Explanation))
		return nil
	}

	var matched domain.SpreadsheetRow
	for _, row := range rows {
		if row.ID == match.RowID {
			matched = row
			break
		}
	}

	info := mockdata.Info(domain.SheetBudget)
	table := ui.NewSimpleTable("Matched Row", []string{
		"Ref", info.ItemHeading,
		info.Columns[0].Title, info.Columns[1].Title, info.Columns[2].Title,
		"Total",
	})
	table.AddRow(
		matched.ID,
		matched.Item,
		domain.FormatAmount(matched.ContractA),
		domain.FormatAmount(matched.ContractB),
		domain.FormatAmount(matched.ContractC),
		domain.FormatAmount(matched.Total),
	)
	fmt.Println(table.View(styles))
	fmt.Println(styles.Info.Render("Explanation: ") + match.Explanation)
	if matched.FormulaDescription != "" {
		fmt.Println(styles.Muted.Render("Formula: " + matched.FormulaDescription))
	}
	return nil
}
