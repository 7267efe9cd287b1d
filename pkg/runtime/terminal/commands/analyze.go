package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lgu-tools/aip-atlas/pkg/adapters"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/runtime/terminal/export"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/budget"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/document"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/validation"
	"github.com/lgu-tools/aip-atlas/pkg/services/config"
	"github.com/lgu-tools/aip-atlas/pkg/services/programs"
	"github.com/lgu-tools/aip-atlas/pkg/store/blob"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb/program"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

// Env bundles what every analysis command needs once flags are parsed.
type Env struct {
	Explorer programs.Explorer
	Settings *config.Config
	State    blob.Store
	Close    func() error
}

func newEnv(dbPath, settingsPath, statePath string) (*Env, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", dbPath, err)
	}

	store, err := program.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	settings, err := config.Load(settingsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Env{
		Explorer: programs.NewExplorer(store),
		Settings: settings,
		State:    blob.NewFSStore(statePath),
		Close:    db.Close,
	}, nil
}

type BudgetCmd struct {
	dbPath       string
	settingsPath string
	programID    string
	fiscalYear   int
	reporter     *export.Reporter
}

func NewBudgetCmd(reporter *export.Reporter) *cobra.Command {
	bc := &BudgetCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Recommend a sector budget split for a program",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.dbPath, "db", "aip.db", "Path to the program database")
	cmd.Flags().StringVar(&bc.settingsPath, "settings", "", "Path to an analyzer settings file")
	cmd.Flags().StringVar(&bc.programID, "program", "", "Program id to analyze")
	cmd.Flags().IntVar(&bc.fiscalYear, "fiscal-year", 0, "Pivot fiscal year for historical selection")

	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func (bc *BudgetCmd) run(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	env, err := newEnv(bc.dbPath, bc.settingsPath, "")
	if err != nil {
		return err
	}
	defer env.Close()

	analyzer := budget.NewAnalyzer(env.Explorer, env.Settings.BudgetSettings())
	report, err := analyzer.Predict(ctx, budget.Input{ProgramID: bc.programID, FiscalYear: bc.fiscalYear})
	if err != nil {
		return err
	}
	return bc.reporter.HandleBudget(adapters.MapBudgetReportDomainToApi(report))
}

type ValidateCmd struct {
	dbPath       string
	settingsPath string
	programID    string
	reporter     *export.Reporter
}

func NewValidateCmd(reporter *export.Reporter) *cobra.Command {
	vc := &ValidateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report data quality issues across a program's entity graph",
		RunE:  vc.run,
	}

	cmd.Flags().StringVar(&vc.dbPath, "db", "aip.db", "Path to the program database")
	cmd.Flags().StringVar(&vc.settingsPath, "settings", "", "Path to an analyzer settings file")
	cmd.Flags().StringVar(&vc.programID, "program", "", "Program id to validate")

	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func (vc *ValidateCmd) run(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	env, err := newEnv(vc.dbPath, vc.settingsPath, "")
	if err != nil {
		return err
	}
	defer env.Close()

	analyzer := validation.NewAnalyzer(env.Explorer, env.Settings.ValidationSettings(), env.State)
	report, err := analyzer.Predict(ctx, validation.Input{ProgramID: vc.programID})
	if err != nil {
		return err
	}
	return vc.reporter.HandleValidation(adapters.MapValidationReportDomainToApi(report))
}

type DocumentCmd struct {
	documentID string
	filePath   string
	projectID  string
	statePath  string
	reporter   *export.Reporter
}

func NewDocumentCmd(reporter *export.Reporter) *cobra.Command {
	dc := &DocumentCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Classify and extract information from a document file",
		RunE:  dc.run,
	}

	cmd.Flags().StringVar(&dc.documentID, "id", "", "Document id")
	cmd.Flags().StringVar(&dc.filePath, "file", "", "Path to the document text file")
	cmd.Flags().StringVar(&dc.projectID, "project", "", "Related project id")
	cmd.Flags().StringVar(&dc.statePath, "state", "", "Directory for persisted model state")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (dc *DocumentCmd) run(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	content, err := os.ReadFile(dc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read document %q: %w", dc.filePath, err)
	}

	analyzer, err := document.NewAnalyzer(document.DefaultPatterns(), blob.NewFSStore(dc.statePath))
	if err != nil {
		return err
	}

	report, err := analyzer.Predict(ctx, domain.DocumentInput{
		ID:        dc.documentID,
		Content:   string(content),
		ProjectID: dc.projectID,
	})
	if err != nil {
		return err
	}
	return dc.reporter.HandleDocument(adapters.MapDocumentReportDomainToApi(report))
}
