package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lgu-tools/aip-atlas/pkg/server"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/budget"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/document"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/validation"
	"github.com/lgu-tools/aip-atlas/pkg/services/config"
	"github.com/lgu-tools/aip-atlas/pkg/services/programs"
	"github.com/lgu-tools/aip-atlas/pkg/store/blob"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb/program"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	addr         string
	dbPath       string
	settingsPath string
	statePath    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the AIP analysis web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "aip.db", "Path to the program database")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to an analyzer settings file")
	rootCmd.Flags().StringVar(&statePath, "state", blob.DefaultRoot, "Directory for persisted model state")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store, err := program.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create program store: %w", err)
	}

	settings, err := config.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	explorer := programs.NewExplorer(store)
	state := blob.NewFSStore(statePath)

	budgetModel := budget.NewAnalyzer(explorer, settings.BudgetSettings())
	validationModel := validation.NewAnalyzer(explorer, settings.ValidationSettings(), state)
	documentModel, err := document.NewAnalyzer(document.DefaultPatterns(), state)
	if err != nil {
		return fmt.Errorf("failed to build document analyzer: %w", err)
	}

	registry := analysis.NewRegistry()
	for name, model := range map[string]analysis.Versioned{
		budget.ModelName:     budgetModel,
		validation.ModelName: validationModel,
		document.ModelName:   documentModel,
	} {
		if err := registry.Register(name, model); err != nil {
			return fmt.Errorf("failed to register model %q: %w", name, err)
		}
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Budget:     budgetModel,
			Validation: validationModel,
			Document:   documentModel,
			Registry:   registry,
		},
	})

	return api.Start()
}
