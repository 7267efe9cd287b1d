package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lgu-tools/aip-atlas/pkg/adapters"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb/program"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	dbPath   string
	filePath string
}

// NewSeedCmd imports a program snapshot from a JSON file so the analysis
// commands have something to work on.
func NewSeedCmd() *cobra.Command {
	sc := &SeedCmd{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a program snapshot from a JSON file into the database",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.dbPath, "db", "aip.db", "Path to the program database")
	cmd.Flags().StringVar(&sc.filePath, "file", "", "Path to the program JSON file")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	data, err := os.ReadFile(sc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read program file %q: %w", sc.filePath, err)
	}

	var snapshot domain.InvestmentProgram
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse program file %q: %w", sc.filePath, err)
	}
	if snapshot.ID == "" {
		return fmt.Errorf("program file %q has no program id", sc.filePath)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: sc.dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", sc.dbPath, err)
	}
	defer db.Close()

	store, err := program.NewStore(db)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := store.Add(duckdb.WithTransaction(ctx, tx), adapters.MapProgramDomainToStore(snapshot)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit program %q: %w", snapshot.ID, err)
	}

	cmd.Printf("Loaded program %q (%d projects)\n", snapshot.ID, len(snapshot.Projects))
	return nil
}
