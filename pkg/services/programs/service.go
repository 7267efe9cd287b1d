package programs

import (
	"context"
	"errors"

	"github.com/lgu-tools/aip-atlas/pkg/adapters"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb/program"
)

type explorer struct {
	store program.Store
}

// NewExplorer wraps a program store in the Explorer contract, translating
// store errors into the domain taxonomy.
func NewExplorer(store program.Store) Explorer {
	return &explorer{store: store}
}

func (e *explorer) GetProgram(ctx context.Context, id string) (*domain.InvestmentProgram, error) {
	graph, err := e.store.Get(ctx, id)
	if errors.Is(err, program.ErrNotFound) {
		return nil, &domain.NotFoundError{Kind: "program", ID: id}
	}
	if err != nil {
		return nil, &domain.UpstreamError{Op: "get program", Err: err}
	}

	snapshot := adapters.MapProgramGraphStoreToDomain(*graph)
	return &snapshot, nil
}

func (e *explorer) ListCompletedPrograms(ctx context.Context, beforeYear, limit int) ([]domain.InvestmentProgram, error) {
	graphs, err := e.store.ListCompleted(ctx, beforeYear, limit)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "list completed programs", Err: err}
	}

	snapshots := make([]domain.InvestmentProgram, 0, len(graphs))
	for _, g := range graphs {
		snapshots = append(snapshots, adapters.MapProgramGraphStoreToDomain(g))
	}
	return snapshots, nil
}
