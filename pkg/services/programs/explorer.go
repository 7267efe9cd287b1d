// Package programs exposes read access to investment program snapshots.
// Analyzers depend on the Explorer interface only; the DuckDB-backed
// implementation lives in pkg/store/duckdb/program.
package programs

import (
	"context"

	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
)

// Explorer supplies point-in-time program snapshots. GetProgram returns
// *domain.NotFoundError for unknown ids; store failures surface as
// *domain.UpstreamError.
type Explorer interface {
	GetProgram(ctx context.Context, id string) (*domain.InvestmentProgram, error)
	// ListCompletedPrograms returns up to limit completed programs with a
	// fiscal year strictly before beforeYear, most recent first.
	ListCompletedPrograms(ctx context.Context, beforeYear int, limit int) ([]domain.InvestmentProgram, error)
}
