// Package program persists and reads investment program graphs in DuckDB.
package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lgu-tools/aip-atlas/pkg/models/store"
	"github.com/lgu-tools/aip-atlas/pkg/store/duckdb"
)

// ErrNotFound signals an unknown program id. Callers above the store layer
// translate it into their own error taxonomy.
var ErrNotFound = errors.New("program not found")

type Store interface {
	Add(ctx context.Context, graph store.ProgramGraph) error
	Get(ctx context.Context, id string) (*store.ProgramGraph, error)
	// ListCompleted returns up to limit completed programs with fiscal_year
	// strictly before beforeYear, most recent first.
	ListCompleted(ctx context.Context, beforeYear, limit int) ([]store.ProgramGraph, error)
}

type programStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &programStore{db: db}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *programStore) Add(ctx context.Context, graph store.ProgramGraph) error {
	var ex execer = s.db
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		ex = tx
	}

	p := graph.Program
	_, err := ex.ExecContext(ctx, `
		INSERT INTO programs (id, title, status, total_amount, fiscal_year, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Status, p.TotalAmount, p.FiscalYear, p.StartDate, p.EndDate)
	if err != nil {
		return fmt.Errorf("insert program %q: %w", p.ID, err)
	}

	for _, pr := range graph.Projects {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO projects (id, program_id, name, sector, total_cost, progress, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pr.ID, pr.ProgramID, pr.Name, pr.Sector, pr.TotalCost, pr.Progress, pr.StartDate, pr.EndDate)
		if err != nil {
			return fmt.Errorf("insert project %q: %w", pr.ID, err)
		}
	}

	for _, e := range graph.Expenses {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO expenses (id, project_id, amount, date, description)
			VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.ProjectID, e.Amount, e.Date, e.Description)
		if err != nil {
			return fmt.Errorf("insert expense %q: %w", e.ID, err)
		}
	}

	for _, m := range graph.Milestones {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO milestones (id, project_id, name, status, due_date, completed_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, m.ProjectID, m.Name, m.Status, m.DueDate, m.CompletedAt)
		if err != nil {
			return fmt.Errorf("insert milestone %q: %w", m.ID, err)
		}
	}

	return nil
}

func (s *programStore) Get(ctx context.Context, id string) (*store.ProgramGraph, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, status, total_amount, fiscal_year, start_date, end_date
		FROM programs WHERE id = ?`, id)

	var p store.ProgramRecord
	err := row.Scan(&p.ID, &p.Title, &p.Status, &p.TotalAmount, &p.FiscalYear, &p.StartDate, &p.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select program %q: %w", id, err)
	}

	graph := store.ProgramGraph{Program: p}
	if err := s.loadChildren(ctx, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

func (s *programStore) ListCompleted(ctx context.Context, beforeYear, limit int) ([]store.ProgramGraph, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, total_amount, fiscal_year, start_date, end_date
		FROM programs
		WHERE status = 'COMPLETED' AND fiscal_year < ?
		ORDER BY fiscal_year DESC
		LIMIT ?`, beforeYear, limit)
	if err != nil {
		return nil, fmt.Errorf("select completed programs: %w", err)
	}
	defer rows.Close()

	var graphs []store.ProgramGraph
	for rows.Next() {
		var p store.ProgramRecord
		err := rows.Scan(&p.ID, &p.Title, &p.Status, &p.TotalAmount, &p.FiscalYear, &p.StartDate, &p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("scan program row: %w", err)
		}
		graphs = append(graphs, store.ProgramGraph{Program: p})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate program rows: %w", err)
	}

	for i := range graphs {
		if err := s.loadChildren(ctx, &graphs[i]); err != nil {
			return nil, err
		}
	}
	return graphs, nil
}

func (s *programStore) loadChildren(ctx context.Context, graph *store.ProgramGraph) error {
	programID := graph.Program.ID

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program_id, name, sector, total_cost, progress, start_date, end_date
		FROM projects WHERE program_id = ? ORDER BY id`, programID)
	if err != nil {
		return fmt.Errorf("select projects of %q: %w", programID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var pr store.ProjectRecord
		var sector sql.NullString
		err := rows.Scan(&pr.ID, &pr.ProgramID, &pr.Name, &sector, &pr.TotalCost, &pr.Progress, &pr.StartDate, &pr.EndDate)
		if err != nil {
			return fmt.Errorf("scan project row: %w", err)
		}
		pr.Sector = sector.String
		graph.Projects = append(graph.Projects, pr)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate project rows: %w", err)
	}

	for _, pr := range graph.Projects {
		expenses, err := s.loadExpenses(ctx, pr.ID)
		if err != nil {
			return err
		}
		graph.Expenses = append(graph.Expenses, expenses...)

		milestones, err := s.loadMilestones(ctx, pr.ID)
		if err != nil {
			return err
		}
		graph.Milestones = append(graph.Milestones, milestones...)
	}
	return nil
}

func (s *programStore) loadExpenses(ctx context.Context, projectID string) ([]store.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, amount, date, description
		FROM expenses WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("select expenses of %q: %w", projectID, err)
	}
	defer rows.Close()

	var expenses []store.ExpenseRecord
	for rows.Next() {
		var e store.ExpenseRecord
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Amount, &e.Date, &description); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.Description = description.String
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *programStore) loadMilestones(ctx context.Context, projectID string) ([]store.MilestoneRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, name, status, due_date, completed_at
		FROM milestones WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("select milestones of %q: %w", projectID, err)
	}
	defer rows.Close()

	var milestones []store.MilestoneRecord
	for rows.Next() {
		var m store.MilestoneRecord
		var status sql.NullString
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &status, &m.DueDate, &m.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan milestone row: %w", err)
		}
		m.Status = status.String
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}
