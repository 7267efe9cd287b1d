package program

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lgu-tools/aip-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	programCols   = []string{"id", "title", "status", "total_amount", "fiscal_year", "start_date", "end_date"}
	projectCols   = []string{"id", "program_id", "name", "sector", "total_cost", "progress", "start_date", "end_date"}
	expenseCols   = []string{"id", "project_id", "amount", "date", "description"}
	milestoneCols = []string{"id", "project_id", "name", "status", "due_date", "completed_at"}
)

func TestStore_Get_AssemblesGraph(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, title, status, total_amount, fiscal_year, start_date, end_date\s+FROM programs WHERE id = \?`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(programCols).
			AddRow("p1", "Annual Investment Program 2025", "ACTIVE", 100000.0, 2025, start, end))

	mock.ExpectQuery(`FROM projects WHERE program_id = \? ORDER BY id`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("pr1", "p1", "Road Repair", "Infrastructure", 60000.0, 40.0, start, end).
			AddRow("pr2", "p1", "Feeding Program", nil, 30000.0, 10.0, start, end))

	mock.ExpectQuery(`FROM expenses WHERE project_id = \? ORDER BY id`).
		WithArgs("pr1").
		WillReturnRows(sqlmock.NewRows(expenseCols).
			AddRow("e1", "pr1", 15000.0, start, "Gravel and sand"))
	mock.ExpectQuery(`FROM milestones WHERE project_id = \? ORDER BY id`).
		WithArgs("pr1").
		WillReturnRows(sqlmock.NewRows(milestoneCols).
			AddRow("m1", "pr1", "Groundbreaking", nil, start, nil))

	mock.ExpectQuery(`FROM expenses WHERE project_id = \? ORDER BY id`).
		WithArgs("pr2").
		WillReturnRows(sqlmock.NewRows(expenseCols))
	mock.ExpectQuery(`FROM milestones WHERE project_id = \? ORDER BY id`).
		WithArgs("pr2").
		WillReturnRows(sqlmock.NewRows(milestoneCols))

	s, err := NewStore(db)
	require.NoError(t, err)

	graph, err := s.Get(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "Annual Investment Program 2025", graph.Program.Title)
	assert.Equal(t, 2025, graph.Program.FiscalYear)
	require.Len(t, graph.Projects, 2)
	assert.Equal(t, "Infrastructure", graph.Projects[0].Sector)
	assert.Equal(t, "", graph.Projects[1].Sector, "NULL sector reads as empty")
	require.Len(t, graph.Expenses, 1)
	assert.Equal(t, "Gravel and sand", graph.Expenses[0].Description)
	require.Len(t, graph.Milestones, 1)
	assert.Equal(t, "", graph.Milestones[0].Status)
	assert.Nil(t, graph.Milestones[0].CompletedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM programs WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(programCols))

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListCompleted_FiltersAndOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE status = 'COMPLETED' AND fiscal_year < \?\s+ORDER BY fiscal_year DESC\s+LIMIT \?`).
		WithArgs(2025, 3).
		WillReturnRows(sqlmock.NewRows(programCols).
			AddRow("p2024", "AIP 2024", "COMPLETED", 90000.0, 2024, nil, nil).
			AddRow("p2023", "AIP 2023", "COMPLETED", 80000.0, 2023, nil, nil))

	for _, id := range []string{"p2024", "p2023"} {
		mock.ExpectQuery(`FROM projects WHERE program_id = \? ORDER BY id`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(projectCols))
	}

	s, err := NewStore(db)
	require.NoError(t, err)

	graphs, err := s.ListCompleted(context.Background(), 2025, 3)
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, "p2024", graphs[0].Program.ID)
	assert.Equal(t, "p2023", graphs[1].Program.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Add_InsertsWholeGraph(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	due := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO programs`).
		WithArgs("p1", "AIP 2025", "ACTIVE", 100000.0, 2025, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO projects`).
		WithArgs("pr1", "p1", "Road Repair", "Infrastructure", 60000.0, 0.0, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("e1", "pr1", 15000.0, nil, "Gravel and sand").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO milestones`).
		WithArgs("m1", "pr1", "Groundbreaking", "PENDING", due, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), store.ProgramGraph{
		Program: store.ProgramRecord{ID: "p1", Title: "AIP 2025", Status: "ACTIVE", TotalAmount: 100000, FiscalYear: 2025},
		Projects: []store.ProjectRecord{
			{ID: "pr1", ProgramID: "p1", Name: "Road Repair", Sector: "Infrastructure", TotalCost: 60000},
		},
		Expenses: []store.ExpenseRecord{
			{ID: "e1", ProjectID: "pr1", Amount: 15000, Description: "Gravel and sand"},
		},
		Milestones: []store.MilestoneRecord{
			{ID: "m1", ProjectID: "pr1", Name: "Groundbreaking", Status: "PENDING", DueDate: &due},
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_RequiresDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
