package adapters

import (
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/models/store"
)

// MapProgramGraphStoreToDomain assembles a domain snapshot from flat store
// records, attaching expenses and milestones to their projects.
func MapProgramGraphStoreToDomain(graph store.ProgramGraph) domain.InvestmentProgram {
	program := domain.InvestmentProgram{
		ID:          graph.Program.ID,
		Title:       graph.Program.Title,
		Status:      domain.ProgramStatus(graph.Program.Status),
		TotalAmount: graph.Program.TotalAmount,
		FiscalYear:  graph.Program.FiscalYear,
		StartDate:   graph.Program.StartDate,
		EndDate:     graph.Program.EndDate,
	}

	expensesByProject := make(map[string][]domain.Expense)
	for _, e := range graph.Expenses {
		expensesByProject[e.ProjectID] = append(expensesByProject[e.ProjectID], domain.Expense{
			ID:          e.ID,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: e.Description,
		})
	}

	milestonesByProject := make(map[string][]domain.Milestone)
	for _, m := range graph.Milestones {
		milestonesByProject[m.ProjectID] = append(milestonesByProject[m.ProjectID], domain.Milestone{
			ID:          m.ID,
			Name:        m.Name,
			Status:      m.Status,
			DueDate:     m.DueDate,
			CompletedAt: m.CompletedAt,
		})
	}

	for _, p := range graph.Projects {
		program.Projects = append(program.Projects, domain.Project{
			ID:         p.ID,
			Name:       p.Name,
			Sector:     p.Sector,
			TotalCost:  p.TotalCost,
			StartDate:  p.StartDate,
			EndDate:    p.EndDate,
			Progress:   p.Progress,
			Expenses:   expensesByProject[p.ID],
			Milestones: milestonesByProject[p.ID],
		})
	}

	return program
}

// MapProgramDomainToStore flattens a domain snapshot into store records.
func MapProgramDomainToStore(program domain.InvestmentProgram) store.ProgramGraph {
	graph := store.ProgramGraph{
		Program: store.ProgramRecord{
			ID:          program.ID,
			Title:       program.Title,
			Status:      string(program.Status),
			TotalAmount: program.TotalAmount,
			FiscalYear:  program.FiscalYear,
			StartDate:   program.StartDate,
			EndDate:     program.EndDate,
		},
	}

	for _, p := range program.Projects {
		graph.Projects = append(graph.Projects, store.ProjectRecord{
			ID:        p.ID,
			ProgramID: program.ID,
			Name:      p.Name,
			Sector:    p.Sector,
			TotalCost: p.TotalCost,
			Progress:  p.Progress,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		})
		for _, e := range p.Expenses {
			graph.Expenses = append(graph.Expenses, store.ExpenseRecord{
				ID:          e.ID,
				ProjectID:   p.ID,
				Amount:      e.Amount,
				Date:        e.Date,
				Description: e.Description,
			})
		}
		for _, m := range p.Milestones {
			graph.Milestones = append(graph.Milestones, store.MilestoneRecord{
				ID:          m.ID,
				ProjectID:   p.ID,
				Name:        m.Name,
				Status:      m.Status,
				DueDate:     m.DueDate,
				CompletedAt: m.CompletedAt,
			})
		}
	}

	return graph
}
