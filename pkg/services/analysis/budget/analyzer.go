// Package budget implements the budget allocation analyzer. It recommends a
// normalized sector split for a program by blending historical allocation
// effectiveness with current utilization priority.
package budget

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/services/programs"
	"github.com/rs/zerolog"
)

const (
	ModelName  = "budget-allocation"
	confidence = 0.85

	uncategorized = "Uncategorized"

	// blend weights with historical data
	histWeightHistory  = 0.4
	histWeightPriority = 0.4
	histWeightEff      = 0.2
	// blend weights without historical data
	coldWeightPriority = 0.7
	coldWeightEff      = 0.3
)

// Input identifies the program to analyze. FiscalYear optionally overrides
// the pivot year used to select historical programs; zero means the
// program's own fiscal year.
type Input struct {
	ProgramID  string
	FiscalYear int
}

type Analyzer struct {
	explorer programs.Explorer
	settings Settings
	version  domain.ModelVersion
}

var _ analysis.Model[Input, domain.BudgetAdvice] = (*Analyzer)(nil)

func NewAnalyzer(explorer programs.Explorer, settings Settings) *Analyzer {
	return &Analyzer{
		explorer: explorer,
		settings: settings,
		version: domain.ModelVersion{
			Major:       1,
			Minor:       0,
			Patch:       0,
			Timestamp:   time.Now().UTC(),
			Description: "rule-based sector allocation from historical effectiveness and utilization priority",
		},
	}
}

// sectorHistory accumulates allocation samples for one sector across the
// historical programs.
type sectorHistory struct {
	pctSamples []float64
	effSamples []float64
}

// sectorNeed captures the target program's current position in one sector.
type sectorNeed struct {
	allocated  float64
	expenses   float64
	currentPct float64
	utilized   float64
	priority   float64
}

func (a *Analyzer) Predict(ctx context.Context, input Input) (*domain.Report[domain.BudgetAdvice], error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	program, err := a.explorer.GetProgram(ctx, input.ProgramID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("model", ModelName).
			Str("op", "predict").
			Str("program_id", input.ProgramID).
			Msg("budget allocation prediction failed")
		return nil, err
	}

	pivotYear := program.FiscalYear
	if input.FiscalYear != 0 {
		pivotYear = input.FiscalYear
	}

	history, err := a.explorer.ListCompletedPrograms(ctx, pivotYear, a.settings.HistoryLimit)
	if err != nil {
		logger.Error().
			Err(err).
			Str("model", ModelName).
			Str("op", "predict").
			Str("program_id", input.ProgramID).
			Msg("failed to fetch historical programs")
		return nil, err
	}

	histStats := a.collectHistory(history)
	needs := a.collectCurrentNeeds(program)
	allocations := a.blend(program.TotalAmount, histStats, needs)

	advice := domain.BudgetAdvice{
		ProgramID:             program.ID,
		TotalBudget:           program.TotalAmount,
		Allocations:           allocations,
		OverallRecommendation: a.overallRecommendation(allocations),
		HistoricalPrograms:    len(history),
	}

	return &domain.Report[domain.BudgetAdvice]{
		ID:          uuid.NewString(),
		Model:       ModelName,
		Version:     a.version,
		Confidence:  confidence,
		GeneratedAt: time.Now().UTC(),
		Execution:   time.Since(started),
		Payload:     advice,
	}, nil
}

func (a *Analyzer) collectHistory(history []domain.InvestmentProgram) map[string]*sectorHistory {
	stats := make(map[string]*sectorHistory)

	for _, program := range history {
		if program.TotalAmount <= 0 {
			continue
		}
		bySector := groupBySector(program.Projects)
		for sector, projects := range bySector {
			hist, ok := stats[sector]
			if !ok {
				hist = &sectorHistory{}
				stats[sector] = hist
			}

			var sectorCost float64
			for _, p := range projects {
				sectorCost += p.TotalCost
				spent := math.Max(p.TotalExpenses(), 1)
				hist.effSamples = append(hist.effSamples, p.Progress/100*p.TotalCost/spent)
			}
			hist.pctSamples = append(hist.pctSamples, sectorCost/program.TotalAmount*100)
		}
	}

	return stats
}

func (a *Analyzer) collectCurrentNeeds(program *domain.InvestmentProgram) map[string]*sectorNeed {
	needs := make(map[string]*sectorNeed)

	for sector, projects := range groupBySector(program.Projects) {
		need := &sectorNeed{}
		for _, p := range projects {
			need.allocated += p.TotalCost
			need.expenses += p.TotalExpenses()
		}
		if program.TotalAmount > 0 {
			need.currentPct = need.allocated / program.TotalAmount * 100
		}
		if need.allocated > 0 {
			need.utilized = need.expenses / need.allocated * 100
		}
		need.priority = a.sectorWeight(sector) * a.utilizationFactor(need.utilized)
		needs[sector] = need
	}

	return needs
}

// blend computes the recommended split over the union of sectors seen in
// history, in the target program, and in the static weight table, floors
// each share at the configured minimum and renormalizes to exactly 100.
func (a *Analyzer) blend(
	totalBudget float64,
	history map[string]*sectorHistory,
	needs map[string]*sectorNeed,
) []domain.SectorAllocation {
	sectors := make(map[string]struct{})
	for s := range history {
		sectors[s] = struct{}{}
	}
	for s := range needs {
		sectors[s] = struct{}{}
	}
	for s := range a.settings.SectorWeights {
		sectors[s] = struct{}{}
	}

	raw := make(map[string]float64, len(sectors))
	for sector := range sectors {
		priority := a.sectorWeight(sector) * a.utilizationFactor(0)
		if need, ok := needs[sector]; ok {
			priority = need.priority
		}

		var score float64
		if hist, ok := history[sector]; ok {
			score = mean(hist.pctSamples)*histWeightHistory +
				priority*20*histWeightPriority +
				mean(hist.effSamples)*20*histWeightEff
		} else {
			score = priority*20*coldWeightPriority +
				a.settings.DefaultEffectiveness*20*coldWeightEff
		}

		raw[sector] = math.Max(score, a.settings.MinimumShare)
	}

	var rawTotal float64
	for _, v := range raw {
		rawTotal += v
	}

	allocations := make([]domain.SectorAllocation, 0, len(raw))
	for sector, score := range raw {
		pct := score / rawTotal * 100
		alloc := domain.SectorAllocation{
			Sector:                sector,
			RecommendedPercentage: pct,
			RecommendedAmount:     pct / 100 * totalBudget,
		}
		if need, ok := needs[sector]; ok {
			alloc.CurrentPercentage = need.currentPct
		}
		alloc.Reasoning = a.reasoning(sector, history[sector], needs[sector])
		allocations = append(allocations, alloc)
	}

	sort.Slice(allocations, func(i, j int) bool {
		if allocations[i].RecommendedPercentage != allocations[j].RecommendedPercentage {
			return allocations[i].RecommendedPercentage > allocations[j].RecommendedPercentage
		}
		return allocations[i].Sector < allocations[j].Sector
	})

	return allocations
}

func (a *Analyzer) reasoning(sector string, hist *sectorHistory, need *sectorNeed) string {
	var b strings.Builder

	if hist != nil {
		fmt.Fprintf(&b, "Historical allocation averaged %.1f%% with effectiveness %.2f. ",
			mean(hist.pctSamples), mean(hist.effSamples))
	} else {
		b.WriteString("No historical allocation on record. ")
	}

	if need != nil {
		fmt.Fprintf(&b, "Currently at %.1f%% of the budget with %.0f%% utilization. ",
			need.currentPct, need.utilized)
	} else {
		b.WriteString("No current allocation in this program. ")
	}

	rationale, ok := a.settings.SectorRationales[sector]
	if !ok {
		rationale = a.settings.DefaultRationale
	}
	b.WriteString(rationale)

	return b.String()
}

// overallRecommendation names up to two sectors whose recommended share
// diverges from the current one by more than the configured delta, then
// lists the top three sectors by recommended share.
func (a *Analyzer) overallRecommendation(allocations []domain.SectorAllocation) string {
	type gap struct {
		sector string
		delta  float64
		rec    float64
		cur    float64
	}

	var gaps []gap
	for _, alloc := range allocations {
		delta := math.Abs(alloc.RecommendedPercentage - alloc.CurrentPercentage)
		if delta > a.settings.RebalanceDelta {
			gaps = append(gaps, gap{
				sector: alloc.Sector,
				delta:  delta,
				rec:    alloc.RecommendedPercentage,
				cur:    alloc.CurrentPercentage,
			})
		}
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].delta > gaps[j].delta })

	var b strings.Builder
	if len(gaps) > 0 {
		b.WriteString("Consider rebalancing ")
		for i, g := range gaps {
			if i == 2 {
				break
			}
			if i > 0 {
				b.WriteString(" and ")
			}
			fmt.Fprintf(&b, "%s (recommended %.1f%% vs current %.1f%%)", g.sector, g.rec, g.cur)
		}
		b.WriteString(". ")
	}

	b.WriteString("Top priorities: ")
	for i, alloc := range allocations {
		if i == 3 {
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (%.1f%%)", alloc.Sector, alloc.RecommendedPercentage)
	}
	b.WriteString(".")

	return b.String()
}

func (a *Analyzer) sectorWeight(sector string) float64 {
	if w, ok := a.settings.SectorWeights[sector]; ok {
		return w
	}
	return a.settings.DefaultWeight
}

func (a *Analyzer) utilizationFactor(utilized float64) float64 {
	switch {
	case utilized < a.settings.LowUtilization:
		return 1.2
	case utilized > a.settings.HighUtilization:
		return 0.8
	default:
		return 1.0
	}
}

// Train is a contract stub; allocation rules are hand-written and nothing
// is learned from samples.
func (a *Analyzer) Train(ctx context.Context, input analysis.TrainingInput) (analysis.TrainingMetadata, error) {
	zerolog.Ctx(ctx).Info().
		Str("model", ModelName).
		Int("samples", input.Samples).
		Msg("training requested for rule-based model, skipping")

	return analysis.TrainingMetadata{
		Model:     ModelName,
		Version:   a.version,
		TrainedAt: time.Now().UTC(),
		Samples:   input.Samples,
		Applied:   false,
	}, nil
}

// Evaluate returns static placeholder metrics.
func (a *Analyzer) Evaluate(_ context.Context, _ analysis.EvaluationInput) (analysis.Evaluation, error) {
	return analysis.Evaluation{
		Accuracy: 0.85,
		Metrics: map[string]float64{
			"precision": 0.84,
			"recall":    0.86,
		},
	}, nil
}

func (a *Analyzer) Version() domain.ModelVersion { return a.version }

// SaveState is a no-op: the allocation tables live in Settings and are not
// persisted by this analyzer.
func (a *Analyzer) SaveState(_ context.Context, _ string) error { return nil }

func (a *Analyzer) LoadState(_ context.Context, _ string) error { return nil }

func groupBySector(projects []domain.Project) map[string][]domain.Project {
	grouped := make(map[string][]domain.Project)
	for _, p := range projects {
		sector := p.Sector
		if sector == "" {
			sector = uncategorized
		}
		grouped[sector] = append(grouped[sector], p)
	}
	return grouped
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range samples {
		total += s
	}
	return total / float64(len(samples))
}
