package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-tools/aip-atlas/pkg/adapters"
	"github.com/lgu-tools/aip-atlas/pkg/models/api"
	"github.com/lgu-tools/aip-atlas/pkg/models/domain"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/budget"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/validation"
	"github.com/rs/zerolog"
)

type BudgetModel interface {
	Predict(ctx context.Context, input budget.Input) (*domain.Report[domain.BudgetAdvice], error)
}

type ValidationModel interface {
	Predict(ctx context.Context, input validation.Input) (*domain.Report[domain.ValidationSummary], error)
}

type DocumentModel interface {
	Predict(ctx context.Context, input domain.DocumentInput) (*domain.Report[domain.DocumentReport], error)
}

type Handler struct {
	budget     BudgetModel
	validation ValidationModel
	document   DocumentModel
	registry   analysis.Registry
}

func NewHandler(budget BudgetModel, validation ValidationModel, document DocumentModel, registry analysis.Registry) *Handler {
	return &Handler{
		budget:     budget,
		validation: validation,
		document:   document,
		registry:   registry,
	}
}

func (h *Handler) GetBudgetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	programID := chi.URLParam(r, "program")

	input := budget.Input{ProgramID: programID}
	if year := r.URL.Query().Get("fiscalYear"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			writeError(w, r, &domain.ValidationError{Field: "fiscalYear", Message: "must be a number"})
			return
		}
		input.FiscalYear = parsed
	}

	report, err := h.budget.Predict(ctx, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapBudgetReportDomainToApi(report))
}

func (h *Handler) GetValidationAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	programID := chi.URLParam(r, "program")

	report, err := h.validation.Predict(ctx, validation.Input{ProgramID: programID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapValidationReportDomainToApi(report))
}

func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &domain.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	report, err := h.document.Predict(ctx, domain.DocumentInput{
		ID:        req.ID,
		Content:   req.Content,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDocumentReportDomainToApi(report))
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	infos := h.registry.ListModels()
	response := make([]api.ModelInfo, 0, len(infos))
	for _, info := range infos {
		response = append(response, api.ModelInfo{
			Name:        info.Name,
			Version:     info.Version.String(),
			Timestamp:   info.Version.Timestamp,
			Description: info.Version.Description,
		})
	}
	writeJSON(w, r, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		upstream   *domain.UpstreamError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	writeJSON(w, r, status, api.Error{Error: err.Error()})
}
