package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadflowhq/leadflow/internal/infra/http/middleware"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

type LeadHandler struct {
	CreateUC *usecase.CreateLeadUseCase
	GetUC    *usecase.GetLeadUseCase
	ListUC   *usecase.ListLeadsUseCase
	UpdateUC *usecase.UpdateLeadUseCase
	DeleteUC *usecase.DeleteLeadUseCase
	AddIntUC *usecase.AddInteractionUseCase
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	getUC *usecase.GetLeadUseCase,
	listUC *usecase.ListLeadsUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	addIntUC *usecase.AddInteractionUseCase,
) *LeadHandler {
	return &LeadHandler{
		CreateUC: createUC,
		GetUC:    getUC,
		ListUC:   listUC,
		UpdateUC: updateUC,
		DeleteUC: deleteUC,
		AddIntUC: addIntUC,
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), middleware.CurrentUser(r), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated(string(lead.Source))
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	output, err := h.GetUC.Execute(r.Context(), middleware.CurrentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	output, err := h.ListUC.Execute(r.Context(), middleware.CurrentUser(r), parseListInput(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), middleware.CurrentUser(r), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DeleteUC.Execute(r.Context(), middleware.CurrentUser(r), chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, err)
		return
	}
	middleware.RecordLeadsDeleted(1)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *LeadHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	if len(input.IDs) == 0 {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "ids must not be empty")
		return
	}

	count, err := h.DeleteUC.ExecuteMany(r.Context(), middleware.CurrentUser(r), input.IDs)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadsDeleted(count)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": count})
}

func (h *LeadHandler) AddInteraction(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddInteractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	interaction, err := h.AddIntUC.Execute(r.Context(), middleware.CurrentUser(r), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

// parseListInput reads the list filters from the query string. Multi-value
// filters accept comma-separated values (?status=NEW,CONTACTED).
func parseListInput(r *http.Request) usecase.ListLeadsInput {
	q := r.URL.Query()

	input := usecase.ListLeadsInput{
		Search:    q.Get("search"),
		Status:    splitCSV(q.Get("status")),
		Source:    splitCSV(q.Get("source")),
		Priority:  splitCSV(q.Get("priority")),
		Tags:      splitCSV(q.Get("tags")),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	input.Page, _ = strconv.Atoi(q.Get("page"))
	input.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateFrom = &t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			input.DateTo = &t
		}
	}
	if v := q.Get("score_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			input.ScoreMin = &n
		}
	}
	if v := q.Get("score_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			input.ScoreMax = &n
		}
	}
	if v := q.Get("assigned"); v != "" {
		assigned := v == "true"
		input.Assigned = &assigned
	}

	return input
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
