package handlers

import (
	"net/http"

	"github.com/leadflowhq/leadflow/internal/infra/http/middleware"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

type StatsHandler struct {
	StatsUC *usecase.LeadStatsUseCase
}

func NewStatsHandler(statsUC *usecase.LeadStatsUseCase) *StatsHandler {
	return &StatsHandler{StatsUC: statsUC}
}

func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	output, err := h.StatsUC.Execute(r.Context(), middleware.CurrentUser(r))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
