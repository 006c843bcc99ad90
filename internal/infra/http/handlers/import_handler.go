package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/leadflowhq/leadflow/internal/extraction"
	"github.com/leadflowhq/leadflow/internal/infra/http/middleware"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

type ImportHandler struct {
	ImportUC *usecase.ImportLeadsUseCase
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{ImportUC: importUC}
}

func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var input usecase.ImportLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	output, err := h.ImportUC.Execute(r.Context(), middleware.CurrentUser(r), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordImportBatch()
	for _, result := range output.Results {
		switch {
		case result.Success:
			middleware.RecordImportItem("created")
		case result.Duplicate:
			middleware.RecordImportItem("duplicate")
		default:
			middleware.RecordImportItem("failed")
		}
	}

	writeJSON(w, http.StatusOK, output)
}

type ExtractRequest struct {
	Text string `json:"text"`
}

type ExtractResponse struct {
	Fields     []extraction.DetectedField `json:"fields"`
	Candidates []extraction.Candidate     `json:"candidates"`
}

// Extract previews what the import pipeline would pull out of pasted text
// without persisting anything.
func (h *ImportHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "text is required")
		return
	}

	writeJSON(w, http.StatusOK, ExtractResponse{
		Fields:     extraction.DetectFields(req.Text),
		Candidates: extraction.ExtractLeads(req.Text),
	})
}
