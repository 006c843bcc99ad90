package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leadflowhq/leadflow/internal/entity"
	"github.com/leadflowhq/leadflow/internal/infra/http/middleware"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

// exportLimit caps one export; beyond this callers should narrow their filters.
const exportLimit = 5000

type ExportHandler struct {
	Leads usecase.LeadRepositoryInterface
}

func NewExportHandler(leads usecase.LeadRepositoryInterface) *ExportHandler {
	return &ExportHandler{Leads: leads}
}

var exportHeader = []string{
	"name", "company", "email", "phone", "website", "status", "source",
	"priority", "score", "tags", "description", "notes", "created_at",
}

// Handle streams the caller's leads in the requested format. The same query
// filters as the list endpoint apply; pagination is replaced by the export cap.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	owner := middleware.CurrentUser(r)
	if owner.ID == "" {
		writeUseCaseError(w, usecase.ErrUnauthorized)
		return
	}

	filter := parseListInput(r)
	filter.Page = 1
	filter.PerPage = exportLimit
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}

	leads, _, err := h.Leads.List(r.Context(), owner.ID, filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load leads")
		return
	}

	filename := "leads-" + time.Now().Format("2006-01-02")

	switch r.URL.Query().Get("format") {
	case "", "csv":
		h.writeCSV(w, filename, leads)
	case "json":
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.json"`)
		writeJSON(w, http.StatusOK, leads)
	case "xlsx":
		h.writeXLSX(w, filename, leads)
	default:
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv, json or xlsx")
	}
}

func (h *ExportHandler) writeCSV(w http.ResponseWriter, filename string, leads []*entity.Lead) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.csv"`)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, lead := range leads {
		cw.Write(exportRow(lead))
	}
	cw.Flush()
}

func (h *ExportHandler) writeXLSX(w http.ResponseWriter, filename string, leads []*entity.Lead) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leads"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for row, lead := range leads {
		for col, value := range exportRow(lead) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)

	if err := f.Write(w); err != nil {
		log.Printf("xlsx export failed: %v", err)
	}
}

func exportRow(lead *entity.Lead) []string {
	score := ""
	if lead.Score != nil {
		score = strconv.Itoa(*lead.Score)
	}
	return []string{
		lead.Name, lead.Company, lead.Email, lead.Phone, lead.Website,
		string(lead.Status), string(lead.Source), string(lead.Priority),
		score, strings.Join(lead.Tags, ";"),
		lead.Description, lead.Notes,
		lead.CreatedAt.Format(time.RFC3339),
	}
}
