package handlers

import (
	"net/http"

	"github.com/gfconsig/propostas-api/internal/usecase"
)

type DashboardHandler struct {
	DashboardUC *usecase.GetDashboardUseCase
}

func NewDashboardHandler(uc *usecase.GetDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{DashboardUC: uc}
}

// Handle (GET /dashboard) devolve o snapshot de KPIs da base atual.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.DashboardUC.Execute(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
