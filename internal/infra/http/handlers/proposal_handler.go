package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfconsig/propostas-api/internal/infra/http/middleware"
	"github.com/gfconsig/propostas-api/internal/usecase"
)

type ProposalHandler struct {
	Repo           usecase.ProposalRepositoryInterface
	UpdateStatusUC *usecase.UpdateStatusUseCase
	UpdateObsUC    *usecase.UpdateObservationUseCase
}

func NewProposalHandler(
	repo usecase.ProposalRepositoryInterface,
	statusUC *usecase.UpdateStatusUseCase,
	obsUC *usecase.UpdateObservationUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		Repo:           repo,
		UpdateStatusUC: statusUC,
		UpdateObsUC:    obsUC,
	}
}

// HandleList (GET /proposals) devolve a base canônica atual.
func (h *ProposalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.Repo.LoadAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

// HandleUpdateStatus (PUT /proposals/{id}/status)
func (h *ProposalHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	var input usecase.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ID = id

	proposal, err := h.UpdateStatusUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordStatusUpdate()
	writeJSON(w, http.StatusOK, proposal)
}

// HandleUpdateObservation (PUT /proposals/{id}/observation)
func (h *ProposalHandler) HandleUpdateObservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	var input usecase.UpdateObservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ID = id

	proposal, err := h.UpdateObsUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}

// HandleReset (DELETE /proposals) limpa a base. Destruição é sempre
// explícita, nunca silenciosa.
func (h *ProposalHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Clear(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Base de propostas limpa."})
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if usecase.IsDomainError(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": err.Error(),
	})
}
