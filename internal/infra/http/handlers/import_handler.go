package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gfconsig/propostas-api/internal/infra/http/middleware"
	"github.com/gfconsig/propostas-api/internal/usecase"
)

// Limite de upload: export mensal fica bem abaixo disso.
const maxImportBytes = 20 << 20

type ImportHandler struct {
	ImportUC *usecase.ImportProposalsUseCase
}

func NewImportHandler(uc *usecase.ImportProposalsUseCase) *ImportHandler {
	return &ImportHandler{ImportUC: uc}
}

type importResponse struct {
	Success       bool   `json:"success"`
	Count         int    `json:"count"`
	ParseFailures int    `json:"parse_failures,omitempty"`
	Message       string `json:"message"`
}

// Handle (POST /import) recebe o corpo como texto delimitado cru.
// Importação rejeitada deixa a base anterior intacta e responde 4xx/5xx com
// mensagem legível; nunca derruba a sessão do operador.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, importResponse{
			Success: false,
			Message: "Falha ao ler o arquivo enviado.",
		})
		return
	}

	output, err := h.ImportUC.Execute(r.Context(), string(body))
	if err != nil {
		middleware.RecordImport("failure", 0, 0)

		status := http.StatusInternalServerError
		if usecase.IsDomainError(err) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, importResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	middleware.RecordImport("success", output.ImportedCount, output.ParseFailures)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"count":          output.ImportedCount,
		"parse_failures": output.ParseFailures,
		"message":        output.Message,
		"kpis":           output.KPIs,
		"proposals":      output.Proposals,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
