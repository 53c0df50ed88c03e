package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	completiondomain "github.com/wakaru-app/wakaru-api/internal/module/completion/domain"
	saveditemdomain "github.com/wakaru-app/wakaru-api/internal/module/saveditem/domain"
)

// errorResponse は全エンドポイント共通のエラーボディ
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message, Field: field})
}

// respondError はドメインのエラー分類をHTTPステータスへ写像する。
// 分類できないエラーは詳細を漏らさず500として返し、ログにだけ残す。
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *analysisdomain.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, "validation_error", validationErr.Message, validationErr.Field)
		return
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required", "")
	case errors.Is(err, analysisdomain.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "not_found", "analysis not found", "")
	case errors.Is(err, saveditemdomain.ErrSavedItemNotFound):
		writeError(w, http.StatusNotFound, "not_found", "saved item not found", "")
	case errors.Is(err, saveditemdomain.ErrAlreadySaved):
		writeError(w, http.StatusConflict, "conflict", "analysis is already saved", "")
	case errors.Is(err, completiondomain.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", "analysis timed out", "")
	default:
		var apiErr *completiondomain.APIError
		if errors.As(err, &apiErr) {
			logger.Error("upstream completion error", "status", apiErr.Status, "code", apiErr.Code, "error", apiErr.Message)
			writeError(w, http.StatusBadGateway, "upstream_error", "analysis provider failed", "")
			return
		}

		var parseErr *completiondomain.ParseError
		if errors.As(err, &parseErr) {
			logger.Error("completion parse error", "error", parseErr.Message)
			writeError(w, http.StatusBadGateway, "upstream_error", "analysis provider returned an invalid response", "")
			return
		}

		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "", "")
	}
}
