package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	analysisapp "github.com/wakaru-app/wakaru-api/internal/module/analysis/application"
	analysisdomain "github.com/wakaru-app/wakaru-api/internal/module/analysis/domain"
	saveditemdomain "github.com/wakaru-app/wakaru-api/internal/module/saveditem/domain"
)

// featuredLimit は注目解析結果の取得件数
const featuredLimit = 10

// AnalysisService は解析エンドポイントが消費するアプリケーションサービス
type AnalysisService interface {
	Submit(ctx context.Context, rawText string) (*analysisapp.SubmitResult, error)
	ListFeatured(ctx context.Context, limit int) ([]*analysisdomain.Analysis, error)
}

// SavedItemService は保存アイテムエンドポイントが消費するアプリケーションサービス
type SavedItemService interface {
	Create(ctx context.Context, userID, analysisID uuid.UUID) (*saveditemdomain.SavedItem, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	FindAll(ctx context.Context, userID uuid.UUID, query saveditemdomain.Query) (*saveditemdomain.Page, error)
	GetAnalysisForUser(ctx context.Context, analysisID, userID uuid.UUID) (*analysisdomain.Analysis, error)
}

// Handler はAPIのHTTPハンドラーです
type Handler struct {
	mux        *http.ServeMux
	analyses   AnalysisService
	savedItems SavedItemService
	identity   Identity
	logger     *slog.Logger
}

// NewHandler は新しいHandlerを作成し、ルーティングを登録します
func NewHandler(analyses AnalysisService, savedItems SavedItemService, identity Identity, logger *slog.Logger) *Handler {
	h := &Handler{
		mux:        http.NewServeMux(),
		analyses:   analyses,
		savedItems: savedItems,
		identity:   identity,
		logger:     logger,
	}

	h.mux.HandleFunc("POST /api/analyses", h.submitAnalysis)
	h.mux.HandleFunc("GET /api/analyses/featured", h.listFeatured)
	h.mux.HandleFunc("GET /api/analyses/{id}", h.getAnalysis)
	h.mux.HandleFunc("POST /api/saved-items", h.createSavedItem)
	h.mux.HandleFunc("GET /api/saved-items", h.listSavedItems)
	h.mux.HandleFunc("DELETE /api/saved-items/{id}", h.deleteSavedItem)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type submitAnalysisRequest struct {
	OriginalText string `json:"originalText"`
}

type submitAnalysisResponse struct {
	Analysis     *analysisdomain.Analysis `json:"analysis"`
	Deduplicated bool                     `json:"deduplicated"`
}

// submitAnalysis はテキストを解析する。既存テキストは200、新規作成は201。
func (h *Handler) submitAnalysis(w http.ResponseWriter, r *http.Request) {
	var req submitAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}

	result, err := h.analyses.Submit(r.Context(), req.OriginalText)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Deduplicated {
		status = http.StatusOK
	}
	writeJSON(w, status, submitAnalysisResponse{
		Analysis:     result.Analysis,
		Deduplicated: result.Deduplicated,
	})
}

func (h *Handler) listFeatured(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.analyses.ListFeatured(r.Context(), featuredLimit)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

// getAnalysis は呼び出しユーザーが保存している解析結果を返す。
// 存在しない場合と保存していない場合は同じ404になる。
func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "analysis id must be a valid UUID", "id")
		return
	}

	analysis, err := h.savedItems.GetAnalysisForUser(r.Context(), id, user.ID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

type createSavedItemRequest struct {
	AnalysisID string `json:"analysisId"`
}

func (h *Handler) createSavedItem(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	var req createSavedItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", "")
		return
	}

	analysisID, err := uuid.Parse(req.AnalysisID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "analysisId must be a valid UUID", "analysisId")
		return
	}

	item, err := h.savedItems.Create(r.Context(), user.ID, analysisID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"savedItem": item})
}

func (h *Handler) listSavedItems(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	page, err := h.savedItems.FindAll(r.Context(), user.ID, *query)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) deleteSavedItem(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.CurrentUser(r)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "saved item id must be a valid UUID", "id")
		return
	}

	if err := h.savedItems.Delete(r.Context(), id, user.ID); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery は一覧取得のクエリパラメータを検証する。
// 指定された値が不正な場合はエラーにし、黙って既定値へ丸めない。
func parseListQuery(r *http.Request) (*saveditemdomain.Query, error) {
	values := r.URL.Query()
	query := saveditemdomain.Query{
		Q:        values.Get("q"),
		Page:     1,
		PageSize: 20,
		Sort:     saveditemdomain.SortBySavedAt,
		Order:    saveditemdomain.OrderDesc,
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, &analysisdomain.ValidationError{Field: "page", Rule: "invalid", Message: "page must be a positive integer"}
		}
		query.Page = page
	}

	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize < 1 || pageSize > 50 {
			return nil, &analysisdomain.ValidationError{Field: "pageSize", Rule: "invalid", Message: "pageSize must be between 1 and 50"}
		}
		query.PageSize = pageSize
	}

	if raw := values.Get("sort"); raw != "" {
		if raw != saveditemdomain.SortBySavedAt && raw != saveditemdomain.SortByOriginalText {
			return nil, &analysisdomain.ValidationError{Field: "sort", Rule: "invalid", Message: "sort must be savedAt or originalText"}
		}
		query.Sort = raw
	}

	if raw := values.Get("order"); raw != "" {
		if raw != saveditemdomain.OrderAsc && raw != saveditemdomain.OrderDesc {
			return nil, &analysisdomain.ValidationError{Field: "order", Rule: "invalid", Message: "order must be asc or desc"}
		}
		query.Order = raw
	}

	return &query, nil
}
