package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Reason-jin/yj-portfolio-site/internal/api/middleware"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/orchestrator"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

// ChatService answers one chat request.
type ChatService interface {
	Handle(ctx context.Context, req models.ChatRequest) (*orchestrator.Result, error)
}

// DocumentBrowser exposes the knowledge base read-only.
type DocumentBrowser interface {
	ListDocuments() []models.DocumentSummary
	GetDocument(id string) *models.Document
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Documents int    `json:"documents"`
}

type DocumentListResponse struct {
	Documents []models.DocumentSummary `json:"documents"`
}

type Handler struct {
	chat        ChatService
	documents   DocumentBrowser
	development bool
	logger      *zerolog.Logger
}

// NewHandler builds the HTTP handlers. development adds error details to
// internal error responses.
func NewHandler(chat ChatService, documents DocumentBrowser, development bool, logger *zerolog.Logger) *Handler {
	return &Handler{
		chat:        chat,
		documents:   documents,
		development: development,
		logger:      logger,
	}
}

// POST /api/chat
// Body: ChatRequest
// Returns: ChatResponse, or SearchResponse in search mode
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	var chatRequest models.ChatRequest
	if err := req.ReadEntity(&chatRequest); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to parse request body")
		h.writeError(resp, errors.Join(errMalformedBody, err), chatRequest.Language)
		return
	}

	h.logger.Info().
		Str("mode", string(chatRequest.Mode)).
		Str("language", string(chatRequest.Language)).
		Int("history", len(chatRequest.History)).
		Str("request_id", middleware.RequestIDFrom(req)).
		Msg("Chat request")

	result, err := h.chat.Handle(req.Request.Context(), chatRequest)
	if err != nil {
		h.writeError(resp, err, chatRequest.Language)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, result.Body())
}

// OPTIONS /api/chat
func (h *Handler) Preflight(req *restful.Request, resp *restful.Response) {
	resp.AddHeader("Allow", "POST, OPTIONS")
	resp.WriteHeader(http.StatusOK)
}

// GET /api/documents
func (h *Handler) ListDocuments(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, DocumentListResponse{
		Documents: h.documents.ListDocuments(),
	})
}

// GET /api/documents/{id}
func (h *Handler) GetDocument(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("id")

	doc := h.documents.GetDocument(id)
	if doc == nil {
		middleware.HandleError(resp, fmt.Errorf("document not found: %s", id), http.StatusNotFound)
		return
	}

	_ = resp.WriteHeaderAndEntity(http.StatusOK, doc)
}

// GET /api/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   Version,
		Documents: len(h.documents.ListDocuments()),
	})
}
