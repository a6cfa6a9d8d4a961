package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

type DraftCreator interface {
	CreateDraft(ctx context.Context, draft *model.CreateDraftDTO) (*model.Post, error)
}

type CreateDraftHandler struct {
	postService DraftCreator
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreateDraftHandler(postService DraftCreator, validate *validator.Validate, log ports.Logger) *CreateDraftHandler {
	return &CreateDraftHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type CreateDraftRequest struct {
	Title       string  `json:"title" validate:"required"`
	Content     *string `json:"content"`
	AuthorEmail string  `json:"authorEmail" validate:"required"`
}

func (h *CreateDraftHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.log.Debug("Failed to decode draft", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Draft validation failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusBadRequest, "validation failed")
		return
	}

	post, err := h.postService.CreateDraft(r.Context(), &model.CreateDraftDTO{
		Title:       req.Title,
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		h.log.Debug("Error creating draft", slog.String("author_email", req.AuthorEmail), slog.String("error", err.Error()))
		writeServiceError(w, h.log, "create_draft", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}
