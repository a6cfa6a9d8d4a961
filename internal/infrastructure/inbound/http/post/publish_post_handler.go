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

type PostPublisher interface {
	PublishPost(ctx context.Context, id int64) (*model.Post, error)
}

type PublishPostHandler struct {
	postService PostPublisher
	validate    *validator.Validate
	log         ports.Logger
}

func NewPublishPostHandler(postService PostPublisher, validate *validator.Validate, log ports.Logger) *PublishPostHandler {
	return &PublishPostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *PublishPostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil || h.validate.Struct(&postIDRequest{ID: id}) != nil {
		h.log.Debug("Invalid post id", slog.String("id", httputil.PathString(r, "id")))
		httputil.WriteError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.PublishPost(r.Context(), id)
	if err != nil {
		h.log.Debug("Error publishing post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		writeServiceError(w, h.log, "publish_post", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}
