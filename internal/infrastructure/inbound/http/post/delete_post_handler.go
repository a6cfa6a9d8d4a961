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

type PostDeleter interface {
	DeletePost(ctx context.Context, id int64) (*model.Post, error)
}

type DeletePostHandler struct {
	postService PostDeleter
	validate    *validator.Validate
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, validate *validator.Validate, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

func (h *DeletePostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil || h.validate.Struct(&postIDRequest{ID: id}) != nil {
		h.log.Debug("Invalid post id", slog.String("id", httputil.PathString(r, "id")))
		httputil.WriteError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.DeletePost(r.Context(), id)
	if err != nil {
		h.log.Debug("Error deleting post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		writeServiceError(w, h.log, "delete_post", err)
		return
	}

	h.log.Debug("Post deleted successfully", slog.Int64("post_id", id))
	httputil.WriteJSON(w, http.StatusOK, post)
}
