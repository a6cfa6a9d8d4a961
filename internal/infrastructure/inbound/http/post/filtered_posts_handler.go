package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

type PostSearcher interface {
	SearchPosts(ctx context.Context, search string) ([]*model.Post, error)
}

type FilteredPostsHandler struct {
	postService PostSearcher
	log         ports.Logger
}

func NewFilteredPostsHandler(postService PostSearcher, log ports.Logger) *FilteredPostsHandler {
	return &FilteredPostsHandler{postService: postService, log: log}
}

func (h *FilteredPostsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	search := httputil.PathString(r, "searchString")

	posts, err := h.postService.SearchPosts(r.Context(), search)
	if err != nil {
		writeServiceError(w, h.log, "filtered_posts", err)
		return
	}

	h.log.Debug("Filtered posts listed", slog.String("search", search), slog.Int("count", len(posts)))
	httputil.WriteJSON(w, http.StatusOK, posts)
}
