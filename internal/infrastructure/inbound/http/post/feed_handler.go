package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

type PublishedLister interface {
	ListPublishedPosts(ctx context.Context) ([]*model.Post, error)
}

type FeedHandler struct {
	postService PublishedLister
	log         ports.Logger
}

func NewFeedHandler(postService PublishedLister, log ports.Logger) *FeedHandler {
	return &FeedHandler{postService: postService, log: log}
}

func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPublishedPosts(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "feed", err)
		return
	}

	h.log.Debug("Feed listed", slog.Int("count", len(posts)))
	httputil.WriteJSON(w, http.StatusOK, posts)
}
