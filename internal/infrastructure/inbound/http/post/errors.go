package post_http

import (
	"errors"
	"log/slog"
	"net/http"

	"blog-service/internal/domain/custom_errors"
	ports "blog-service/internal/domain/ports/output"
	"blog-service/internal/infrastructure/inbound/http/httputil"
)

func writeServiceError(w http.ResponseWriter, log ports.Logger, operation string, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound):
		httputil.WriteError(w, http.StatusNotFound, "post not found")
	case errors.Is(err, custom_errors.ErrAuthorNotFound):
		httputil.WriteError(w, http.StatusNotFound, "author not found")
	case errors.Is(err, custom_errors.ErrValidation):
		httputil.WriteError(w, http.StatusBadRequest, "validation failed")
	case errors.Is(err, custom_errors.ErrDatabaseQuery):
		log.Error("Database error", slog.String("operation", operation), slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusInternalServerError, "database error")
	default:
		log.Error("Unexpected post error", slog.String("operation", operation), slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

type postIDRequest struct {
	ID int64 `validate:"required,gt=0"`
}
