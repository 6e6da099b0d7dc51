package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/TalhaZaheer1/SmartBridge-Backend/api/middleware"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
)

const multipartMemoryBytes = 8 << 20

// fileStore is the slice of the upload client the controllers need.
type fileStore interface {
	Save(ctx context.Context, subdir, filename string, r io.Reader) (string, error)
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").WithDetails(map[string]any{"field": key})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// saveFormFile stores the named multipart file and returns its relative path.
// A missing file yields ("", nil) so callers can decide whether it was
// required.
func saveFormFile(r *http.Request, store fileStore, field, subdir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file").WithDetails(map[string]any{"field": field})
	}
	defer file.Close()

	path, err := store.Save(r.Context(), subdir, header.Filename, file)
	if err != nil {
		return "", err
	}
	return path, nil
}
