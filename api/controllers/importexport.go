package controllers

import (
	"io"
	"net/http"

	"github.com/trosone/tros-backend/api/responses"
	importsvc "github.com/trosone/tros-backend/internal/importer"
	pkgerrors "github.com/trosone/tros-backend/pkg/errors"
	"github.com/trosone/tros-backend/pkg/logger"
)

// maxImportBytes caps uploaded CSV documents.
const maxImportBytes = 16 << 20

// CollectionExport streams the named collection as a CSV download.
func CollectionExport(svc importsvc.Service, collection string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Export(r.Context(), collection)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCSV(w, result.Filename, result.Content)
	}
}

// CollectionImport ingests a CSV document posted as the request body.
func CollectionImport(svc importsvc.Service, collection string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes+1))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
			return
		}
		if len(body) > maxImportBytes {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "csv document too large"))
			return
		}
		if len(body) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "csv document is empty"))
			return
		}

		result, err := svc.Import(r.Context(), collection, string(body))
		if err != nil {
			// Partial imports surface both the outcome and the failure.
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
