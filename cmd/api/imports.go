package main

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/farxc/carteira-devedores/internal/prospecting"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
)

type CreateImportResponse = response.APIResponse[*prospecting.ImportResult]
type GetCurrentImportResponse = response.APIResponse[*currentImport]
type GetImportHistoryResponse = response.APIResponse[[]store.ImportHistory]

type currentImport struct {
	Metadata *store.ImportMetadata `json:"metadata"`
	Debtors  []store.DebtorRecord  `json:"debtors"`
}

// @Summary		Import debtors
// @Description	Replaces the current debtor batch with the given file. Accepts the raw file as the body or a multipart form with a "file" field.
// @Tags			Imports
// @Accept			plain
// @Accept			mpfd
// @Produce		json
// @Param			source	query		string					false	"Name recorded as the batch source"
// @Param			file	formData	file					false	"Export file"
// @Success		201		{object}	CreateImportResponse	"Import stored"
// @Failure		400		{object}	response.ErrorResponse	"Unreadable upload"
// @Failure		413		{object}	response.ErrorResponse	"File too large"
// @Router			/imports [post]
func (app *application) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	source := r.URL.Query().Get("source")

	var body io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, prospecting.MaxImportBytes+1<<20)
		file, header, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()
		if source == "" {
			source = header.Filename
		}
		body = file
	}
	if source == "" {
		source = "upload"
	}

	result, err := app.importer.ImportReader(r.Context(), body, source, s.UserID)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Import stored", result)
}

// @Summary		Current import
// @Description	Returns the metadata and rows of the current batch.
// @Tags			Imports
// @Produce		json
// @Success		200	{object}	GetCurrentImportResponse
// @Failure		404	{object}	response.ErrorResponse	"Nothing imported yet"
// @Router			/imports/current [get]
func (app *application) handleGetCurrentImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta, err := app.importer.CurrentMetadata(ctx)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	debtors, err := app.importer.Debtors(ctx)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", &currentImport{Metadata: meta, Debtors: debtors})
}

// @Summary		Import history
// @Description	Get a list of the latest import batches, newest first.
// @Tags			Imports
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetImportHistoryResponse	"Successfully retrieved latest import records"
// @Router			/imports/history [get]
func (app *application) handleGetImportHistory(w http.ResponseWriter, r *http.Request) {
	data, err := app.store.LatestImports(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Successfully retrieved latest import records", data)
}

// @Summary		Clear import
// @Description	Drops the current batch and its metadata. History is kept.
// @Tags			Imports
// @Success		204
// @Failure		403	{object}	response.ErrorResponse
// @Router			/imports/current [delete]
func (app *application) handleClearImport(w http.ResponseWriter, r *http.Request) {
	if err := app.importer.Clear(r.Context()); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
