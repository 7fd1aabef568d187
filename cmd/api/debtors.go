package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/conversion"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/go-chi/chi/v5"
)

type ListDebtorsResponse = response.APIResponse[[]store.DebtorRecord]
type ConvertDebtorsResponse = response.APIResponse[*conversion.BulkResult]

// @Summary		List debtors
// @Tags			Debtors
// @Produce		json
// @Success		200	{object}	ListDebtorsResponse
// @Router			/debtors [get]
func (app *application) handleListDebtors(w http.ResponseWriter, r *http.Request) {
	data, err := app.importer.Debtors(r.Context())
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Delete debtor row
// @Tags			Debtors
// @Param			id	path	string	true	"Debtor id"
// @Success		204
// @Failure		404	{object}	response.ErrorResponse
// @Router			/debtors/{id} [delete]
func (app *application) handleDeleteDebtor(w http.ResponseWriter, r *http.Request) {
	removed, err := app.importer.DeleteDebtors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	if removed == 0 {
		writeJSONError(w, http.StatusNotFound, "debtor not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary		Convert debtors into clients
// @Description	Converts the given debtor rows, or the whole batch when "all" is set. Duplicates by tax id are skipped and listed.
// @Tags			Debtors
// @Accept			json
// @Produce		json
// @Param			selection	body		object{ids:[]string,all:bool}	true	"Rows to convert"
// @Success		200			{object}	ConvertDebtorsResponse
// @Failure		422			{object}	response.ErrorResponse	"No matching debtors"
// @Router			/debtors/convert [post]
func (app *application) handleConvertDebtors(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IDs []string `json:"ids"`
		All bool     `json:"all"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var (
		result *conversion.BulkResult
		err    error
	)
	if input.All {
		result, err = app.conversion.ConvertAll(r.Context(), session(r))
	} else {
		result, err = app.conversion.ConvertSelected(r.Context(), input.IDs, session(r))
	}
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Conversion finished", result)
}
