package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/go-chi/chi/v5"
)

type ListClientsResponse = response.APIResponse[[]store.ClientCompany]
type ClientResponse = response.APIResponse[*store.ClientCompany]
type ClientsSummaryResponse = response.APIResponse[portfolio.Summary]
type ContractResponse = response.APIResponse[*store.Contract]

// filterFromQuery reads the client filter parameters. Malformed amounts are
// reported as validation errors.
func filterFromQuery(r *http.Request) (portfolio.FilterSpec, error) {
	q := r.URL.Query()
	v := validation.Violations{}
	f := portfolio.FilterSpec{
		EmployeeID:     q.Get("employee_id"),
		DebtNature:     q.Get("debt_nature"),
		MinSelected:    queryDecimal(r, "min_selected", v),
		MaxSelected:    queryDecimal(r, "max_selected", v),
		RegistryStatus: q.Get("registry_status"),
		Stage:          store.Stage(q.Get("stage")),
		Query:          q.Get("q"),
	}
	if f.Stage != "" && !f.Stage.Valid() {
		v["stage"] = "invalid_stage"
	}
	return f, v.AsError()
}

// @Summary		List clients
// @Description	Lists clients matching every given filter.
// @Tags			Clients
// @Produce		json
// @Param			employee_id		query		string	false	"Owner id, or \"unassigned\""
// @Param			debt_nature		query		string	false	"Debt nature"
// @Param			min_selected	query		number	false	"Minimum selected debt"
// @Param			max_selected	query		number	false	"Maximum selected debt"
// @Param			registry_status	query		string	false	"Registry status"
// @Param			stage			query		string	false	"Negotiation stage"
// @Param			q				query		string	false	"Name or tax id search"
// @Success		200				{object}	ListClientsResponse
// @Failure		400				{object}	response.ErrorResponse
// @Router			/clients [get]
func (app *application) handleListClients(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	data, err := app.portfolio.Clients(r.Context(), f)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Clients summary
// @Description	Totals selected debt overall, per stage and for unassigned clients. Accepts the same filters as the client list.
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	ClientsSummaryResponse
// @Router			/clients/summary [get]
func (app *application) handleGetClientsSummary(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	data, err := app.portfolio.Clients(r.Context(), f)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", portfolio.Summarize(data))
}

// @Summary		Get client
// @Tags			Clients
// @Produce		json
// @Param			id	path		string	true	"Client id"
// @Success		200	{object}	ClientResponse
// @Failure		404	{object}	response.ErrorResponse
// @Router			/clients/{id} [get]
func (app *application) handleGetClient(w http.ResponseWriter, r *http.Request) {
	c, err := app.portfolio.Client(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", c)
}

// @Summary		Move client to a stage
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"Client id"
// @Param			stage	body		object{stage:string}	true	"New stage"
// @Success		200		{object}	ClientResponse
// @Failure		400		{object}	response.ErrorResponse
// @Failure		403		{object}	response.ErrorResponse
// @Router			/clients/{id}/stage [patch]
func (app *application) handleUpdateClientStage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Stage store.Stage `json:"stage"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	c, err := app.portfolio.UpdateStage(r.Context(), chi.URLParam(r, "id"), input.Stage, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Stage updated", c)
}

// @Summary		Add contract
// @Description	Appends a fee contract to the client. The fee is base times percentage over 100.
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Param			id			path		string					true	"Client id"
// @Param			contract	body		portfolio.ContractInput	true	"Contract"
// @Success		201			{object}	ContractResponse
// @Failure		400			{object}	response.ErrorResponse
// @Router			/clients/{id}/contracts [post]
func (app *application) handleAddContract(w http.ResponseWriter, r *http.Request) {
	var input portfolio.ContractInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	contract, err := app.portfolio.AddContract(r.Context(), chi.URLParam(r, "id"), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Contract added", contract)
}

// @Summary		Change contract status
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Param			id			path		string					true	"Client id"
// @Param			contractID	path		string					true	"Contract id"
// @Param			status		body		object{status:string}	true	"New status"
// @Success		200			{object}	ClientResponse
// @Router			/clients/{id}/contracts/{contractID}/status [patch]
func (app *application) handleUpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status store.ContractStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	c, err := app.portfolio.SetContractStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "contractID"), input.Status, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Contract updated", c)
}

// @Summary		Assign client
// @Description	Supervisors may assign anyone. Agents may only claim an unassigned client for themselves.
// @Tags			Clients
// @Accept			json
// @Produce		json
// @Param			id			path		string						true	"Client id"
// @Param			assignee	body		object{employee_id:string}	true	"Employee"
// @Success		200			{object}	ClientResponse
// @Failure		403			{object}	response.ErrorResponse
// @Failure		404			{object}	response.ErrorResponse
// @Router			/clients/{id}/assignee [put]
func (app *application) handleAssignClient(w http.ResponseWriter, r *http.Request) {
	var input struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if input.EmployeeID == "" {
		app.writeServiceError(w, r, validation.Violations{"employee_id": "required"}.AsError())
		return
	}
	c, err := app.portfolio.Assign(r.Context(), chi.URLParam(r, "id"), input.EmployeeID, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Client assigned", c)
}

// @Summary		Unassign client
// @Tags			Clients
// @Produce		json
// @Param			id	path		string	true	"Client id"
// @Success		200	{object}	ClientResponse
// @Failure		403	{object}	response.ErrorResponse
// @Router			/clients/{id}/assignee [delete]
func (app *application) handleUnassignClient(w http.ResponseWriter, r *http.Request) {
	c, err := app.portfolio.Unassign(r.Context(), chi.URLParam(r, "id"), session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Client unassigned", c)
}
