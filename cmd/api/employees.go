package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/crm"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/go-chi/chi/v5"
)

type ListEmployeesResponse = response.APIResponse[[]store.Employee]
type EmployeeResponse = response.APIResponse[*store.Employee]

// @Summary		List employees
// @Tags			Employees
// @Produce		json
// @Param			active	query		bool	false	"Only active employees"
// @Success		200		{object}	ListEmployeesResponse
// @Router			/employees [get]
func (app *application) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	data, err := app.employees.List(r.Context(), queryBool(r, "active"))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Get employee
// @Tags			Employees
// @Produce		json
// @Param			id	path		string	true	"Employee id"
// @Success		200	{object}	EmployeeResponse
// @Failure		404	{object}	response.ErrorResponse
// @Router			/employees/{id} [get]
func (app *application) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := app.employees.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", e)
}

// @Summary		Create employee
// @Tags			Employees
// @Accept			json
// @Produce		json
// @Param			employee	body		crm.EmployeeInput	true	"Employee"
// @Success		201			{object}	EmployeeResponse
// @Failure		400			{object}	response.ErrorResponse
// @Failure		409			{object}	response.ErrorResponse	"Email already registered"
// @Router			/employees [post]
func (app *application) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var input crm.EmployeeInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	e, err := app.employees.Create(r.Context(), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Employee created", e)
}

// @Summary		Update employee
// @Tags			Employees
// @Accept			json
// @Produce		json
// @Param			id			path		string				true	"Employee id"
// @Param			employee	body		crm.EmployeeInput	true	"Employee"
// @Success		200			{object}	EmployeeResponse
// @Router			/employees/{id} [put]
func (app *application) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var input crm.EmployeeInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	e, err := app.employees.Update(r.Context(), chi.URLParam(r, "id"), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Employee updated", e)
}

// @Summary		Delete employee
// @Description	Refused while the employee still owns clients.
// @Tags			Employees
// @Param			id	path	string	true	"Employee id"
// @Success		204
// @Failure		409	{object}	response.ErrorResponse
// @Router			/employees/{id} [delete]
func (app *application) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := app.employees.Delete(r.Context(), chi.URLParam(r, "id"), session(r)); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
