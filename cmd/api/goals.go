package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/goals"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ListGoalsResponse = response.APIResponse[[]goals.View]
type GoalResponse = response.APIResponse[*goals.View]

// @Summary		List goals
// @Description	Goals visible to the caller, with progress percentages.
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	ListGoalsResponse
// @Router			/goals [get]
func (app *application) handleListGoals(w http.ResponseWriter, r *http.Request) {
	data, err := app.goals.List(r.Context(), session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Get goal
// @Tags			Goals
// @Produce		json
// @Param			id	path		string	true	"Goal id"
// @Success		200	{object}	GoalResponse
// @Failure		404	{object}	response.ErrorResponse
// @Router			/goals/{id} [get]
func (app *application) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := app.goals.Get(r.Context(), chi.URLParam(r, "id"), session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", g)
}

// @Summary		Create goal
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Param			goal	body		goals.Input	true	"Goal"
// @Success		201		{object}	GoalResponse
// @Failure		400		{object}	response.ErrorResponse
// @Failure		403		{object}	response.ErrorResponse
// @Router			/goals [post]
func (app *application) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var input goals.Input
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	g, err := app.goals.Create(r.Context(), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Goal created", g)
}

// @Summary		Update goal
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Param			id		path		string		true	"Goal id"
// @Param			goal	body		goals.Input	true	"Goal"
// @Success		200		{object}	GoalResponse
// @Router			/goals/{id} [put]
func (app *application) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var input goals.Input
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	g, err := app.goals.Update(r.Context(), chi.URLParam(r, "id"), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Goal updated", g)
}

// @Summary		Update goal progress
// @Description	The assignee of an individual goal may only change its current value.
// @Tags			Goals
// @Accept			json
// @Produce		json
// @Param			id			path		string						true	"Goal id"
// @Param			progress	body		object{current_value:number}	true	"Current value"
// @Success		200			{object}	GoalResponse
// @Router			/goals/{id}/progress [patch]
func (app *application) handleUpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CurrentValue decimal.Decimal `json:"current_value"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	g, err := app.goals.UpdateProgress(r.Context(), chi.URLParam(r, "id"), input.CurrentValue, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Progress updated", g)
}

// @Summary		Sync goal from contracts
// @Description	Recomputes the current value from active and concluded contract fees in the goal's scope.
// @Tags			Goals
// @Produce		json
// @Param			id	path		string	true	"Goal id"
// @Success		200	{object}	GoalResponse
// @Router			/goals/{id}/sync [post]
func (app *application) handleSyncGoal(w http.ResponseWriter, r *http.Request) {
	g, err := app.goals.SyncFromContracts(r.Context(), chi.URLParam(r, "id"), session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Goal synced", g)
}

// @Summary		Delete goal
// @Tags			Goals
// @Param			id	path	string	true	"Goal id"
// @Success		204
// @Failure		403	{object}	response.ErrorResponse
// @Router			/goals/{id} [delete]
func (app *application) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := app.goals.Delete(r.Context(), chi.URLParam(r, "id"), session(r)); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
