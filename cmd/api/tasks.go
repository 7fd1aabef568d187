package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/crm"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/go-chi/chi/v5"
)

type ListTasksResponse = response.APIResponse[[]store.Task]
type TaskResponse = response.APIResponse[*store.Task]

// @Summary		List tasks
// @Description	Agents only see their own tasks.
// @Tags			Tasks
// @Produce		json
// @Param			assignee_id	query		string	false	"Assignee"
// @Param			client_id	query		string	false	"Client"
// @Param			status		query		string	false	"pending, in_progress or done"
// @Param			overdue		query		bool	false	"Only open tasks past their due date"
// @Success		200			{object}	ListTasksResponse
// @Router			/tasks [get]
func (app *application) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := crm.TaskFilter{
		AssigneeID: q.Get("assignee_id"),
		ClientID:   q.Get("client_id"),
		Status:     q.Get("status"),
		Overdue:    queryBool(r, "overdue"),
	}
	data, err := app.tasks.List(r.Context(), f, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Create task
// @Tags			Tasks
// @Accept			json
// @Produce		json
// @Param			task	body		crm.TaskInput	true	"Task"
// @Success		201		{object}	TaskResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/tasks [post]
func (app *application) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var input crm.TaskInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	t, err := app.tasks.Create(r.Context(), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Task created", t)
}

// @Summary		Update task
// @Tags			Tasks
// @Accept			json
// @Produce		json
// @Param			id		path		string			true	"Task id"
// @Param			task	body		crm.TaskInput	true	"Task"
// @Success		200		{object}	TaskResponse
// @Router			/tasks/{id} [put]
func (app *application) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var input crm.TaskInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	t, err := app.tasks.Update(r.Context(), chi.URLParam(r, "id"), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Task updated", t)
}

// @Summary		Change task status
// @Tags			Tasks
// @Accept			json
// @Produce		json
// @Param			id		path		string					true	"Task id"
// @Param			status	body		object{status:string}	true	"New status"
// @Success		200		{object}	TaskResponse
// @Router			/tasks/{id}/status [patch]
func (app *application) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	t, err := app.tasks.SetStatus(r.Context(), chi.URLParam(r, "id"), input.Status, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Task updated", t)
}

// @Summary		Delete task
// @Tags			Tasks
// @Param			id	path	string	true	"Task id"
// @Success		204
// @Router			/tasks/{id} [delete]
func (app *application) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := app.tasks.Delete(r.Context(), chi.URLParam(r, "id"), session(r)); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
