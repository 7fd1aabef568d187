package main

import (
	"net/http"

	"github.com/farxc/carteira-devedores/internal/crm"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
	"github.com/go-chi/chi/v5"
)

type ListMeetingsResponse = response.APIResponse[[]store.Meeting]
type MeetingResponse = response.APIResponse[*store.Meeting]

// @Summary		List meetings
// @Description	Meetings starting in [from, to). Agents only see meetings they take part in.
// @Tags			Meetings
// @Produce		json
// @Param			from	query		string	false	"RFC 3339 or YYYY-MM-DD"
// @Param			to		query		string	false	"RFC 3339 or YYYY-MM-DD"
// @Success		200		{object}	ListMeetingsResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/meetings [get]
func (app *application) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	v := validation.Violations{}
	from := queryTime(r, "from", v)
	to := queryTime(r, "to", v)
	if err := v.AsError(); err != nil {
		app.writeServiceError(w, r, err)
		return
	}

	data, err := app.meetings.List(r.Context(), from, to, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Create meeting
// @Tags			Meetings
// @Accept			json
// @Produce		json
// @Param			meeting	body		crm.MeetingInput	true	"Meeting"
// @Success		201		{object}	MeetingResponse
// @Failure		400		{object}	response.ErrorResponse
// @Router			/meetings [post]
func (app *application) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var input crm.MeetingInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	m, err := app.meetings.Create(r.Context(), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "Meeting created", m)
}

// @Summary		Update meeting
// @Tags			Meetings
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"Meeting id"
// @Param			meeting	body		crm.MeetingInput	true	"Meeting"
// @Success		200		{object}	MeetingResponse
// @Router			/meetings/{id} [put]
func (app *application) handleUpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var input crm.MeetingInput
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	m, err := app.meetings.Update(r.Context(), chi.URLParam(r, "id"), input, session(r))
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "Meeting updated", m)
}

// @Summary		Delete meeting
// @Tags			Meetings
// @Param			id	path	string	true	"Meeting id"
// @Success		204
// @Router			/meetings/{id} [delete]
func (app *application) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := app.meetings.Delete(r.Context(), chi.URLParam(r, "id"), session(r)); err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
