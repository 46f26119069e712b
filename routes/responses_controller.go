package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-forms/app"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
	"github.com/mbolis/quick-forms/model"
	"github.com/mbolis/quick-forms/validation"
	"github.com/pkg/errors"
)

type responseRequest struct {
	Responses []model.Answer `json:"responses"`
}

// ListFormResponses lists responses by form id, even for deleted forms.
func ListFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		page, err := parsePage(r)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.page", err.Error())
			return
		}

		responses, err := app.ListResponses(r.Context(), formId, page)
		if err != nil {
			httpx.LogInternalError(w, r, "db.list_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		req := responseRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid response: %s", err)
			return
		}

		form, ok := loadForm(app, w, r, formId)
		if !ok {
			return
		}

		if err = validation.ValidateAnswers(form, req.Responses); err != nil {
			httpx.LogInvalid(w, r, "submit_response.schema", "Response validation failed", validation.Messages(err))
			return
		}
		if err = validation.ValidateResponse(form, req.Responses); err != nil {
			httpx.LogMissingFields(w, r, "submit_response.validate", validation.MissingLabels(err))
			return
		}

		resp := model.Response{
			ID:          app.NewID(),
			FormID:      form.ID,
			Answers:     nonNil(req.Responses),
			SubmittedAt: app.Now(),
		}
		err = app.InsertResponse(r.Context(), resp)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_response", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

func UpdateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")
		responseId := chi.URLParam(r, "responseId")

		req := responseRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid response: %s", err)
			return
		}

		form, ok := loadForm(app, w, r, formId)
		if !ok {
			return
		}
		resp, ok := loadResponse(app, w, r, formId, responseId)
		if !ok {
			return
		}

		if err = validation.ValidateAnswers(form, req.Responses); err != nil {
			httpx.LogInvalid(w, r, "update_response.schema", "Response validation failed", validation.Messages(err))
			return
		}
		if err = validation.ValidateResponse(form, req.Responses); err != nil {
			httpx.LogMissingFields(w, r, "update_response.validate", validation.MissingLabels(err))
			return
		}

		now := app.Now()
		resp.Answers = nonNil(req.Responses)
		resp.UpdatedAt = &now
		err = app.ReplaceResponse(r.Context(), resp)
		switch {
		case errors.Is(err, database.ErrNotFound):
			httpx.LogNotFound(w, r, "update_response", "Response", responseId)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.update_response", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message":  "Response updated successfully",
			"response": resp,
		})
	}
}

func DeleteResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")
		responseId := chi.URLParam(r, "responseId")

		if _, ok := loadForm(app, w, r, formId); !ok {
			return
		}
		if _, ok := loadResponse(app, w, r, formId, responseId); !ok {
			return
		}

		err := app.DeleteResponse(r.Context(), responseId)
		switch {
		case errors.Is(err, database.ErrNotFound):
			httpx.LogNotFound(w, r, "delete_response", "Response", responseId)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.delete_response", err)
			return
		}

		httpx.WriteMessage(w, r, http.StatusOK, "Response deleted successfully")
	}
}

// loadResponse resolves a response that belongs to formId.
func loadResponse(app app.App, w http.ResponseWriter, r *http.Request, formId, responseId string) (model.Response, bool) {
	resp, err := app.GetResponse(r.Context(), responseId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		httpx.LogNotFound(w, r, "get_response", "Response", responseId)
		return resp, false
	case err != nil:
		httpx.LogInternalError(w, r, "db.get_response", err)
		return resp, false
	case resp.FormID != formId:
		httpx.LogNotFound(w, r, "get_response.form_mismatch", "Response", responseId)
		return resp, false
	}
	return resp, true
}

func nonNil(answers []model.Answer) []model.Answer {
	if answers == nil {
		return []model.Answer{}
	}
	return answers
}
