package routes

import (
	"net/http"
	"time"

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

type formRequest struct {
	Title  string        `json:"title"`
	Fields []model.Field `json:"fields"`
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.ListForms(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.list_forms", err)
			return
		}

		render.JSON(w, r, forms)
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, ok := loadForm(app, w, r, formId)
		if !ok {
			return
		}

		body := map[string]any{"form": form}
		if r.URL.Query().Get("fetchFormResponse") == "true" {
			page, err := parsePage(r)
			if err != nil {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.page", err.Error())
				return
			}
			responses, err := app.ListResponses(r.Context(), formId, page)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_form.responses", err)
				return
			}
			body["responses"] = responses
		}

		render.JSON(w, r, body)
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := formRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid form: %s", err)
			return
		}

		now := app.Now()
		form := model.Form{
			ID:        app.NewID(),
			Title:     req.Title,
			Fields:    validation.AssignFieldIDs(req.Fields, app.NewID),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = validation.ValidateForm(form); err != nil {
			httpx.LogInvalid(w, r, "create_form.validate", "Form validation failed", validation.Messages(err))
			return
		}

		err = app.InsertForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		req := formRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "invalid form: %s", err)
			return
		}

		form, ok := loadForm(app, w, r, formId)
		if !ok {
			return
		}

		form.Title = req.Title
		form.Fields = validation.MergeFieldIDs(form.Fields, req.Fields, app.NewID)
		form.UpdatedAt = app.Now()
		if err = validation.ValidateForm(form); err != nil {
			httpx.LogInvalid(w, r, "update_form.validate", "Form validation failed", validation.Messages(err))
			return
		}

		err = app.ReplaceForm(r.Context(), form)
		switch {
		case errors.Is(err, database.ErrNotFound):
			httpx.LogNotFound(w, r, "update_form", "Form", formId)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.update_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

// DeleteForm removes the form only; its responses stay queryable by form id.
func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		err := app.DeleteForm(r.Context(), formId)
		switch {
		case errors.Is(err, database.ErrNotFound):
			httpx.LogNotFound(w, r, "delete_form", "Form", formId)
			return
		case err != nil:
			httpx.LogInternalError(w, r, "db.delete_form", err)
			return
		}

		httpx.WriteMessage(w, r, http.StatusOK, "Form deleted successfully")
	}
}

type tableCell struct {
	FieldID string               `json:"fieldId"`
	Label   string               `json:"label"`
	Type    model.FieldType      `json:"type"`
	State   validation.CellState `json:"state"`
	Display string               `json:"display"`
}

type tableRow struct {
	ID          string      `json:"id"`
	SubmittedAt time.Time   `json:"submittedAt"`
	Cells       []tableCell `json:"cells"`
}

// GetFormTable returns the responses of a form reconciled with its current
// fields, ready to be rendered as a table.
func GetFormTable(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		page, err := parsePage(r)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.page", err.Error())
			return
		}

		form, ok := loadForm(app, w, r, formId)
		if !ok {
			return
		}

		responses, err := app.ListResponses(r.Context(), formId, page)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form_table.responses", err)
			return
		}

		rows := []tableRow{}
		for _, row := range validation.ReconcileAll(form, responses) {
			tr := tableRow{ID: row.ResponseID, SubmittedAt: row.SubmittedAt, Cells: []tableCell{}}
			for _, c := range row.Cells {
				tr.Cells = append(tr.Cells, tableCell{
					FieldID: c.Field.ID,
					Label:   c.Field.Label,
					Type:    c.Field.Type,
					State:   c.State,
					Display: c.Display(),
				})
			}
			rows = append(rows, tr)
		}

		render.JSON(w, r, map[string]any{
			"form": form,
			"rows": rows,
		})
	}
}

func Health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.Ping(r.Context()); err != nil {
			log.Errorf("health.ping: %s", err)
			httpx.WriteMessage(w, r, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		httpx.WriteMessage(w, r, http.StatusOK, "ok")
	}
}

func loadForm(app app.App, w http.ResponseWriter, r *http.Request, formId string) (model.Form, bool) {
	form, err := app.GetForm(r.Context(), formId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		httpx.LogNotFound(w, r, "get_form", "Form", formId)
		return form, false
	case err != nil:
		httpx.LogInternalError(w, r, "db.get_form", err)
		return form, false
	}
	return form, true
}
