package database

import (
	"context"
	"errors"

	"github.com/mbolis/quick-forms/model"
)

var ErrNotFound = errors.New("not found")

// Page selects a window of a list. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

type FormStore interface {
	// ListForms returns all forms, newest created first.
	ListForms(ctx context.Context) ([]model.Form, error)
	GetForm(ctx context.Context, id string) (model.Form, error)
	InsertForm(ctx context.Context, form model.Form) error
	// ReplaceForm overwrites title, fields and updatedAt of an existing form.
	ReplaceForm(ctx context.Context, form model.Form) error
	DeleteForm(ctx context.Context, id string) error
}

type ResponseStore interface {
	// ListResponses returns the responses recorded for formID, newest
	// submitted first, whether or not the form still exists.
	ListResponses(ctx context.Context, formID string, page Page) ([]model.Response, error)
	GetResponse(ctx context.Context, id string) (model.Response, error)
	InsertResponse(ctx context.Context, resp model.Response) error
	// ReplaceResponse overwrites the answers and updatedAt of an existing response.
	ReplaceResponse(ctx context.Context, resp model.Response) error
	DeleteResponse(ctx context.Context, id string) error
}

type Store interface {
	FormStore
	ResponseStore
	Ping(ctx context.Context) error
	Close() error
}
