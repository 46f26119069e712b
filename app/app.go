package app

import (
	"time"

	"github.com/mbolis/quick-forms/config"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/model"
)

type App struct {
	database.Store
	config.Config

	Now   func() time.Time
	NewID func() string
}

func New(store database.Store, cfg config.Config) App {
	return App{
		Store:  store,
		Config: cfg,
		Now:    func() time.Time { return time.Now().UTC() },
		NewID:  model.NewID,
	}
}
