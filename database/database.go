package database

import (
	"context"
	"strings"
	"time"

	"github.com/mbolis/quick-forms/config"
	"github.com/pkg/errors"
)

// Open connects to the store named by cfg.DBUrl: a MongoDB deployment for
// mongodb:// and mongodb+srv:// URLs, a SQLite file otherwise.
func Open(cfg config.Config) (Store, error) {
	if isMongoURL(cfg.DBUrl) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m, err := OpenMongo(ctx, cfg.DBUrl)
		if err != nil {
			return nil, errors.Wrap(err, "mongo")
		}
		return m, nil
	}

	s, err := OpenSQLite(cfg.DBUrl)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite")
	}
	return s, nil
}

func isMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://")
}

func notFound(kind, id string) error {
	return errors.Wrapf(ErrNotFound, "%s %s", kind, id)
}
