package routes

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/mbolis/quick-forms/database"
)

const maxPageSize = 500

// parsePage reads the optional page (1-based) and limit query parameters.
func parsePage(r *http.Request) (database.Page, error) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), 0)
	if err != nil || limit < 0 {
		return database.Page{}, errors.New("limit must be a non-negative integer")
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		return database.Page{}, errors.New("page must be a positive integer")
	}
	if limit == 0 {
		if page > 1 {
			return database.Page{}, errors.New("page requires limit")
		}
		return database.Page{}, nil
	}
	if page-1 > math.MaxInt/limit {
		return database.Page{}, errors.New("page out of range")
	}
	return database.Page{Offset: (page - 1) * limit, Limit: limit}, nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
