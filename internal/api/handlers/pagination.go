package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/chem1sto/test-moscow-metro/internal/schemas"
	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 100
)

type page struct {
	Offset int
	Limit  int
}

// parsePage reads offset and limit from the query string. Values outside
// 0 <= offset and 1 <= limit <= maxPageLimit are rejected rather than clamped.
func parsePage(r *http.Request) (page, error) {
	q := r.URL.Query()
	p := page{Offset: 0, Limit: defaultPageLimit}
	var errs schemas.ValidationError

	if raw := strings.TrimSpace(q.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Errors = append(errs.Errors, schemas.FieldError{Field: "offset", Message: "must be an integer"})
		case offset < 0:
			errs.Errors = append(errs.Errors, schemas.FieldError{Field: "offset", Message: "must be greater than or equal to 0"})
		default:
			p.Offset = offset
		}
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Errors = append(errs.Errors, schemas.FieldError{Field: "limit", Message: "must be an integer"})
		case limit < 1 || limit > maxPageLimit:
			errs.Errors = append(errs.Errors, schemas.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxPageLimit)})
		default:
			p.Limit = limit
		}
	}

	if len(errs.Errors) > 0 {
		return page{}, &errs
	}
	return p, nil
}

// pathID reads the {id} wildcard of the matched route.
func pathID(r *http.Request) (uint, error) {
	id, ok := utils.ParseID(r.PathValue("id"))
	if !ok {
		return 0, schemas.Invalid("id", "must be a positive integer")
	}
	return id, nil
}
