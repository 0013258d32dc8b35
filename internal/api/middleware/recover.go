package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

// Recover turns a panicking handler into a 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				if rv == http.ErrAbortHandler {
					panic(rv)
				}
				log.Printf("request_id=%s panic: %v\n%s", RequestID(r.Context()), rv, debug.Stack())
				utils.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
