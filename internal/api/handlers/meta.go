package handlers

import (
	"fmt"
	"net/http"

	"github.com/chem1sto/test-moscow-metro/internal/utils"
)

type MetaHandler struct {
	title       string
	description string
}

func NewMetaHandler(title, description string) *MetaHandler {
	return &MetaHandler{title: title, description: description}
}

// GET /
func (h *MetaHandler) Root(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"title":       h.title,
		"description": h.description,
	})
}

// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
