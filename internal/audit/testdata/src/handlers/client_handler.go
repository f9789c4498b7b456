package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

type ClientHandler struct {
	db *gorm.DB
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var names []string

	h.db.WithContext(r.Context()).Find(&names)
}
