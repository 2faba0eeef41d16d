package http

import "github.com/maksimryndin/superlists/internal/lists/service"

// Handler bundles the dependencies for the list pages.
type Handler struct {
	svc *service.ListService
}

func New(svc *service.ListService) *Handler {
	return &Handler{svc: svc}
}

const itemTextField = "item-text"
