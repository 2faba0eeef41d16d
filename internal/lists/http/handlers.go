package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maksimryndin/superlists/internal/lists/domain"
	"github.com/maksimryndin/superlists/internal/logging"
	"github.com/maksimryndin/superlists/internal/web"
)

func (h *Handler) home(c *gin.Context) {
	c.HTML(http.StatusOK, web.HomeView, web.HomePage{})
}

func (h *Handler) createList(c *gin.Context) {
	text := c.PostForm(itemTextField)

	list, err := h.svc.CreateList(c.Request.Context(), text)
	if errors.Is(err, domain.ErrEmptyItem) {
		c.HTML(http.StatusOK, web.HomeView, web.HomePage{Error: domain.EmptyItemMessage})
		return
	}
	if err != nil {
		h.serverError(c, "create list", err)
		return
	}

	c.Redirect(http.StatusFound, domain.ListPath(list.ID))
}

func (h *Handler) showList(c *gin.Context) {
	id, ok := listID(c)
	if !ok {
		notFound(c)
		return
	}

	view, err := h.svc.GetList(c.Request.Context(), id)
	if errors.Is(err, domain.ErrListNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		h.serverError(c, "show list", err)
		return
	}

	c.HTML(http.StatusOK, web.ListView, web.ListPage{List: view.List, Items: view.Items})
}

func (h *Handler) addItem(c *gin.Context) {
	id, ok := listID(c)
	if !ok {
		notFound(c)
		return
	}
	text := c.PostForm(itemTextField)

	_, err := h.svc.AddItem(c.Request.Context(), id, text)
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		notFound(c)
		return
	case errors.Is(err, domain.ErrEmptyItem):
		view, err := h.svc.GetList(c.Request.Context(), id)
		if err != nil {
			h.serverError(c, "add item", err)
			return
		}
		c.HTML(http.StatusOK, web.ListView, web.ListPage{
			List:  view.List,
			Items: view.Items,
			Error: domain.EmptyItemMessage,
		})
		return
	case err != nil:
		h.serverError(c, "add item", err)
		return
	}

	c.Redirect(http.StatusFound, domain.ListPath(id))
}

func listID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, web.ErrorView, web.ErrorPage{
		Status:  http.StatusNotFound,
		Message: "List not found.",
	})
}

func (h *Handler) serverError(c *gin.Context, operation string, err error) {
	logging.FromContext(c.Request.Context()).
		WithField("operation", operation).
		WithError(err).
		Error("request failed")
	c.HTML(http.StatusInternalServerError, web.ErrorView, web.ErrorPage{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong.",
	})
}
