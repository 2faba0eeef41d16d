package http

import "github.com/gin-gonic/gin"

// Register attaches the home page and list routes to the router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.home)

	lists := r.Group("/lists")
	lists.POST("/new", h.createList)
	lists.GET("/:id/", h.showList)
	lists.POST("/:id/add-item", h.addItem)
}
