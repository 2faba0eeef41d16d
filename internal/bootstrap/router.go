package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/maksimryndin/superlists/internal/api/http"
	"github.com/maksimryndin/superlists/internal/api/http/middleware"
	listshttp "github.com/maksimryndin/superlists/internal/lists/http"
	"github.com/maksimryndin/superlists/internal/lists/repository"
	"github.com/maksimryndin/superlists/internal/lists/service"
	"github.com/maksimryndin/superlists/internal/web"
)

type RouterDeps struct {
	ServiceName        string
	Version            string
	Store              repository.Repository
	StaticDir          string
	CORSAllowedOrigins []string
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if len(dep.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  dep.CORSAllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	views, err := web.NewViews()
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	r.HTMLRender = views

	r.StaticFS("/static", web.StaticFileSystem(dep.StaticDir))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	listsHandler := listshttp.New(service.NewListService(dep.Store))
	listsHandler.Register(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, web.ErrorView, web.ErrorPage{
			Status:  http.StatusNotFound,
			Message: "Page not found.",
		})
	})

	return r, nil
}
