package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/maksimryndin/superlists/config"
)

func SetGinMode(env string) {
	if env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
}
