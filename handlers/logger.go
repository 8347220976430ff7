package handlers

import (
	"staybook/middleware"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the application logger annotated with the request route
// and, when known, the caller.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger().With(
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	if actor := middleware.CurrentActor(c); !actor.IsAnonymous() {
		logger = logger.With(zap.String("userId", actor.ID))
	}
	return logger
}
