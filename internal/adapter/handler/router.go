package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Routes interface {
	Register(r gin.IRouter)
}

// NewRouter mounts every Routes under /api behind the identity middleware.
func NewRouter(service string, log *zap.Logger, routes ...Routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": service})
	})

	api := r.Group("/api", Identity())
	for _, rt := range routes {
		rt.Register(api)
	}
	return r
}
