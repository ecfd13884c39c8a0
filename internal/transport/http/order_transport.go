package httpt

import (
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc          Services
	log          logger.Logger
	metrics      metric.HTTP
	router       *gin.Engine
	maxBodyBytes int64
}

func NewHandler(
	svc Services,
	log logger.Logger,
	metrics metric.HTTP,
	maxBodyBytes int64,
) *Handler {
	h := &Handler{
		svc:          svc,
		log:          log,
		metrics:      metrics,
		maxBodyBytes: maxBodyBytes,
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(h.bodyLimitMiddleware())
	router.Use(h.sessionMiddleware())

	h.router = router

	h.setupRoutes()

	return h
}

func (h *Handler) Engine() *gin.Engine {
	return h.router
}
