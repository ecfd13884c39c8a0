package httpt

import (
	"net/http"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	_sessionKey      = "session"
	_slowRequest     = 200 * time.Millisecond
	_bearerPrefix    = "Bearer "
	_requestIDHeader = "X-Request-ID"
)

func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(_requestIDHeader)
		if requestID == "" {
			requestID = h.log.GenerateRequestID()
		}
		ctx := h.log.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(_requestIDHeader, requestID)

		c.Next()
	}
}

func (h *Handler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		h.log.LogAttrs(c.Request.Context(), logger.InfoLevel, "HTTP request",
			logger.String("method", method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", statusCode),
			logger.Duration("duration", latency),
			logger.String("client_ip", c.ClientIP()),
			logger.String("user_agent", c.Request.UserAgent()),
		)

		h.metrics.Request(method, path, statusCode, latency)

		if latency > _slowRequest {
			h.metrics.SlowRequest(method, path, statusCode, latency)
		}
	}
}

func (h *Handler) bodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.maxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
		}
		c.Next()
	}
}

// sessionMiddleware resolves the bearer token into an entity.Session. Requests
// without a usable token carry entity.Anonymous.
func (h *Handler) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw string
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, _bearerPrefix) {
			raw = strings.TrimSpace(strings.TrimPrefix(header, _bearerPrefix))
		}

		session := h.svc.Auth.Session(c.Request.Context(), raw)
		if caller, ok := entity.AsAuthenticated(session); ok {
			c.Request = c.Request.WithContext(h.log.WithUser(c.Request.Context(), caller.User.Email))
		}

		c.Set(_sessionKey, session)
		c.Next()
	}
}

func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := callerFrom(c); !ok {
			h.abort(c, http.StatusUnauthorized, "autenticação necessária")
			return
		}
		c.Next()
	}
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFrom(c)
		if !ok {
			h.abort(c, http.StatusUnauthorized, "autenticação necessária")
			return
		}
		if !caller.IsAdmin() {
			h.log.LogAttrs(c.Request.Context(), logger.WarnLevel, "admin route denied",
				logger.String("path", c.Request.URL.Path),
			)
			h.abort(c, http.StatusForbidden, "acesso restrito a administradores")
			return
		}
		c.Next()
	}
}

func (h *Handler) abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func sessionFrom(c *gin.Context) entity.Session {
	if v, ok := c.Get(_sessionKey); ok {
		if s, ok := v.(entity.Session); ok {
			return s
		}
	}
	return entity.Anonymous{}
}

func callerFrom(c *gin.Context) (entity.Authenticated, bool) {
	return entity.AsAuthenticated(sessionFrom(c))
}
