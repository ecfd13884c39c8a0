package httpt

import (
	"context"
	"errors"
	"net/http"

	"goldenorders/internal/entity"
	"goldenorders/pkg/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleServiceError(c *gin.Context, err error, op string) {
	ctx := c.Request.Context()
	log := h.log.Ctx(ctx)

	switch {
	case errors.Is(err, entity.ErrStoredLocally):
		log.LogAttrs(ctx, logger.WarnLevel, "order kept in local fallback store",
			logger.String("op", op),
			logger.Err(err),
		)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "banco de dados indisponível; pedido salvo localmente e será sincronizado",
		})
	case errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "e-mail ou senha inválidos"})
	case errors.Is(err, entity.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "autenticação necessária"})
	case errors.Is(err, entity.ErrProtectedAccount),
		errors.Is(err, entity.ErrSelfDeletion),
		errors.Is(err, entity.ErrForbidden):
		log.LogAttrs(ctx, logger.WarnLevel, "operation forbidden",
			logger.String("op", op),
			logger.Err(err),
			logger.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusForbidden, ErrorResponse{Error: forbiddenMessage(err)})
	case errors.Is(err, entity.ErrInvalidData):
		log.LogAttrs(ctx, logger.WarnLevel, "invalid request data",
			logger.String("op", op),
			logger.Err(err),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrDataNotFound):
		log.LogAttrs(ctx, logger.WarnLevel, "resource not found",
			logger.String("op", op),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "registro não encontrado"})
	case errors.Is(err, entity.ErrConflictingData):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "registro já existe"})
	case errors.Is(err, context.DeadlineExceeded):
		log.LogAttrs(ctx, logger.WarnLevel, "request timeout",
			logger.String("op", op),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "tempo de resposta esgotado"})
	default:
		log.LogAttrs(ctx, logger.ErrorLevel, "internal server error",
			logger.String("op", op),
			logger.Err(err),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "erro interno do servidor"})
	}
}

func forbiddenMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrProtectedAccount):
		return "a conta do administrador principal não pode ser alterada"
	case errors.Is(err, entity.ErrSelfDeletion):
		return "não é possível excluir a própria conta"
	default:
		return "operação não permitida"
	}
}

func (h *Handler) handleBadRequest(c *gin.Context, op string, err error) {
	h.log.Ctx(c.Request.Context()).LogAttrs(c.Request.Context(), logger.WarnLevel, "malformed request body",
		logger.String("op", op),
		logger.Err(err),
		logger.String("remote_addr", c.ClientIP()),
	)

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "corpo da requisição inválido"})
}
