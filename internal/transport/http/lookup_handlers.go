package httpt

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const _lookupTimeout = 10 * time.Second

// @Summary Consultar CEP
// @Tags Lookup
// @Produce json
// @Security BearerAuth
// @Param cep path string true "CEP com ou sem máscara"
// @Success 200 {object} viacep.Result "Endereço"
// @Failure 400 {object} httpt.ErrorResponse "CEP inválido"
// @Failure 404 {object} httpt.ErrorResponse "CEP não encontrado"
// @Router /lookup/cep/{cep} [get]
func (h *Handler) addressHandler(c *gin.Context) {
	const op = "transport.addressHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), _lookupTimeout)
	defer cancel()

	addr, err := h.svc.Lookup.Address(ctx, c.Param("cep"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// @Summary Cotação de moeda
// @Description Cotação atual em reais. O campo rate vem nulo quando a cotação não está disponível
// @Tags Lookup
// @Produce json
// @Security BearerAuth
// @Param currency path string true "Real, Euro ou US$"
// @Success 200 {object} service.ExchangeRate "Cotação"
// @Failure 400 {object} httpt.ErrorResponse "Moeda desconhecida"
// @Router /lookup/fx/{currency} [get]
func (h *Handler) exchangeRateHandler(c *gin.Context) {
	const op = "transport.exchangeRateHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), _lookupTimeout)
	defer cancel()

	rate, err := h.svc.Lookup.ExchangeRate(ctx, c.Param("currency"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, rate)
}

// @Summary Reescrever descrição
// @Description Reescreve a descrição de um item em linguagem técnica
// @Tags Assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httpt.DescriptionRequest true "Descrição original"
// @Success 200 {object} httpt.DescriptionResponse "Descrição sugerida"
// @Router /assist/description [post]
func (h *Handler) rewriteDescriptionHandler(c *gin.Context) {
	const op = "transport.rewriteDescriptionHandler"

	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _documentTimeout)
	defer cancel()

	c.JSON(http.StatusOK, DescriptionResponse{
		Description: h.svc.Lookup.RewriteDescription(ctx, req.Description),
	})
}

// @Summary Validar campo
// @Description Valida e formata CPF/CNPJ, telefone ou CEP
// @Tags Lookup
// @Accept json
// @Produce json
// @Param request body httpt.CheckRequest true "Tipo (document, phone, cep) e valor"
// @Success 200 {object} service.FieldCheck "Resultado"
// @Failure 400 {object} httpt.ErrorResponse "Tipo desconhecido"
// @Router /validate [post]
func (h *Handler) checkHandler(c *gin.Context) {
	const op = "transport.checkHandler"

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	check, err := h.svc.Lookup.Check(req.Kind, req.Value)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, check)
}
