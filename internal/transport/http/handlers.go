package httpt

import (
	"context"
	"net/http"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/pricing"
	"goldenorders/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	_defaultContextTimeout = 500 * time.Millisecond
	_writeTimeout          = 5 * time.Second
)

// @Summary Listar pedidos
// @Description Administradores veem todos os pedidos; demais usuários apenas os próprios
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} entity.Order "Pedidos, do mais recente ao mais antigo"
// @Failure 401 {object} httpt.ErrorResponse "Autenticação necessária"
// @Failure 500 {object} httpt.ErrorResponse "Erro interno"
// @Router /orders [get]
func (h *Handler) listOrdersHandler(c *gin.Context) {
	const op = "transport.listOrdersHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	orders, err := h.svc.Orders.ListOrders(ctx, caller)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// @Summary Criar pedido
// @Description Gera um novo número de pedido, calcula os totais e grava o pedido
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body entity.Order true "Pedido"
// @Success 201 {object} entity.Order "Pedido criado"
// @Failure 400 {object} httpt.ErrorResponse "Dados inválidos"
// @Failure 401 {object} httpt.ErrorResponse "Autenticação necessária"
// @Failure 503 {object} httpt.ErrorResponse "Pedido salvo localmente"
// @Router /orders [post]
func (h *Handler) createOrderHandler(c *gin.Context) {
	const op = "transport.createOrderHandler"

	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	saved, err := h.svc.Orders.CreateOrder(ctx, caller, &order)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.log.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "order created",
		logger.String("order_id", saved.ID),
		logger.String("caller", caller.User.Email),
	)

	c.JSON(http.StatusCreated, saved)
}

// @Summary Salvar pedido
// @Description Substitui o pedido informado; cria o pedido se ele ainda não existir
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Param order body entity.Order true "Pedido"
// @Success 200 {object} entity.Order "Pedido salvo"
// @Failure 400 {object} httpt.ErrorResponse "Dados inválidos"
// @Failure 401 {object} httpt.ErrorResponse "Autenticação necessária"
// @Failure 403 {object} httpt.ErrorResponse "Sem permissão"
// @Failure 503 {object} httpt.ErrorResponse "Pedido salvo localmente"
// @Router /orders/{id} [put]
func (h *Handler) saveOrderHandler(c *gin.Context) {
	const op = "transport.saveOrderHandler"

	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	saved, err := h.svc.Orders.UpdateOrder(ctx, caller, c.Param("id"), &order)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// @Summary Obter pedido
// @Description Retorna o pedido com itens, contatos e endereços
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {object} entity.Order "Pedido"
// @Failure 401 {object} httpt.ErrorResponse "Autenticação necessária"
// @Failure 403 {object} httpt.ErrorResponse "Sem permissão"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Failure 500 {object} httpt.ErrorResponse "Erro interno"
// @Router /orders/{id} [get]
func (h *Handler) getOrderHandler(c *gin.Context) {
	const op = "transport.getOrderHandler"

	id := c.Param("id")
	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	order, err := h.svc.Orders.GetOrderFor(ctx, caller, id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.log.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "order retrieved successfully",
		logger.String("order_id", id),
	)

	c.JSON(http.StatusOK, order)
}

// @Summary Excluir pedido
// @Description Permitido ao autor do pedido e a administradores
// @Tags Orders
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 204 "Pedido excluído"
// @Failure 403 {object} httpt.ErrorResponse "Sem permissão"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id} [delete]
func (h *Handler) deleteOrderHandler(c *gin.Context) {
	const op = "transport.deleteOrderHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	if err := h.svc.Orders.DeleteOrder(ctx, caller, c.Param("id")); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Calcular totais
// @Description Recalcula itens e totais de um rascunho sem gravá-lo
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body entity.Order true "Rascunho"
// @Success 200 {object} entity.Order "Rascunho com totais"
// @Failure 400 {object} httpt.ErrorResponse "Corpo inválido"
// @Router /orders/totals [post]
func (h *Handler) totalsHandler(c *gin.Context) {
	const op = "transport.totalsHandler"

	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	pricing.Apply(&order)

	c.JSON(http.StatusOK, order)
}

// @Summary Reenviar pedidos pendentes
// @Description Grava no banco os pedidos mantidos no armazenamento local
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ReplayReport "Resultado do reenvio"
// @Failure 403 {object} httpt.ErrorResponse "Acesso restrito"
// @Router /admin/pending/replay [post]
func (h *Handler) replayPendingHandler(c *gin.Context) {
	const op = "transport.replayPendingHandler"

	report, err := h.svc.Orders.ReplayPending(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, report)
}
