package httpt

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/service"
	"goldenorders/pkg/logger"

	"github.com/gin-gonic/gin"
)

const _documentTimeout = 20 * time.Second

// @Summary Baixar planilha
// @Tags Documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {file} file "Planilha do pedido"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id}/xlsx [get]
func (h *Handler) spreadsheetHandler(c *gin.Context) {
	h.download(c, "transport.spreadsheetHandler", h.svc.Exports.Spreadsheet)
}

// @Summary Baixar PDF
// @Tags Documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {file} file "PDF do pedido"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id}/pdf [get]
func (h *Handler) pdfHandler(c *gin.Context) {
	h.download(c, "transport.pdfHandler", h.svc.Exports.PDF)
}

func (h *Handler) download(
	c *gin.Context,
	op string,
	render func(context.Context, entity.Authenticated, string) (*service.File, error),
) {
	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _documentTimeout)
	defer cancel()

	file, err := render(ctx, caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary Arquivar PDF
// @Description Gera o PDF, envia ao armazenamento e registra o link no pedido
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {object} entity.Order "Pedido com link do PDF"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id}/pdf [post]
func (h *Handler) archivePDFHandler(c *gin.Context) {
	const op = "transport.archivePDFHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _documentTimeout)
	defer cancel()

	order, err := h.svc.Exports.ArchivePDF(ctx, caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, order)
}

// @Summary Links de compartilhamento
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Param body query string false "Texto do e-mail"
// @Success 200 {object} service.ShareLinks "Links de WhatsApp e e-mail"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id}/share [get]
func (h *Handler) shareLinksHandler(c *gin.Context) {
	const op = "transport.shareLinksHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	links, err := h.svc.Exports.ShareLinks(ctx, caller, c.Param("id"), c.Query("body"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, links)
}

// @Summary Texto da proposta
// @Description Redige o e-mail que acompanha a proposta
// @Tags Assist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {object} httpt.ProposalResponse "Texto sugerido"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /assist/proposal/{id} [post]
func (h *Handler) proposalHandler(c *gin.Context) {
	const op = "transport.proposalHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _documentTimeout)
	defer cancel()

	msg, err := h.svc.Exports.ProposalMessage(ctx, caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, ProposalResponse{Message: msg})
}

// @Summary Aceite digital
// @Description Registra o aceite do cliente, confirma o pedido e gera o comprovante
// @Tags Acceptance
// @Accept json
// @Produce json
// @Param id path string true "Número do pedido"
// @Param acceptance body entity.AcceptanceRequest true "Dados do signatário"
// @Success 201 {object} entity.AcceptanceReceipt "Comprovante"
// @Failure 400 {object} httpt.ErrorResponse "Dados inválidos"
// @Failure 404 {object} httpt.ErrorResponse "Pedido não encontrado"
// @Router /orders/{id}/acceptance [post]
func (h *Handler) acceptanceHandler(c *gin.Context) {
	const op = "transport.acceptanceHandler"

	var req entity.AcceptanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}
	req.UserAgent = c.Request.UserAgent()
	req.IPAddress = c.ClientIP()

	ctx, cancel := context.WithTimeout(c.Request.Context(), _documentTimeout)
	defer cancel()

	receipt, err := h.svc.Acceptance.Accept(ctx, c.Param("id"), req)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	if receipt.Warning != "" {
		h.log.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "acceptance stored with warning",
			logger.String("order_id", c.Param("id")),
			logger.String("warning", receipt.Warning),
		)
	}

	c.JSON(http.StatusCreated, receipt)
}

// @Summary Comprovantes de aceite
// @Tags Acceptance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Número do pedido"
// @Success 200 {array} entity.AcceptanceDocument "Comprovantes arquivados"
// @Router /orders/{id}/acceptance [get]
func (h *Handler) acceptanceDocumentsHandler(c *gin.Context) {
	const op = "transport.acceptanceDocumentsHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	docs, err := h.svc.Acceptance.Documents(ctx, caller, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, docs)
}
