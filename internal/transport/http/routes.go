package httpt

import (
	"net/http"

	_ "goldenorders/docs" // for swagger

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Golden Orders API
// @version         1.0
// @description     API de pedidos de venda da Golden Equipamentos Médicos
// @contact.name    Suporte
// @contact.email   ti@goldenpr.com.br
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func (h *Handler) setupRoutes() {
	h.router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := h.router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.signUpHandler)
		auth.POST("/signin", h.signInHandler)
		auth.POST("/signout", h.requireUser(), h.signOutHandler)
		auth.GET("/session", h.sessionHandler)
	}

	api.POST("/validate", h.checkHandler)
	api.POST("/orders/totals", h.totalsHandler)
	api.POST("/orders/:id/acceptance", h.acceptanceHandler)

	user := api.Group("", h.requireUser())
	{
		orders := user.Group("/orders")
		orders.GET("", h.listOrdersHandler)
		orders.POST("", h.createOrderHandler)
		orders.GET("/:id", h.getOrderHandler)
		orders.PUT("/:id", h.saveOrderHandler)
		orders.DELETE("/:id", h.deleteOrderHandler)
		orders.GET("/:id/xlsx", h.spreadsheetHandler)
		orders.GET("/:id/pdf", h.pdfHandler)
		orders.POST("/:id/pdf", h.archivePDFHandler)
		orders.GET("/:id/share", h.shareLinksHandler)
		orders.GET("/:id/acceptance", h.acceptanceDocumentsHandler)

		lookup := user.Group("/lookup")
		lookup.GET("/cep/:cep", h.addressHandler)
		lookup.GET("/fx/:currency", h.exchangeRateHandler)

		assist := user.Group("/assist")
		assist.POST("/description", h.rewriteDescriptionHandler)
		assist.POST("/proposal/:id", h.proposalHandler)
	}

	admin := api.Group("", h.requireAdmin())
	{
		users := admin.Group("/users")
		users.GET("", h.listUsersHandler)
		users.POST("", h.createUserHandler)
		users.PUT("/:email", h.updateUserHandler)
		users.DELETE("/:email", h.deleteUserHandler)

		admin.POST("/admin/pending/replay", h.replayPendingHandler)
	}

	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
