package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/salesdoc-api/internal/config"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/middleware"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

// Roles allowed to change the business profile and delete documents.
var managerRoles = []string{"owner", "admin"}

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Business  *handler.BusinessHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Document  *handler.DocumentHandler
	Render    *handler.RenderHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	// Done stops background work such as rate limiter cleanup.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewBusinessRateLimiter(
		middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
		deps.Done,
	)

	v1 := router.Group("/api/v1")
	{
		// Opened by the browser viewer; the handle is the credential.
		v1.GET("/previews/:handle", rateLimiter.Middleware(), h.Render.Preview)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerBusinessRoutes(protected, h)
		registerCustomerRoutes(protected, h)
		registerProductRoutes(protected, h)
		registerCategoryRoutes(protected, h)
		registerDocumentRoutes(protected, h)
		registerDashboardRoutes(protected, h)

		protected.POST("/render", h.Render.RenderDraft)
		protected.GET("/output/status", h.Render.OutputStatus)
	}

	return router
}

func registerBusinessRoutes(rg *gin.RouterGroup, h *Handlers) {
	business := rg.Group("/business")
	{
		business.GET("", h.Business.Get)
		business.POST("", h.Business.Create)
		business.PUT("", middleware.RequireRole(managerRoles...), h.Business.Update)
		business.POST("/logo", middleware.RequireRole(managerRoles...), h.Business.UploadLogo)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCategoryRoutes(rg *gin.RouterGroup, h *Handlers) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerDashboardRoutes(rg *gin.RouterGroup, h *Handlers) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Dashboard.Summary)
		dashboard.GET("/trends", h.Dashboard.Trends)
		dashboard.GET("/ranking", h.Dashboard.Ranking)
	}
}

func registerDocumentRoutes(rg *gin.RouterGroup, h *Handlers) {
	documents := rg.Group("/documents")
	{
		documents.GET("", h.Document.List)
		documents.GET("/draft", h.Document.Draft)
		documents.POST("", h.Document.Create)
		documents.GET("/:id", h.Document.Get)
		documents.PUT("/:id", h.Document.Update)
		documents.PATCH("/:id/status", h.Document.UpdateStatus)
		documents.DELETE("/:id", middleware.RequireRole(managerRoles...), h.Document.Delete)
		documents.POST("/:id/invoice", h.Document.CreateInvoice)
		documents.POST("/:id/billing-note", h.Document.CreateBillingNote)
		documents.POST("/:id/payment-proof", h.Document.UploadPaymentProof)
		documents.POST("/:id/render", h.Render.Render)
	}
}
