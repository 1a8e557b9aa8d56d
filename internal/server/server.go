package server

import (
	"campus-commerce/internal/handler"
	customMiddleware "campus-commerce/internal/middleware"
	"campus-commerce/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	catalogHandler  *handler.CatalogHandler
	billingHandler  *handler.BillingHandler
	jwtSecret       string
}

func NewServer(
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	billingService service.BillingService,
	jwtSecret string,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		billingHandler:  handler.NewBillingHandler(billingService),
		jwtSecret:       jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api := s.echo.Group("/api", customMiddleware.OperatorAuth(s.jwtSecret))

	api.GET("/catalogs/active", s.catalogHandler.ListActive)
	api.POST("/catalogs", s.catalogHandler.Save)

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("", s.checkoutHandler.Checkout)
	checkout.POST("/pin-verify", s.checkoutHandler.VerifyPin)

	// -------- recurring billing --------
	api.GET("/recurring-payments/:scopeID/status", s.billingHandler.RecurringStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
