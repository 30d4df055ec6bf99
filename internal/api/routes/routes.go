// internal/api/routes/routes.go
package routes

import (
	"freightflow-api-server/internal/api/handlers"
	"freightflow-api-server/internal/api/middleware"
	"freightflow-api-server/internal/geo"
	"freightflow-api-server/internal/models"
	"freightflow-api-server/internal/service"
	"freightflow-api-server/internal/socket"
	"freightflow-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers onto the HTTP surface.
func SetupRouter(
	st store.Store,
	quotes *service.QuoteService,
	bookings *service.BookingService,
	shipments *service.ShipmentService,
	documents *service.DocumentService,
	geoClient *geo.Client,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	userHandler := &handlers.UserHandler{Store: st}
	quoteHandler := &handlers.QuoteHandler{Quotes: quotes}
	bookingHandler := &handlers.BookingHandler{Bookings: bookings}
	shipmentHandler := &handlers.ShipmentHandler{Shipments: shipments}
	documentHandler := &handlers.DocumentHandler{Documents: documents}
	adminHandler := &handlers.AdminHandler{Store: st}
	geoHandler := &handlers.GeoHandler{Geo: geoClient}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		// Public tracking and routing, no JWT required.
		public := apiV1.Group("/")
		{
			public.GET("/shipments/:id/tracking", shipmentHandler.GetTracking)
			public.GET("/geo/route", geoHandler.GetRoute)
		}

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize(models.RoleAdmin))
		{
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/bookings", bookingHandler.ListBookings)
			admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			quotesGroup := protected.Group("/quotes")
			{
				quotesGroup.POST("/", quoteHandler.CreateQuote)
				quotesGroup.GET("/", quoteHandler.ListMyQuotes)
				quotesGroup.GET("/:id", quoteHandler.GetQuote)
			}

			bookingsGroup := protected.Group("/bookings")
			{
				bookingsGroup.POST("/", bookingHandler.CreateBooking)
				bookingsGroup.POST("/instant", bookingHandler.InstantBook)
				bookingsGroup.GET("/", bookingHandler.ListMyBookings)
				bookingsGroup.GET("/:id", bookingHandler.GetBooking)
			}

			shipmentsGroup := protected.Group("/shipments")
			{
				shipmentsGroup.GET("/", shipmentHandler.ListShipments)
				shipmentsGroup.POST("/:id/tracking", shipmentHandler.UpsertTracking)
			}

			documentsGroup := protected.Group("/documents")
			{
				documentsGroup.POST("/", documentHandler.CreateDocument)
				documentsGroup.GET("/", documentHandler.ListMyDocuments)
				documentsGroup.GET("/:id", documentHandler.GetDocument)
				documentsGroup.POST("/:id/signature", documentHandler.SendForSignature)
				documentsGroup.POST("/:id/signature/refresh", documentHandler.RefreshEnvelope)
			}
		}
	}

	return router
}
