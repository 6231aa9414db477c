package routes

import (
	"github.com/gin-gonic/gin"

	"relocation-admin-api/handlers"
	"relocation-admin-api/middleware"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)

		// Status transition table (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Dashboard routes (consultant session required) ─────────────
	dashboard := r.Group("/api/dashboard")
	dashboard.Use(middleware.AuthRequired())
	{
		// Orders: pipeline, composition, edit, delete
		dashboard.GET("/orders", handlers.ListOrders)
		dashboard.POST("/orders", handlers.ComposeOrder)
		dashboard.GET("/orders/:id", handlers.GetOrderDetail)
		dashboard.PUT("/orders/:id", handlers.UpdateOrder)
		dashboard.DELETE("/orders/:id", handlers.DeleteOrder)

		// People management
		dashboard.GET("/customers", handlers.ListCustomers)
		dashboard.GET("/customers/archived", handlers.ListArchivedCustomers)
		dashboard.GET("/consultants", handlers.ListConsultants)
		dashboard.POST("/persons", handlers.CreatePerson)
		dashboard.PUT("/persons/:id", handlers.UpdatePerson)
		dashboard.POST("/customers/:id/archive", handlers.ArchiveCustomer)
		dashboard.POST("/customers/:id/restore", handlers.RestoreCustomer)

		// Aggregate statistics
		dashboard.GET("/statistics", handlers.GetStatistics)
	}
}
