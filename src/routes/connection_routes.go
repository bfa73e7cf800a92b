package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/controllers"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/middleware"
)

// ConnectionRoutes sets up the connection request lifecycle routes
func ConnectionRoutes(app *fiber.App) {
	connection := app.Group("/api/v1/connections", middleware.ProtectRoute)

	connection.Post("/request/:userId", controllers.SendConnectionRequest)
	connection.Put("/accept/:requestId", controllers.AcceptConnectionRequest)
	connection.Put("/reject/:requestId", controllers.RejectConnectionRequest)
	connection.Get("/requests", controllers.GetConnectionRequests)
	connection.Get("/status/:userId", controllers.GetConnectionStatus)
	connection.Get("/", controllers.GetUserConnections)
	connection.Delete("/:userId", controllers.RemoveConnection)
}
