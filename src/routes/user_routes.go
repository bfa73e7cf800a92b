package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/controllers"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/middleware"
)

// UserRoutes sets up user-related routes for suggestions, profiles, carrier references, and verification
func UserRoutes(app *fiber.App) {
	user := app.Group("/api/v1/users", middleware.ProtectRoute)

	user.Get("/suggestions", controllers.GetSuggestedConnections)
	user.Put("/profile", controllers.UpdateProfile)
	user.Post("/profile/carriers", controllers.AddCarrierReference)
	user.Delete("/profile/carriers/:id", controllers.RemoveCarrierReference)
	user.Post("/profile/carriers/reverify", controllers.ReverifyCarrierReferences)
	user.Get("/:username/verification", controllers.GetVerificationStatus)
	user.Get("/:username", controllers.GetPublicProfile)
}
