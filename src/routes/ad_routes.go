package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/controllers"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/middleware"
)

// AdRoutes sets up sponsored-ad routes for placements, management, and counters
func AdRoutes(app *fiber.App) {
	ad := app.Group("/api/v1/ads", middleware.ProtectRoute)

	ad.Get("/placements", controllers.GetAdPlacements)
	ad.Post("/", controllers.CreateAd)
	ad.Put("/:id", controllers.UpdateAd)
	ad.Post("/:id/impression", controllers.RecordAdImpression)
	ad.Post("/:id/click", controllers.RecordAdClick)
}
