package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/middleware"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/routes"
)

func main() {

	lib.InitLogger()
	defer lib.SyncLogger()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://frontend-service:5173, http://localhost:5173",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(middleware.RequestID)

	// Connect to SQLite database
	lib.ConnectDB()

	lib.AutoMigrate()

	// Register routes
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.PostRoutes(app)
	routes.MessageRoutes(app)
	routes.NotificationRoutes(app)
	routes.AdRoutes(app)

	// Get the server port from environment variable or use default
	var port string = os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Serve static files from the public directory
	app.Static("/", "./public")

	lib.Log.Infow("server is running", "port", port)
	// Start the Fiber server on the specified port
	if err := app.Listen(":" + port); err != nil {
		lib.Log.Fatalw("server stopped", "error", err)
	}
}
