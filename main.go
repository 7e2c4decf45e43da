package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"savoria/initializers"
	"savoria/routes"
)

func init() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatalln("Failed to load environment variables!", err.Error())
	}
	initializers.ConnectDB(&config)
	initializers.ConnectRedis(&config)
	initializers.ConnectAMQP(&config)

	if err := initializers.MigrateModels(initializers.DB); err != nil {
		log.Fatalln("Failed to run migrations!", err.Error())
	}
}

func main() {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.AppConfig.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))

	routes.Register(app)
	routes.NotFoundRoute(app)

	log.Fatal(app.Listen(":" + initializers.AppConfig.ServerPort))
}
