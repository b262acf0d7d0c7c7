package main

import (
	"log"
	"strings"

	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/catalog"
	"foodcost-backend/internal/config"
	"foodcost-backend/internal/database"
	"foodcost-backend/internal/export"
	"foodcost-backend/internal/inventory"
	"foodcost-backend/internal/price"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// JWT_SECRET tanımlıysa API bearer token ister
	protected := api.Group("")
	if cfg.JWTSecret != "" {
		api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
		api.Post("/auth/login", auth.LoginHandler(cfg))
		protected.Use(auth.JWTMiddleware(cfg))
		protected.Get("/auth/me", auth.MeHandler())
	}

	// Envanter
	protected.Get("/inventory/months", inventory.ListMonthsHandler())
	protected.Get("/inventory", inventory.ListInventoryHandler())
	protected.Get("/inventory/:id", inventory.GetInventoryItemHandler())
	protected.Put("/inventory/:id", inventory.UpdateInventoryItemHandler())
	protected.Post("/inventory", inventory.AddInventoryItemHandler())
	protected.Delete("/inventory/:id", inventory.DeleteInventoryItemHandler())
	protected.Post("/inventory/clear-counts", inventory.ClearCountsHandler())

	// Fiyatlar
	protected.Get("/prices", price.ListPricesHandler())
	protected.Get("/prices/:id", price.GetPriceItemHandler())
	protected.Post("/prices", price.AddPriceItemHandler())
	protected.Put("/prices/:id/edit", price.EditPriceItemHandler())
	protected.Put("/prices/:id/archive", price.ArchivePriceItemHandler())
	protected.Put("/prices/:id", price.UpdatePriceHandler())
	protected.Delete("/prices/:id", price.DeletePriceItemHandler())
	protected.Post("/prices/sync", price.SyncHandler())

	// Katalog
	protected.Get("/suppliers", catalog.ListSuppliersHandler())
	protected.Post("/suppliers", catalog.AddSupplierHandler())
	protected.Put("/suppliers/:id", catalog.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", catalog.DeleteSupplierHandler())

	protected.Get("/locations", catalog.ListLocationsHandler())
	protected.Post("/locations", catalog.AddLocationHandler())
	protected.Put("/locations/:id", catalog.UpdateLocationHandler())
	protected.Delete("/locations/:id", catalog.DeleteLocationHandler())

	protected.Get("/stores", catalog.ListStoresHandler())
	protected.Post("/stores", catalog.AddStoreHandler())
	protected.Put("/stores/:id", catalog.UpdateStoreHandler())
	protected.Delete("/stores/:id", catalog.DeleteStoreHandler())

	// Export / Import
	protected.Get("/export/inventory", export.ExportInventoryHandler())
	protected.Get("/export/prices", export.ExportPricesHandler())
	protected.Post("/import/prices", export.ImportPricesHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
