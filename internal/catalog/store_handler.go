package catalog

import (
	"strings"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		resp := make([]NameResponse, 0, len(stores))
		for _, s := range stores {
			resp = append(resp, NameResponse{ID: s.ID, Name: s.Name})
		}
		return c.JSON(resp)
	}
}

// POST /api/stores
func AddStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı zorunlu")
		}

		var existing models.Store
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Mağaza zaten mevcut")
		}

		store := models.Store{Name: name}
		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(NameResponse{ID: store.ID, Name: store.Name})
	}
}

// PUT /api/stores/:id
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var store models.Store
		if err := database.DB.First(&store, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı zorunlu")
		}

		var existing models.Store
		if err := database.DB.Where("name = ? AND id <> ?", name, store.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Mağaza zaten mevcut")
		}

		store.Name = name
		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza güncellenemedi")
		}

		return c.JSON(NameResponse{ID: store.ID, Name: store.Name})
	}
}

// DELETE /api/stores/:id
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var store models.Store
		if err := database.DB.First(&store, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		if err := database.DB.Delete(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza silinemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
