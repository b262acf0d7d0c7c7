package catalog

import (
	"strings"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/locations
func ListLocationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var locations []models.Location
		if err := database.DB.Order("name asc").Find(&locations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lokasyonlar listelenemedi")
		}

		resp := make([]NameResponse, 0, len(locations))
		for _, l := range locations {
			resp = append(resp, NameResponse{ID: l.ID, Name: l.Name})
		}
		return c.JSON(resp)
	}
}

// POST /api/locations
func AddLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Lokasyon adı zorunlu")
		}

		var existing models.Location
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Lokasyon zaten mevcut")
		}

		location := models.Location{Name: name}
		if err := database.DB.Create(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lokasyon kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(NameResponse{ID: location.ID, Name: location.Name})
	}
}

// PUT /api/locations/:id
func UpdateLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var location models.Location
		if err := database.DB.First(&location, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lokasyon bulunamadı")
		}

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Lokasyon adı zorunlu")
		}

		var existing models.Location
		if err := database.DB.Where("name = ? AND id <> ?", name, location.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Lokasyon zaten mevcut")
		}

		location.Name = name
		if err := database.DB.Save(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lokasyon güncellenemedi")
		}

		return c.JSON(NameResponse{ID: location.ID, Name: location.Name})
	}
}

// DELETE /api/locations/:id
func DeleteLocationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var location models.Location
		if err := database.DB.First(&location, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lokasyon bulunamadı")
		}

		if err := database.DB.Delete(&location).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lokasyon silinemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
