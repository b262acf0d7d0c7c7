package catalog

import (
	"strings"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type NameRequest struct {
	Name string `json:"name"`
}

type NameResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		resp := make([]NameResponse, 0, len(suppliers))
		for _, s := range suppliers {
			resp = append(resp, NameResponse{ID: s.ID, Name: s.Name})
		}
		return c.JSON(resp)
	}
}

// POST /api/suppliers
func AddSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı zorunlu")
		}

		var existing models.Supplier
		if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Tedarikçi zaten mevcut")
		}

		supplier := models.Supplier{Name: name}
		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(NameResponse{ID: supplier.ID, Name: supplier.Name})
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body NameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tedarikçi adı zorunlu")
		}

		var existing models.Supplier
		if err := database.DB.Where("name = ? AND id <> ?", name, supplier.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Tedarikçi zaten mevcut")
		}

		supplier.Name = name
		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(NameResponse{ID: supplier.ID, Name: supplier.Name})
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		if err := database.DB.Delete(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi silinemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
