package price

import (
	"errors"
	"strings"

	"foodcost-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PriceItemRequest struct {
	Item         string   `json:"item"`
	Supplier     string   `json:"supplier"`
	PurchaseUnit string   `json:"purchase_unit"`
	UnitsPerInv  float64  `json:"units_per_inv"`
	CurrentPrice *float64 `json:"current_price"`
	Location     string   `json:"location"`
	Locations    []string `json:"locations"`
	Month        string   `json:"month"`
}

type SetPriceRequest struct {
	Month string   `json:"month"`
	Price *float64 `json:"price"`
}

type ArchiveRequest struct {
	Archived bool `json:"archived"`
}

func (r *PriceItemRequest) toInput() ItemInput {
	current := 0.0
	if r.CurrentPrice != nil {
		current = *r.CurrentPrice
	}
	return ItemInput{
		Item:         r.Item,
		Supplier:     r.Supplier,
		PurchaseUnit: r.PurchaseUnit,
		UnitsPerInv:  r.UnitsPerInv,
		CurrentPrice: current,
		Location:     r.Location,
		Locations:    r.Locations,
		Month:        r.Month,
	}
}

// GET /api/prices?include_archived=
func ListPricesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := List(database.DB, c.QueryBool("include_archived"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyatlar listelenemedi")
		}
		return c.JSON(items)
	}
}

// GET /api/prices/:id
func GetPriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := Get(database.DB, c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
		}
		return c.JSON(item)
	}
}

// POST /api/prices
func AddPriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PriceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if strings.TrimSpace(body.Item) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kalem adı zorunlu")
		}

		item, err := CreateItem(database.DB, body.toInput())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem oluşturulamadı")
		}

		resp, err := Get(database.DB, item.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// PUT /api/prices/:id — ay için fiyat girişi
func UpdatePriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetPriceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Month == "" || body.Price == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ay ve fiyat zorunlu")
		}

		if _, err := SetPrice(database.DB, c.Params("id"), body.Month, *body.Price); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Fiyat güncellenemedi")
		}

		resp, err := Get(database.DB, c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem okunamadı")
		}
		return c.JSON(resp)
	}
}

// PUT /api/prices/:id/edit — tüm alanların güncellenmesi
func EditPriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PriceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if strings.TrimSpace(body.Item) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kalem adı zorunlu")
		}

		id := c.Params("id")
		if _, err := UpdateItem(database.DB, id, body.toInput()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem güncellenemedi")
		}

		// Ay ve fiyat birlikte verildiyse geçmiş de güncellenir
		if body.Month != "" && body.CurrentPrice != nil {
			if _, err := SetPrice(database.DB, id, body.Month, *body.CurrentPrice); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fiyat geçmişi güncellenemedi")
			}
		}

		resp, err := Get(database.DB, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem okunamadı")
		}
		return c.JSON(resp)
	}
}

// PUT /api/prices/:id/archive
func ArchivePriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ArchiveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		updated, err := ArchiveItem(database.DB, c.Params("id"), body.Archived)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem arşivlenemedi")
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"archived": body.Archived,
			"updated":  updated,
		})
	}
}

// DELETE /api/prices/:id
func DeletePriceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := DeleteItem(database.DB, c.Params("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem silinemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/prices/sync
func SyncHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		updated, err := SyncToInventory(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Senkronizasyon başarısız")
		}
		return c.JSON(fiber.Map{"updated": updated})
	}
}
