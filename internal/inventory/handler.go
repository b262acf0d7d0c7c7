package inventory

import (
	"strings"
	"time"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateInventoryItemRequest struct {
	Supplier string  `json:"supplier"`
	Location string  `json:"location"`
	Item     string  `json:"item"`
	Unit     string  `json:"unit"`
	Cost     float64 `json:"cost"`
	Count1   float64 `json:"count1"`
	Count2   float64 `json:"count2"`
	Count3   float64 `json:"count3"`
	Count4   float64 `json:"count4"`
	Month    string  `json:"month"` // doluysa sayım satırı upsert edilir
	Store    string  `json:"store"`
}

type ClearCountsRequest struct {
	Month string `json:"month"`
	Store string `json:"store"`
}

// GET /api/inventory/months
func ListMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		months := make([]string, 0)
		if err := database.DB.Model(&models.InventoryCount{}).
			Distinct().
			Order("month DESC").
			Pluck("month", &months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aylar listelenemedi")
		}
		return c.JSON(months)
	}
}

// GET /api/inventory?month=&store=&include_archived=
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := List(database.DB, c.Query("month"), c.Query("store"), c.QueryBool("include_archived"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Envanter listelenemedi")
		}
		return c.JSON(rows)
	}
}

// GET /api/inventory/:id?month=&store=
func GetInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		row, err := Get(database.DB, c.Params("id"), c.Query("month"), c.Query("store"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
		}
		return c.JSON(row)
	}
}

// PUT /api/inventory/:id
// Açıklayıcı alanlar her zaman güncellenir; month doluysa (kalem, mağaza, ay)
// sayım satırı upsert edilir. Sayımlar üzerine yazılır ama maliyet anlık
// görüntüsü ilk yazımdan korunur.
func UpdateInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item models.InventoryItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı")
		}

		var body UpdateInventoryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := database.DB.Model(&item).Updates(map[string]interface{}{
			"supplier": body.Supplier,
			"location": body.Location,
			"item":     body.Item,
			"unit":     body.Unit,
			"cost":     body.Cost,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem güncellenemedi")
		}

		if body.Month != "" {
			if err := upsertCounts(database.DB, id, &body); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sayım kaydedilemedi")
			}
		}

		row, err := Get(database.DB, id, body.Month, body.Store)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem okunamadı")
		}
		return c.JSON(row)
	}
}

func upsertCounts(db *gorm.DB, id string, body *UpdateInventoryItemRequest) error {
	cost := body.Cost
	count := models.InventoryCount{
		InventoryItemID: id,
		Store:           body.Store,
		Month:           body.Month,
		Count1:          body.Count1,
		Count2:          body.Count2,
		Count3:          body.Count3,
		Count4:          body.Count4,
		Cost:            &cost,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "inventory_item_id"}, {Name: "store"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count1": body.Count1,
			"count2": body.Count2,
			"count3": body.Count3,
			"count4": body.Count4,
			// ilk yazım kazanır: mevcut anlık görüntü korunur
			"cost":       gorm.Expr("COALESCE(inventory_counts.cost, excluded.cost)"),
			"updated_at": time.Now(),
		}),
	}).Create(&count).Error
}

// POST /api/inventory
func AddInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateInventoryItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Item) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kalem adı zorunlu")
		}

		item := models.InventoryItem{
			ID:       models.NewCustomItemID(),
			Supplier: body.Supplier,
			Location: body.Location,
			Item:     body.Item,
			Unit:     body.Unit,
			Cost:     body.Cost,
			IsCustom: true,
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem oluşturulamadı")
		}

		row, err := Get(database.DB, item.ID, "", "")
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem okunamadı")
		}
		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// DELETE /api/inventory/:id
// Sadece kullanıcı eklemeleri silinebilir; seed kalemleri silinemez.
func DeleteInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Where("id = ? AND is_custom = ?", c.Params("id"), true).
			Delete(&models.InventoryItem{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kalem silinemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kalem bulunamadı veya silinemez")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/inventory/clear-counts
// Filtre verilmezse hiçbir şey silinmez (tam temizlik yok).
func ClearCountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClearCountsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Month == "" && body.Store == "" {
			return c.JSON(fiber.Map{"success": true})
		}

		q := database.DB
		if body.Month != "" {
			q = q.Where("month = ?", body.Month)
		}
		if body.Store != "" {
			q = q.Where("store = ?", body.Store)
		}
		if err := q.Delete(&models.InventoryCount{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sayımlar temizlenemedi")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
