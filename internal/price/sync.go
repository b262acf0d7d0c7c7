package price

import (
	"math"
	"strings"

	"foodcost-backend/internal/models"

	"gorm.io/gorm"
)

const costTolerance = 0.001

// SyncToInventory: fiyat kalemlerinin birim maliyetini (tedarikçi ve temsili
// lokasyonla birlikte) ada göre eşleşen envanter kalemlerine yayar.
//
// Eşleşme iki yönlü, büyük/küçük harf duyarsız substring kontrolüdür; birden
// fazla fiyat kalemi aynı envanter kalemiyle eşleşebilir ve son işlenen
// kazanır. Bu bilinçli olarak korunmuş bir davranıştır.
func SyncToInventory(db *gorm.DB) (int, error) {
	var priceItems []models.PriceItem
	if err := db.Order("created_at").Find(&priceItems).Error; err != nil {
		return 0, err
	}

	var invItems []models.InventoryItem
	if err := db.Find(&invItems).Error; err != nil {
		return 0, err
	}

	firstLocation, err := firstLocationByItem(db)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, p := range priceItems {
		pLower := strings.ToLower(p.Item)
		loc := firstLocation[p.ID]

		for i := range invItems {
			inv := &invItems[i]
			invLower := strings.ToLower(inv.Item)
			if !strings.Contains(invLower, pLower) && !strings.Contains(pLower, invLower) {
				continue
			}

			if math.Abs(inv.Cost-p.PerUnitCost) <= costTolerance &&
				inv.Supplier == p.Supplier && inv.Location == loc {
				continue
			}

			if err := db.Model(&models.InventoryItem{}).
				Where("id = ?", inv.ID).
				Updates(map[string]interface{}{
					"cost":     p.PerUnitCost,
					"supplier": p.Supplier,
					"location": loc,
				}).Error; err != nil {
				return updated, err
			}
			inv.Cost = p.PerUnitCost
			inv.Supplier = p.Supplier
			inv.Location = loc
			updated++
		}
	}

	return updated, nil
}

// firstLocationByItem: her fiyat kalemi için alfabetik olarak ilk lokasyon adı
func firstLocationByItem(db *gorm.DB) (map[string]string, error) {
	var pairs []struct {
		PriceItemID string
		Name        string
	}
	if err := db.Table("price_item_locations AS pil").
		Select("pil.price_item_id, l.name").
		Joins("JOIN locations l ON l.id = pil.location_id").
		Order("l.name").
		Scan(&pairs).Error; err != nil {
		return nil, err
	}
	first := make(map[string]string)
	for _, p := range pairs {
		if _, ok := first[p.PriceItemID]; !ok {
			first[p.PriceItemID] = p.Name
		}
	}
	return first, nil
}
