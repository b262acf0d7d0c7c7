package price

import (
	"sort"
	"strings"
	"time"

	"foodcost-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemInput: oluşturma/güncelleme için alan kümesi. Locations doluysa Location
// alanını ezer; Location eski istemciler için tek isimli kısayoldur.
type ItemInput struct {
	Item         string
	Supplier     string
	PurchaseUnit string
	UnitsPerInv  float64
	CurrentPrice float64
	Location     string
	Locations    []string
	Month        string // doluysa ve fiyat > 0 ise geçmişe ilk kayıt yazılır
}

// ItemResponse: geçmiş haritası ve çözümlenmiş lokasyon adlarıyla fiyat kalemi
type ItemResponse struct {
	ID           string             `json:"id"`
	Location     string             `json:"location"`
	Supplier     string             `json:"supplier"`
	Item         string             `json:"item"`
	PurchaseUnit string             `json:"purchase_unit"`
	UnitsPerInv  float64            `json:"units_per_inv"`
	CurrentPrice float64            `json:"current_price"`
	PerUnitCost  float64            `json:"per_unit_cost"`
	Archived     bool               `json:"archived"`
	PriceHistory map[string]float64 `json:"priceHistory"`
	Locations    []string           `json:"locations"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func resolveLocationNames(in ItemInput) []string {
	var names []string
	if len(in.Locations) > 0 {
		for _, n := range in.Locations {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		return names
	}
	if n := strings.TrimSpace(in.Location); n != "" {
		names = append(names, n)
	}
	return names
}

func normalizeUnits(units float64) float64 {
	if units <= 0 {
		return 1
	}
	return units
}

func CreateItem(db *gorm.DB, in ItemInput) (*models.PriceItem, error) {
	names := resolveLocationNames(in)
	units := normalizeUnits(in.UnitsPerInv)

	item := models.PriceItem{
		ID:           models.NewPriceItemID(),
		Location:     strings.Join(names, ", "),
		Supplier:     in.Supplier,
		Item:         in.Item,
		PurchaseUnit: in.PurchaseUnit,
		UnitsPerInv:  units,
		CurrentPrice: in.CurrentPrice,
		PerUnitCost:  models.PerUnitCost(in.CurrentPrice, units),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if err := replaceLocations(tx, item.ID, names); err != nil {
			return err
		}
		if in.CurrentPrice > 0 && in.Month != "" {
			return upsertHistory(tx, item.ID, in.Month, in.CurrentPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem: açıklayıcı alanların tamamını ve birim maliyeti ezer; lokasyon
// ilişkisi diff'lenmeden komple yenilenir.
func UpdateItem(db *gorm.DB, id string, in ItemInput) (*models.PriceItem, error) {
	var item models.PriceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	names := resolveLocationNames(in)
	units := normalizeUnits(in.UnitsPerInv)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Updates(map[string]interface{}{
			"item":          in.Item,
			"supplier":      in.Supplier,
			"purchase_unit": in.PurchaseUnit,
			"units_per_inv": units,
			"current_price": in.CurrentPrice,
			"per_unit_cost": models.PerUnitCost(in.CurrentPrice, units),
			"location":      strings.Join(names, ", "),
		}).Error; err != nil {
			return err
		}
		return replaceLocations(tx, id, names)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetPrice: birim maliyeti yeniden hesaplar, kalemi günceller ve ayın geçmiş
// kaydını upsert eder.
func SetPrice(db *gorm.DB, id, month string, priceVal float64) (*models.PriceItem, error) {
	var item models.PriceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	cost := models.PerUnitCost(priceVal, item.UnitsPerInv)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Updates(map[string]interface{}{
			"current_price": priceVal,
			"per_unit_cost": cost,
		}).Error; err != nil {
			return err
		}
		return upsertHistory(tx, id, month, priceVal)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ArchiveItem: arşiv durumunu ayarlar ve aynı ada sahip (büyük/küçük harf
// duyarsız) envanter kalemlerine yayar. Etkilenen envanter sayısını döndürür.
func ArchiveItem(db *gorm.DB, id string, archive bool) (int64, error) {
	var item models.PriceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return 0, err
	}

	if err := db.Model(&item).Update("archived", archive).Error; err != nil {
		return 0, err
	}

	res := db.Model(&models.InventoryItem{}).
		Where("LOWER(item) = LOWER(?)", item.Item).
		Update("archived", archive)
	return res.RowsAffected, res.Error
}

func DeleteItem(db *gorm.DB, id string) error {
	var item models.PriceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_item_id = ?", id).Delete(&models.PriceItemLocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// replaceLocations: mevcut ilişkiler silinir, her isim için lokasyon
// get-or-create edilip yeniden bağlanır.
func replaceLocations(tx *gorm.DB, itemID string, names []string) error {
	if err := tx.Where("price_item_id = ?", itemID).Delete(&models.PriceItemLocation{}).Error; err != nil {
		return err
	}
	for _, name := range names {
		var loc models.Location
		if err := tx.Where(models.Location{Name: name}).FirstOrCreate(&loc).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.PriceItemLocation{PriceItemID: itemID, LocationID: loc.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// upsertHistory: (kalem, ay) başına tek kayıt; aynı ay yerinde güncellenir
func upsertHistory(tx *gorm.DB, itemID, month string, priceVal float64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "price_item_id"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"price": priceVal}),
	}).Create(&models.PriceHistory{PriceItemID: itemID, Month: month, Price: priceVal}).Error
}

func List(db *gorm.DB, includeArchived bool) ([]ItemResponse, error) {
	var items []models.PriceItem
	q := db.Order("item")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}

	historyByItem, err := loadHistories(db)
	if err != nil {
		return nil, err
	}
	locationsByItem, err := loadLocationNames(db)
	if err != nil {
		return nil, err
	}

	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i], historyByItem[items[i].ID], locationsByItem[items[i].ID]))
	}
	return resp, nil
}

func Get(db *gorm.DB, id string) (*ItemResponse, error) {
	var item models.PriceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}

	history := make(map[string]float64)
	var entries []models.PriceHistory
	if err := db.Where("price_item_id = ?", id).Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, e := range entries {
		history[e.Month] = e.Price
	}

	names, err := LocationNames(db, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(&item, history, names)
	return &resp, nil
}

// LocationNames: bir fiyat kaleminin lokasyon adları, alfabetik
func LocationNames(db *gorm.DB, itemID string) ([]string, error) {
	names := make([]string, 0)
	err := db.Table("price_item_locations AS pil").
		Joins("JOIN locations l ON l.id = pil.location_id").
		Where("pil.price_item_id = ?", itemID).
		Order("l.name").
		Pluck("l.name", &names).Error
	return names, err
}

func loadHistories(db *gorm.DB) (map[string]map[string]float64, error) {
	var entries []models.PriceHistory
	if err := db.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	byItem := make(map[string]map[string]float64)
	for _, e := range entries {
		m, ok := byItem[e.PriceItemID]
		if !ok {
			m = make(map[string]float64)
			byItem[e.PriceItemID] = m
		}
		m[e.Month] = e.Price
	}
	return byItem, nil
}

func loadLocationNames(db *gorm.DB) (map[string][]string, error) {
	var pairs []struct {
		PriceItemID string
		Name        string
	}
	if err := db.Table("price_item_locations AS pil").
		Select("pil.price_item_id, l.name").
		Joins("JOIN locations l ON l.id = pil.location_id").
		Scan(&pairs).Error; err != nil {
		return nil, err
	}
	byItem := make(map[string][]string)
	for _, p := range pairs {
		byItem[p.PriceItemID] = append(byItem[p.PriceItemID], p.Name)
	}
	for _, names := range byItem {
		sort.Strings(names)
	}
	return byItem, nil
}

func toResponse(item *models.PriceItem, history map[string]float64, locations []string) ItemResponse {
	if history == nil {
		history = make(map[string]float64)
	}
	if locations == nil {
		locations = make([]string, 0)
	}
	return ItemResponse{
		ID:           item.ID,
		Location:     item.Location,
		Supplier:     item.Supplier,
		Item:         item.Item,
		PurchaseUnit: item.PurchaseUnit,
		UnitsPerInv:  item.UnitsPerInv,
		CurrentPrice: item.CurrentPrice,
		PerUnitCost:  item.PerUnitCost,
		Archived:     item.Archived,
		PriceHistory: history,
		Locations:    locations,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
