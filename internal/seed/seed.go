package seed

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"foodcost-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Eski seed dosyaları (data.js / prices.js) JSON dizisi taşıyan JS sabitleridir:
//   const MASTER_ITEMS = [ ... ];
//   const PRICE_DATABASE = [ ... ];

type inventorySeed struct {
	ID       string  `json:"id"`
	Supplier string  `json:"supplier"`
	Item     string  `json:"item"`
	Unit     string  `json:"unit"`
	Cost     float64 `json:"cost"`
	IsCustom int     `json:"is_custom"`
}

type priceSeed struct {
	ID           string             `json:"id"`
	Location     string             `json:"location"`
	Supplier     string             `json:"supplier"`
	Item         string             `json:"item"`
	PurchaseUnit string             `json:"purchaseUnit"`
	UnitsPerInv  float64            `json:"unitsPerInv"`
	CurrentPrice float64            `json:"currentPrice"`
	PriceHistory map[string]float64 `json:"priceHistory"`
}

// Run: dir altındaki seed dosyalarını varsa yükler
func Run(db *gorm.DB, dir string) error {
	dataPath := filepath.Join(dir, "data.js")
	if _, err := os.Stat(dataPath); err == nil {
		var items []inventorySeed
		if err := parseJSArray(dataPath, "MASTER_ITEMS", &items); err != nil {
			return fmt.Errorf("data.js okunamadı: %w", err)
		}
		if err := loadInventory(db, items); err != nil {
			return err
		}
		log.Printf("%d envanter kalemi yüklendi", len(items))
	} else {
		log.Println("[WARN] data.js bulunamadı, envanter seed atlandı")
	}

	pricesPath := filepath.Join(dir, "prices.js")
	if _, err := os.Stat(pricesPath); err == nil {
		var items []priceSeed
		if err := parseJSArray(pricesPath, "PRICE_DATABASE", &items); err != nil {
			return fmt.Errorf("prices.js okunamadı: %w", err)
		}
		if err := loadPrices(db, items); err != nil {
			return err
		}
		log.Printf("%d fiyat kalemi yüklendi", len(items))
	} else {
		log.Println("[WARN] prices.js bulunamadı, fiyat seed atlandı")
	}

	return nil
}

func parseJSArray(path, varName string, dest interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	re := regexp.MustCompile(`(?s)const\s+` + regexp.QuoteMeta(varName) + `\s*=\s*(\[.*?\]);`)
	match := re.FindSubmatch(content)
	if match == nil {
		return fmt.Errorf("%s dizisi %s içinde bulunamadı", varName, path)
	}

	return json.Unmarshal(match[1], dest)
}

func loadInventory(db *gorm.DB, items []inventorySeed) error {
	for _, s := range items {
		if s.ID == "" || strings.TrimSpace(s.Item) == "" {
			continue
		}
		item := models.InventoryItem{
			ID:       s.ID,
			Supplier: s.Supplier,
			Item:     s.Item,
			Unit:     s.Unit,
			Cost:     s.Cost,
			IsCustom: s.IsCustom != 0,
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func loadPrices(db *gorm.DB, items []priceSeed) error {
	for _, s := range items {
		if s.ID == "" || strings.TrimSpace(s.Item) == "" {
			continue
		}
		units := s.UnitsPerInv
		if units <= 0 {
			units = 1
		}
		item := models.PriceItem{
			ID:           s.ID,
			Location:     s.Location,
			Supplier:     s.Supplier,
			Item:         s.Item,
			PurchaseUnit: s.PurchaseUnit,
			UnitsPerInv:  units,
			CurrentPrice: s.CurrentPrice,
			// seed'deki perUnitCost alanına güvenilmez, her zaman türetilir
			PerUnitCost: models.PerUnitCost(s.CurrentPrice, units),
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error; err != nil {
			return err
		}

		for month, priceVal := range s.PriceHistory {
			entry := models.PriceHistory{PriceItemID: s.ID, Month: month, Price: priceVal}
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "price_item_id"}, {Name: "month"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"price": priceVal}),
			}).Create(&entry).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
