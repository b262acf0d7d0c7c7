package database

import (
	"log"
	"strings"
	"time"

	"foodcost-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// migration: tek seferlik veri migration'ı. prepare AutoMigrate'ten ÖNCE
// (eski tabloyu kenara alma), apply AutoMigrate'ten SONRA (veri taşıma) çalışır.
// Uygulanan migration'lar schema_migrations tablosuna yazılır ve tekrar çalışmaz.
type migration struct {
	id      string
	prepare func(db *gorm.DB) error
	apply   func(db *gorm.DB) error
}

func allModels() []interface{} {
	return []interface{}{
		&models.InventoryItem{},
		&models.InventoryCount{},
		&models.PriceItem{},
		&models.PriceHistory{},
		&models.PriceItemLocation{},
		&models.Supplier{},
		&models.Location{},
		&models.Store{},
		&models.User{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return err
	}

	var records []models.SchemaMigration
	if err := db.Find(&records).Error; err != nil {
		return err
	}
	applied := make(map[string]bool, len(records))
	for _, r := range records {
		applied[r.ID] = true
	}

	var pending []migration
	for _, m := range migrationList() {
		if !applied[m.id] {
			pending = append(pending, m)
		}
	}

	for _, m := range pending {
		if m.prepare != nil {
			if err := m.prepare(db); err != nil {
				return err
			}
		}
	}

	// Kolon eklemeleri (location, cost, archived vs.) AutoMigrate'e bırakılır
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}

	for _, m := range pending {
		if m.apply != nil {
			if err := m.apply(db); err != nil {
				return err
			}
		}
		if err := db.Create(&models.SchemaMigration{ID: m.id, AppliedAt: time.Now()}).Error; err != nil {
			return err
		}
		log.Printf("Migration uygulandı: %s", m.id)
	}

	return nil
}

func migrationList() []migration {
	// counts_store_rebuild'in iki fazı arasında paylaşılan durum
	countsLegacy := false
	countsHadLocation := false

	return []migration{
		{
			// inventory_counts tablosunu store kolonlu halde yeniden kurar.
			// Eski şemadaki location değerleri store kolonuna taşınır.
			id: "2024_08_counts_store_rebuild",
			prepare: func(db *gorm.DB) error {
				m := db.Migrator()
				if !m.HasTable("inventory_counts") {
					return nil
				}
				if m.HasColumn(&models.InventoryCount{}, "store") {
					return nil
				}
				countsLegacy = true
				countsHadLocation = m.HasColumn(&models.InventoryCount{}, "location")
				return m.RenameTable("inventory_counts", "inventory_counts_legacy")
			},
			apply: func(db *gorm.DB) error {
				if !countsLegacy {
					return nil
				}
				storeExpr := "''"
				if countsHadLocation {
					storeExpr = "COALESCE(location, '')"
				}
				sql := `INSERT INTO inventory_counts
					(inventory_item_id, store, month, count1, count2, count3, count4, created_at, updated_at)
					SELECT inventory_item_id, ` + storeExpr + `, month, count1, count2, count3, count4, created_at, updated_at
					FROM inventory_counts_legacy`
				if err := db.Exec(sql).Error; err != nil {
					return err
				}
				return db.Migrator().DropTable("inventory_counts_legacy")
			},
		},
		{
			// Eski sayım kayıtlarına kalemin güncel maliyetini anlık görüntü olarak yazar
			id: "2024_09_counts_cost_backfill",
			apply: func(db *gorm.DB) error {
				return db.Exec(`UPDATE inventory_counts
					SET cost = (SELECT cost FROM inventory_items WHERE inventory_items.id = inventory_counts.inventory_item_id)
					WHERE cost IS NULL`).Error
			},
		},
		{
			// Kalem tablolarındaki mevcut değerlerden katalog tablolarını doldurur
			id: "2024_10_catalog_backfill",
			apply: func(db *gorm.DB) error {
				backfillCatalogs(db)
				return nil
			},
		},
	}
}

// backfillCatalogs: en iyi çaba; tekil isim çakışmaları sessizce atlanır
func backfillCatalogs(db *gorm.DB) {
	var names []string
	db.Model(&models.InventoryItem{}).Where("supplier <> ''").Distinct().Pluck("supplier", &names)
	var more []string
	db.Model(&models.PriceItem{}).Where("supplier <> ''").Distinct().Pluck("supplier", &more)
	for _, name := range append(names, more...) {
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Supplier{Name: name})
	}

	// price_items.location birleştirilmiş görüntü alanıdır, isimlere ayrıştırılır
	var rawLocations []string
	db.Model(&models.PriceItem{}).Where("location <> ''").Distinct().Pluck("location", &rawLocations)
	for _, raw := range rawLocations {
		for _, name := range splitNames(raw) {
			db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Location{Name: name})
		}
	}

	var stores []string
	db.Model(&models.InventoryCount{}).Where("store <> ''").Distinct().Pluck("store", &stores)
	for _, name := range stores {
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Store{Name: name})
	}
}

func splitNames(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", ";")
	var names []string
	for _, part := range strings.Split(raw, ";") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}
