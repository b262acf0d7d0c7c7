package price

import (
	"testing"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	database.DB = db
	return db
}

func TestPerUnitCost(t *testing.T) {
	cases := []struct {
		price, units, want float64
	}{
		{10, 4, 2.5},
		{10, 0, 10},   // geçersiz birim 1 sayılır
		{10, -2, 10},
		{10, 3, 3.33}, // iki basamağa yuvarlanır
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := models.PerUnitCost(c.price, c.units); got != c.want {
			t.Errorf("PerUnitCost(%v, %v) = %v, beklenen %v", c.price, c.units, got, c.want)
		}
	}
}

func TestCreateItemDerivesCostAndSeedsHistory(t *testing.T) {
	db := setupDB(t)

	item, err := CreateItem(db, ItemInput{
		Item: "Tomato", Supplier: "Sysco", PurchaseUnit: "case",
		UnitsPerInv: 4, CurrentPrice: 10,
		Locations: []string{"Walk-in", "Freezer"},
		Month:     "2024-01",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.PerUnitCost != 2.5 {
		t.Errorf("per_unit_cost = %v, beklenen 2.5", item.PerUnitCost)
	}
	if item.Location != "Walk-in, Freezer" {
		t.Errorf("location = %q", item.Location)
	}

	var hist []models.PriceHistory
	db.Where("price_item_id = ?", item.ID).Find(&hist)
	if len(hist) != 1 || hist[0].Month != "2024-01" || hist[0].Price != 10 {
		t.Errorf("geçmiş beklenmedik: %+v", hist)
	}

	names, err := LocationNames(db, item.ID)
	if err != nil {
		t.Fatalf("LocationNames: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("lokasyon sayısı = %d", len(names))
	}
}

func TestCreateItemWithoutPriceSkipsHistory(t *testing.T) {
	db := setupDB(t)

	item, err := CreateItem(db, ItemInput{Item: "Basil", Month: "2024-01"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.UnitsPerInv != 1 {
		t.Errorf("units_per_inv = %v, beklenen 1", item.UnitsPerInv)
	}

	var count int64
	db.Model(&models.PriceHistory{}).Count(&count)
	if count != 0 {
		t.Errorf("fiyatsız kalem geçmiş oluşturdu")
	}
}

func TestUpdateItemReplacesLocations(t *testing.T) {
	db := setupDB(t)

	item, _ := CreateItem(db, ItemInput{Item: "Tomato", Locations: []string{"Walk-in"}})

	_, err := UpdateItem(db, item.ID, ItemInput{
		Item: "Roma Tomato", Supplier: "US Foods",
		UnitsPerInv: 2, CurrentPrice: 9,
		Locations: []string{"Freezer", "Dry Storage"},
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	var got models.PriceItem
	db.First(&got, "id = ?", item.ID)
	if got.Item != "Roma Tomato" || got.PerUnitCost != 4.5 {
		t.Errorf("güncelleme uygulanmadı: %+v", got)
	}
	if got.Location != "Freezer, Dry Storage" {
		t.Errorf("location = %q", got.Location)
	}

	names, _ := LocationNames(db, item.ID)
	if len(names) != 2 || names[0] != "Dry Storage" || names[1] != "Freezer" {
		t.Errorf("lokasyonlar = %v", names)
	}

	// Eski lokasyon kaydı katalogda kalır ama ilişki kopar
	var junctions int64
	db.Model(&models.PriceItemLocation{}).Where("price_item_id = ?", item.ID).Count(&junctions)
	if junctions != 2 {
		t.Errorf("ilişki sayısı = %d, beklenen 2", junctions)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	db := setupDB(t)
	if _, err := UpdateItem(db, "price-yok", ItemInput{Item: "X"}); err != gorm.ErrRecordNotFound {
		t.Errorf("err = %v, beklenen ErrRecordNotFound", err)
	}
}

func TestSetPriceUpsertsHistory(t *testing.T) {
	db := setupDB(t)
	item, _ := CreateItem(db, ItemInput{Item: "Tomato", UnitsPerInv: 4, CurrentPrice: 10, Month: "2024-01"})

	// Aynı ay yerinde güncellenir
	if _, err := SetPrice(db, item.ID, "2024-01", 12); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}
	// Yeni ay eklenir
	if _, err := SetPrice(db, item.ID, "2024-02", 14); err != nil {
		t.Fatalf("SetPrice: %v", err)
	}

	var hist []models.PriceHistory
	db.Where("price_item_id = ?", item.ID).Order("month").Find(&hist)
	if len(hist) != 2 {
		t.Fatalf("geçmiş kayıt sayısı = %d, beklenen 2", len(hist))
	}
	if hist[0].Price != 12 || hist[1].Price != 14 {
		t.Errorf("geçmiş fiyatları = %v, %v", hist[0].Price, hist[1].Price)
	}

	var got models.PriceItem
	db.First(&got, "id = ?", item.ID)
	if got.CurrentPrice != 14 || got.PerUnitCost != 3.5 {
		t.Errorf("güncel fiyat alanları: %+v", got)
	}
}

func TestArchiveCascadesToInventory(t *testing.T) {
	db := setupDB(t)
	item, _ := CreateItem(db, ItemInput{Item: "Tomato"})

	db.Create(&models.InventoryItem{ID: "itm-1", Item: "tomato"})
	db.Create(&models.InventoryItem{ID: "itm-2", Item: "TOMATO"})
	db.Create(&models.InventoryItem{ID: "itm-3", Item: "Tomato Sauce"}) // tam eşleşme değil

	updated, err := ArchiveItem(db, item.ID, true)
	if err != nil {
		t.Fatalf("ArchiveItem: %v", err)
	}
	if updated != 2 {
		t.Errorf("etkilenen envanter = %d, beklenen 2", updated)
	}

	var got models.PriceItem
	db.First(&got, "id = ?", item.ID)
	if !got.Archived {
		t.Error("fiyat kalemi arşivlenmedi")
	}

	var sauce models.InventoryItem
	db.First(&sauce, "id = ?", "itm-3")
	if sauce.Archived {
		t.Error("kısmi isim eşleşmesi arşivlendi")
	}

	// Geri alma da yayılır
	updated, _ = ArchiveItem(db, item.ID, false)
	if updated != 2 {
		t.Errorf("geri alma etkilenen = %d, beklenen 2", updated)
	}
}

func TestDeleteItemKeepsHistory(t *testing.T) {
	db := setupDB(t)
	item, _ := CreateItem(db, ItemInput{
		Item: "Tomato", CurrentPrice: 10, Month: "2024-01",
		Locations: []string{"Walk-in"},
	})

	if err := DeleteItem(db, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	var items, junctions, hist int64
	db.Model(&models.PriceItem{}).Count(&items)
	db.Model(&models.PriceItemLocation{}).Count(&junctions)
	db.Model(&models.PriceHistory{}).Count(&hist)
	if items != 0 || junctions != 0 {
		t.Errorf("kalem/ilişki temizlenmedi: %d / %d", items, junctions)
	}
	if hist != 1 {
		t.Errorf("geçmiş kayıtları silinmemeliydi, kalan = %d", hist)
	}
}

func TestListAndGetResponses(t *testing.T) {
	db := setupDB(t)
	a, _ := CreateItem(db, ItemInput{Item: "Basil", CurrentPrice: 5, Month: "2024-01", Locations: []string{"Walk-in"}})
	b, _ := CreateItem(db, ItemInput{Item: "Tomato"})
	db.Model(&models.PriceItem{}).Where("id = ?", b.ID).Update("archived", true)

	items, err := List(db, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Item != "Basil" {
		t.Fatalf("arşiv filtresi: %+v", items)
	}
	if items[0].PriceHistory["2024-01"] != 5 {
		t.Errorf("priceHistory = %v", items[0].PriceHistory)
	}
	if len(items[0].Locations) != 1 || items[0].Locations[0] != "Walk-in" {
		t.Errorf("locations = %v", items[0].Locations)
	}

	all, _ := List(db, true)
	if len(all) != 2 {
		t.Errorf("include_archived ile sayı = %d", len(all))
	}

	// Geçmişi/lokasyonu olmayan kalem boş harita ve dilim döndürür
	resp, err := Get(db, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.PriceHistory == nil || resp.Locations == nil {
		t.Errorf("boş alanlar nil döndü: %+v", resp)
	}
	_ = a
}
