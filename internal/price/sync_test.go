package price

import (
	"testing"

	"foodcost-backend/internal/models"
)

func TestSyncMatchesBySubstringBothWays(t *testing.T) {
	db := setupDB(t)

	_, err := CreateItem(db, ItemInput{
		Item: "Tomato", Supplier: "Sysco",
		UnitsPerInv: 4, CurrentPrice: 10, // birim maliyet 2.5
		Locations: []string{"Walk-in", "Freezer"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	db.Create(&models.InventoryItem{ID: "itm-1", Item: "Roma Tomato", Cost: 1}) // envanter fiyatı kapsar
	db.Create(&models.InventoryItem{ID: "itm-2", Item: "Tom", Cost: 1})         // fiyat envanteri kapsar
	db.Create(&models.InventoryItem{ID: "itm-3", Item: "Basil", Cost: 1})       // eşleşme yok

	updated, err := SyncToInventory(db)
	if err != nil {
		t.Fatalf("SyncToInventory: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, beklenen 2", updated)
	}

	var roma models.InventoryItem
	db.First(&roma, "id = ?", "itm-1")
	if roma.Cost != 2.5 || roma.Supplier != "Sysco" {
		t.Errorf("eşleşen kalem güncellenmedi: %+v", roma)
	}
	// Temsili lokasyon alfabetik olarak ilk addır
	if roma.Location != "Freezer" {
		t.Errorf("location = %q, beklenen Freezer", roma.Location)
	}

	var basil models.InventoryItem
	db.First(&basil, "id = ?", "itm-3")
	if basil.Cost != 1 {
		t.Errorf("eşleşmeyen kalem değişti: %+v", basil)
	}
}

func TestSyncSkipsWithinTolerance(t *testing.T) {
	db := setupDB(t)

	_, err := CreateItem(db, ItemInput{
		Item: "Tomato", Supplier: "Sysco",
		UnitsPerInv: 4, CurrentPrice: 10,
		Locations: []string{"Walk-in"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Maliyet farkı toleransın içinde, tedarikçi ve lokasyon eşit
	db.Create(&models.InventoryItem{
		ID: "itm-1", Item: "Tomato", Cost: 2.5005,
		Supplier: "Sysco", Location: "Walk-in",
	})

	updated, err := SyncToInventory(db)
	if err != nil {
		t.Fatalf("SyncToInventory: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d, beklenen 0", updated)
	}

	// Tedarikçi farklıysa maliyet eşit olsa da güncellenir
	db.Model(&models.InventoryItem{}).Where("id = ?", "itm-1").Update("supplier", "US Foods")
	updated, _ = SyncToInventory(db)
	if updated != 1 {
		t.Errorf("tedarikçi farkı sonrası updated = %d, beklenen 1", updated)
	}
}

func TestSyncLastPriceItemWins(t *testing.T) {
	db := setupDB(t)

	first, err := CreateItem(db, ItemInput{Item: "Tomato", Supplier: "Sysco", UnitsPerInv: 1, CurrentPrice: 3})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	second, err := CreateItem(db, ItemInput{Item: "toma", Supplier: "US Foods", UnitsPerInv: 1, CurrentPrice: 7})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	db.Create(&models.InventoryItem{ID: "itm-1", Item: "Tomato", Cost: 1})

	updated, err := SyncToInventory(db)
	if err != nil {
		t.Fatalf("SyncToInventory: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, beklenen 2", updated)
	}

	var inv models.InventoryItem
	db.First(&inv, "id = ?", "itm-1")
	if inv.Cost != 7 || inv.Supplier != "US Foods" {
		t.Errorf("son fiyat kalemi kazanmalıydı: %+v", inv)
	}
	_ = first
	_ = second
}

func TestSyncIsIdempotent(t *testing.T) {
	db := setupDB(t)

	_, err := CreateItem(db, ItemInput{
		Item: "Tomato", Supplier: "Sysco",
		UnitsPerInv: 4, CurrentPrice: 10,
		Locations: []string{"Walk-in"},
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	db.Create(&models.InventoryItem{ID: "itm-1", Item: "Tomato", Cost: 1})

	if _, err := SyncToInventory(db); err != nil {
		t.Fatalf("ilk sync: %v", err)
	}
	updated, err := SyncToInventory(db)
	if err != nil {
		t.Fatalf("ikinci sync: %v", err)
	}
	if updated != 0 {
		t.Errorf("ikinci sync updated = %d, beklenen 0", updated)
	}
}
