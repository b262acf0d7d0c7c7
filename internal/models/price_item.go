package models

import (
	"fmt"
	"math"
	"time"
)

// PriceItem: Tedarikçi fiyatı takip edilen satın alma kalemi
type PriceItem struct {
	ID           string  `gorm:"primaryKey;size:64"`
	Location     string  `gorm:"size:255"` // lokasyon adlarının birleştirilmiş hali (sadece görüntüleme)
	Supplier     string  `gorm:"size:100;index"`
	Item         string  `gorm:"size:200;not null;index"`
	PurchaseUnit string  `gorm:"size:50"`
	UnitsPerInv  float64 `gorm:"default:1"` // satın alma birimi başına envanter birimi
	CurrentPrice float64 `gorm:"default:0"`
	PerUnitCost  float64 `gorm:"default:0"` // her zaman CurrentPrice/UnitsPerInv'den türetilir
	Archived     bool    `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceItemLocation: fiyat kalemi <-> lokasyon ilişkisi
type PriceItemLocation struct {
	ID          uint   `gorm:"primaryKey"`
	PriceItemID string `gorm:"size:64;not null;index"`
	LocationID  uint   `gorm:"not null;index"`
}

// NewPriceItemID: Fiyat kalemleri için zaman bazlı benzersiz ID üretir
func NewPriceItemID() string {
	return fmt.Sprintf("price-%d", time.Now().UnixNano())
}

// PerUnitCost: birim maliyeti hesaplar, 2 ondalığa yuvarlar.
// units sıfır veya negatifse 1 kabul edilir.
func PerUnitCost(price, units float64) float64 {
	if units <= 0 {
		units = 1
	}
	return math.Round(price/units*100) / 100
}
