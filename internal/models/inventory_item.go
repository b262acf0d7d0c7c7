package models

import (
	"fmt"
	"time"
)

// InventoryItem: Sayımı yapılan envanter kalemi
type InventoryItem struct {
	ID        string  `gorm:"primaryKey;size:64"`
	Supplier  string  `gorm:"size:100;index"`
	Location  string  `gorm:"size:100"` // depolama lokasyonu (Store'dan farklı)
	Item      string  `gorm:"size:200;not null;index"`
	Unit      string  `gorm:"size:50"`
	Cost      float64 `gorm:"default:0"`     // güncel birim maliyet
	IsCustom  bool    `gorm:"default:false"` // kullanıcı tarafından eklendi mi
	Archived  bool    `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomItemID: Kullanıcı eklemeleri için zaman bazlı benzersiz ID üretir
func NewCustomItemID() string {
	return fmt.Sprintf("custom-%d", time.Now().UnixNano())
}
