package models

import "time"

// InventoryCount: (kalem, mağaza, ay) başına tek sayım kaydı
type InventoryCount struct {
	ID              uint    `gorm:"primaryKey"`
	InventoryItemID string  `gorm:"size:64;not null;uniqueIndex:idx_counts_item_store_month;index"`
	Store           string  `gorm:"size:100;uniqueIndex:idx_counts_item_store_month"`
	Month           string  `gorm:"size:7;uniqueIndex:idx_counts_item_store_month;index"` // "2024-01"
	Count1          float64 `gorm:"default:0"`
	Count2          float64 `gorm:"default:0"`
	Count3          float64 `gorm:"default:0"`
	Count4          float64 `gorm:"default:0"`
	// Sayım anındaki maliyet anlık görüntüsü; ilk yazım kazanır
	Cost      *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
