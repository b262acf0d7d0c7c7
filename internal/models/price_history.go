package models

// PriceHistory: (fiyat kalemi, ay) başına tek fiyat kaydı.
// Aynı ay tekrar gönderilirse yerinde güncellenir.
type PriceHistory struct {
	ID          uint    `gorm:"primaryKey"`
	PriceItemID string  `gorm:"size:64;not null;uniqueIndex:idx_history_item_month;index"`
	Month       string  `gorm:"size:7;not null;uniqueIndex:idx_history_item_month"`
	Price       float64 `gorm:"not null"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
