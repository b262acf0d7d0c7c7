package inventory

import (
	"time"

	"gorm.io/gorm"
)

// ItemRow: ilgili ay/mağaza sayım satırıyla birleştirilmiş envanter kalemi.
// Sayım satırı yoksa sayımlar sıfır, maliyet kalemin güncel maliyetidir.
type ItemRow struct {
	ID        string    `json:"id"`
	Supplier  string    `json:"supplier"`
	Location  string    `json:"location"`
	Item      string    `json:"item"`
	Unit      string    `json:"unit"`
	Cost      float64   `json:"cost"`
	IsCustom  bool      `json:"is_custom"`
	Archived  bool      `json:"archived"`
	Count1    float64   `json:"count1"`
	Count2    float64   `json:"count2"`
	Count3    float64   `json:"count3"`
	Count4    float64   `json:"count4"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func baseQuery(db *gorm.DB, month, store string) *gorm.DB {
	return db.Table("inventory_items AS i").
		Select(`i.id, i.supplier, i.location, i.item, i.unit,
			COALESCE(c.cost, i.cost) AS cost,
			i.is_custom, i.archived,
			COALESCE(c.count1, 0) AS count1,
			COALESCE(c.count2, 0) AS count2,
			COALESCE(c.count3, 0) AS count3,
			COALESCE(c.count4, 0) AS count4,
			i.created_at, i.updated_at`).
		Joins("LEFT JOIN inventory_counts c ON c.inventory_item_id = i.id AND c.month = ? AND c.store = ?", month, store)
}

func List(db *gorm.DB, month, store string, includeArchived bool) ([]ItemRow, error) {
	rows := make([]ItemRow, 0)
	q := baseQuery(db, month, store)
	if !includeArchived {
		q = q.Where("i.archived = ?", false)
	}
	err := q.Order("i.item").Scan(&rows).Error
	return rows, err
}

func Get(db *gorm.DB, id, month, store string) (*ItemRow, error) {
	var row ItemRow
	res := baseQuery(db, month, store).Where("i.id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
