package models

import "time"

// SchemaMigration: uygulanan veri migration'larının kaydı
type SchemaMigration struct {
	ID        string `gorm:"primaryKey;size:100"`
	AppliedAt time.Time
}
