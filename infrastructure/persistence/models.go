package persistence

import "database/sql"

// SalesCallModel is the GORM model for the sales_calls table.
//
// Timestamps are nullable with an engine default (DEFAULT CURRENT_TIMESTAMP)
// and are never touched by GORM afterwards: autoCreateTime/autoUpdateTime are
// disabled so an UPDATE leaves updated_at exactly as the caller supplied it,
// and sql.NullTime lets rows written with explicit NULLs round-trip unchanged.
type SalesCallModel struct {
	ID            int64        `gorm:"column:id;primaryKey;autoIncrement"`
	Transcription string       `gorm:"column:transcription;type:text;not null"`
	Analysis      string       `gorm:"column:analysis;type:text;not null"`
	CreatedAt     sql.NullTime `gorm:"column:created_at;default:CURRENT_TIMESTAMP;autoCreateTime:false;autoUpdateTime:false"`
	UpdatedAt     sql.NullTime `gorm:"column:updated_at;default:CURRENT_TIMESTAMP;autoCreateTime:false;autoUpdateTime:false"`
}

// TableName returns the table name.
func (SalesCallModel) TableName() string {
	return "sales_calls"
}
