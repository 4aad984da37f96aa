package models

import "time"

type ImportRun struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	Filename       string  `gorm:"type:text;not null"`
	Status         string  `gorm:"type:text;not null;index"`
	ValidCount     int     `gorm:"not null;default:0"`
	InvalidCount   int     `gorm:"not null;default:0"`
	DuplicateCount int     `gorm:"not null;default:0"`
	TotalCount     int     `gorm:"not null;default:0"`
	ProcessedCount int     `gorm:"not null;default:0"`
	ErrorMessage   *string `gorm:"type:text"`
	FinishedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
