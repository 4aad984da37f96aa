package models

import "time"

// ImportIssue is one invalid or duplicate row of an import run.
type ImportIssue struct {
	ID        int64     `gorm:"primaryKey"`
	RunID     string    `gorm:"type:uuid;index;not null"`
	RowNumber int       `gorm:"not null"`
	Kind      string    `gorm:"type:text;not null"`
	Email     string    `gorm:"type:text;not null;default:''"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (ImportIssue) TableName() string {
	return "import_issues"
}
