package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	Content    string    `gorm:"type:text" json:"content"`
	Version    string    `gorm:"type:text" json:"version"`
	SourceFile string    `gorm:"type:text" json:"sourceFile,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Resume) TableName() string {
	return "resumes"
}
