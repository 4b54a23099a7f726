package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage is a named pipeline position for an application.
type Stage string

const (
	StageWishlist     Stage = "Wishlist"
	StageApplied      Stage = "Applied"
	StageInterviewing Stage = "Interviewing"
	StageOffer        Stage = "Offer Extended"
	StageHired        Stage = "Hired"
	StageArchived     Stage = "Archived"
)

// Stages lists the pipeline columns in board order.
var Stages = []Stage{
	StageWishlist,
	StageApplied,
	StageInterviewing,
	StageOffer,
	StageHired,
	StageArchived,
}

func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

type Application struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Company       string    `gorm:"type:text;not null" json:"company"`
	Role          string    `gorm:"type:text;not null" json:"role"`
	Location      string    `gorm:"type:text" json:"location"`
	Stage         Stage     `gorm:"type:text;not null;default:'Wishlist'" json:"stage"`
	DateApplied   string    `gorm:"type:text" json:"dateApplied,omitempty"`
	SalaryRange   string    `gorm:"type:text" json:"salaryRange,omitempty"`
	Description   string    `gorm:"type:text" json:"description"`
	Notes         string    `gorm:"type:text" json:"notes"`
	ResumeVersion string    `gorm:"type:text" json:"resumeVersion,omitempty"`
	LogoURL       string    `gorm:"type:text" json:"logoUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Application) TableName() string {
	return "applications"
}

// DefaultLogoURL is the placeholder avatar used when no logo is supplied.
func DefaultLogoURL(company string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/40/40", strings.ToLower(company))
}

// TailoredVersionLabel is the resume version recorded after a tailoring is saved.
func TailoredVersionLabel(company string) string {
	return fmt.Sprintf("%s-Custom-V1", company)
}

// DashboardStats summarises the pipeline.
type DashboardStats struct {
	TotalApplied        int `json:"totalApplied"`
	InterviewsScheduled int `json:"interviewsScheduled"`
	OffersReceived      int `json:"offersReceived"`
	SuccessRate         int `json:"successRate"`
}
