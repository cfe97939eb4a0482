package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssistantPrefs is the per-user AI learning-assistant configuration.
// Everything defaults to off; the adapter is a no-op until a parent opts in.
type AssistantPrefs struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Enabled            bool      `gorm:"column:enabled;not null;default:false" json:"enabled"`
	SmartHints         bool      `gorm:"column:smart_hints;not null;default:false" json:"smart_hints"`
	AdaptiveDifficulty bool      `gorm:"column:adaptive_difficulty;not null;default:false" json:"adaptive_difficulty"`
	ProgressAnalysis   bool      `gorm:"column:progress_analysis;not null;default:false" json:"progress_analysis"`
	ContentGeneration  bool      `gorm:"column:content_generation;not null;default:false" json:"content_generation"`
	Personality        string    `gorm:"column:personality;not null;default:encouraging" json:"personality"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (AssistantPrefs) TableName() string { return "assistant_prefs" }

func (p *AssistantPrefs) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
