package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlaySession records one play-through of a game. Progress is an opaque
// client blob; Score is set on completion (or incrementally for catch games).
type PlaySession struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GameID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"game_id"`
	Game        *Game          `gorm:"constraint:OnDelete:CASCADE;foreignKey:GameID;references:ID" json:"-"`
	PlayerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"player_id"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Score       *int           `gorm:"column:score" json:"score,omitempty"`
	Progress    datatypes.JSON `gorm:"column:progress" json:"progress"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (PlaySession) TableName() string { return "play_session" }

func (s *PlaySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
