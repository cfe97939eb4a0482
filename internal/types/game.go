package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game is one playable mini-game configuration created by a parent,
// either from a template form or synthesized from a voice/text prompt.
// TemplateParams holds the per-template configuration blob; its shape is
// validated against Template before a row is ever written.
type Game struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	Template         string         `gorm:"column:template;not null;index" json:"template"`
	AgeGroup         string         `gorm:"column:age_group;index" json:"age_group"`
	EducationalGoals datatypes.JSON `gorm:"column:educational_goals" json:"educational_goals"`
	TemplateParams   datatypes.JSON `gorm:"column:template_params" json:"template_params"`
	Tags             datatypes.JSON `gorm:"column:tags" json:"tags"`
	ThumbnailURL     string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	IsPublic         bool           `gorm:"column:is_public;not null;index" json:"is_public"`
	Likes            int            `gorm:"column:likes;not null;default:0" json:"likes"`
	Plays            int            `gorm:"column:plays;not null;default:0" json:"plays"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Game) TableName() string { return "game" }

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type GameLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_like_game_user" json:"game_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_like_game_user" json:"user_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (GameLike) TableName() string { return "game_like" }

func (l *GameLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
