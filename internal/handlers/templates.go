package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/creative"
)

// TemplateInfo describes one game template for the creation form.
type TemplateInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AgeGroups   []string `json:"age_groups"`
	Skills      []string `json:"skills"`
}

var templateCatalog = []TemplateInfo{
	{
		ID:          "matching",
		Name:        "Memory Pairs",
		Description: "Flip cards and find the matching pairs.",
		AgeGroups:   []string{"3-4", "4-6", "7-9"},
		Skills:      []string{"memory", "concentration"},
	},
	{
		ID:          "sorting",
		Name:        "Sort It Out",
		Description: "Drag items into the right order.",
		AgeGroups:   []string{"4-6", "7-9"},
		Skills:      []string{"numbers", "letters", "sequencing"},
	},
	{
		ID:          "catch",
		Name:        "Catch!",
		Description: "Move the catcher and grab the falling objects.",
		AgeGroups:   []string{"3-4", "4-6"},
		Skills:      []string{"coordination", "reaction"},
	},
	{
		ID:          "story",
		Name:        "Picture Story",
		Description: "Tap through a little story, scene by scene.",
		AgeGroups:   []string{"3-4", "4-6"},
		Skills:      []string{"language", "imagination"},
	},
}

type TemplatesHandler struct{}

func NewTemplatesHandler() *TemplatesHandler {
	return &TemplatesHandler{}
}

func (th *TemplatesHandler) List(c *gin.Context) {
	RespondOK(c, gin.H{"templates": templateCatalog})
}

// Vocabulary exposes the creative mapping tables so the client can render
// the child-facing picker with the same choices the interpreter understands.
func (th *TemplatesHandler) Vocabulary(c *gin.Context) {
	RespondOK(c, gin.H{
		"objects":  creative.Objects(),
		"catchers": creative.Catchers(),
		"colors":   creative.ColorEffects(),
	})
}
