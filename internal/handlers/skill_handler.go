package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"internmatch/internal/services"
)

const suggestionLimit = 10

// SkillHandler serves skill autocomplete. When the vector index and an
// embedding backend are wired it searches semantically; otherwise it falls
// back to substring filtering over the built-in vocabulary.
type SkillHandler struct {
	provider   *services.SimilarityProvider
	skillIndex services.SkillIndexService
}

func NewSkillHandler(provider *services.SimilarityProvider, skillIndex services.SkillIndexService) *SkillHandler {
	return &SkillHandler{
		provider:   provider,
		skillIndex: skillIndex,
	}
}

// HandleSuggestions handles GET /skills/suggestions?q=
func (h *SkillHandler) HandleSuggestions(c *fiber.Ctx) error {
	query := c.Query("q")

	if query != "" && h.skillIndex != nil {
		embedding, err := h.provider.Embed(c.UserContext(), query)
		if err == nil {
			skills, err := h.skillIndex.SearchSkills(c.UserContext(), embedding, suggestionLimit)
			if err == nil && len(skills) > 0 {
				return c.JSON(skills)
			}
			if err != nil {
				log.Printf("⚠️  Skill index search failed: %v\n", err)
			}
		}
	}

	return c.JSON(services.SuggestSkills(query, suggestionLimit))
}
