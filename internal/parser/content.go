package parser

import (
	"strings"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

// DetectContentType picks carousel, then story, and falls back to reel
func DetectContentType(text string) models.ContentType {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "carrusel"), strings.Contains(lower, "carousel"):
		return models.ContentCarousel
	case strings.Contains(lower, "historia"), strings.Contains(lower, "story"), strings.Contains(lower, "stories"):
		return models.ContentStory
	default:
		return models.ContentReel
	}
}
