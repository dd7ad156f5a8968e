package repositories

import (
	"strings"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

// NewADFDocument converts plain text into an Atlassian Document Format body.
// Blank lines separate paragraphs; an empty text yields nil.
func NewADFDocument(text string) *models.ADFDocument {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var content []models.ADFNode
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		content = append(content, adfParagraph(paragraph))
	}

	return &models.ADFDocument{
		Type:    "doc",
		Version: 1,
		Content: content,
	}
}

func adfParagraph(text string) models.ADFNode {
	return models.ADFNode{
		Type:    "paragraph",
		Content: []models.ADFNode{{Type: "text", Text: text}},
	}
}
