package parser

import (
	"strings"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

type keywordSet[T any] struct {
	value    T
	keywords []string
}

// workTypeKeywords is scanned in order; on equal scores the earlier entry wins.
var workTypeKeywords = []keywordSet[models.WorkType]{
	{models.WorkTypeBug, []string{
		"bug", "error", "falla", "fallo", "problema", "issue",
		"arreglar", "corregir", "fix", "solucionar", "reparar",
		"no funciona", "roto", "broken",
	}},
	{models.WorkTypeStory, []string{
		"historia", "story", "user story", "como usuario",
		"necesito", "quiero que", "feature request", "nueva funcionalidad",
	}},
	{models.WorkTypeEpic, []string{
		"epic", "épica", "iniciativa", "programa", "proyecto grande",
		"milestone", "fase",
	}},
	{models.WorkTypeTask, []string{
		"tarea", "task", "hacer", "crear", "implementar", "agregar",
		"desarrollar", "actualizar", "modificar", "editar", "configurar",
	}},
}

// priorityKeywords is scanned highest first and the first hit wins.
var priorityKeywords = []keywordSet[models.Priority]{
	{models.PriorityHighest, []string{
		"crítico", "critical", "urgente", "urgent", "inmediato",
		"asap", "bloqueante", "blocker", "emergencia", "ahora mismo",
	}},
	{models.PriorityHigh, []string{
		"alta", "high", "importante", "important", "pronto",
		"prioritario", "priority",
	}},
	{models.PriorityMedium, []string{
		"media", "medium", "normal", "regular", "moderado",
	}},
	{models.PriorityLow, []string{
		"baja", "low", "menor", "minor", "cuando se pueda",
		"no urgente",
	}},
	{models.PriorityLowest, []string{
		"muy baja", "lowest", "mínima", "trivial", "algún día",
		"nice to have",
	}},
}

// classifyWorkType scores each type: 2 for a keyword that opens the text,
// 1 for one found anywhere else.
func (p *Parser) classifyWorkType(normalized string) models.WorkType {
	best := p.opts.DefaultWorkType
	bestScore := 0

	for _, set := range workTypeKeywords {
		score := 0
		for _, kw := range set.keywords {
			if !strings.Contains(normalized, kw) {
				continue
			}
			if strings.HasPrefix(normalized, kw) {
				score += 2
			} else {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = set.value, score
		}
	}

	return best
}

func (p *Parser) classifyPriority(normalized string) models.Priority {
	for _, set := range priorityKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(normalized, kw) {
				return set.value
			}
		}
	}
	return p.opts.DefaultPriority
}
