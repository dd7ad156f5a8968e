package parser

import "strings"

// MaxLabels caps how many tags an intent carries
const MaxLabels = 5

type labelRule struct {
	label    string
	keywords []string
}

// labelRules is emitted in table order.
var labelRules = []labelRule{
	// platform
	{"frontend", []string{"frontend", "ui", "interfaz", "diseño", "visual"}},
	{"backend", []string{"backend", "servidor", "api", "base de datos", "database"}},
	{"mobile", []string{"mobile", "móvil", "ios", "android", "app"}},

	// documentation and testing
	{"documentation", []string{"documentación", "documentation", "docs", "readme"}},
	{"testing", []string{"testing", "test", "prueba", "qa"}},

	// security and performance
	{"security", []string{"seguridad", "security", "auth", "autenticación"}},
	{"performance", []string{"performance", "rendimiento", "optimización", "velocidad"}},

	// content format
	{"reel", []string{"reel", "reels"}},
	{"historia", []string{"historia", "story", "stories"}},
	{"video", []string{"video", "grabación", "filmación"}},
	{"edicion", []string{"edición", "editar", "editing", "montaje"}},
	{"publicacion", []string{"publicación", "publicar", "posting", "subir"}},

	// content topic
	{"viaje", []string{"viaje", "travel", "turismo"}},
	{"comida", []string{"comida", "receta", "food", "cocina"}},
	{"tutorial", []string{"tutorial", "how-to", "guía", "paso a paso"}},
	{"promocional", []string{"promocional", "promo", "ads", "publicidad"}},

	// location
	{"cartagena", []string{"cartagena"}},
	{"bogota", []string{"bogotá", "bogota"}},
	{"medellin", []string{"medellín", "medellin"}},
	{"playa", []string{"playa", "beach"}},
	{"estudio", []string{"estudio", "studio"}},

	// urgency
	{"urgent", []string{"urgente", "urgent", "crítico", "critical", "asap"}},
}

func extractLabels(normalized string) []string {
	labels := make([]string, 0, MaxLabels)
	seen := make(map[string]bool)

	for _, rule := range labelRules {
		if seen[rule.label] {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				labels = append(labels, rule.label)
				seen[rule.label] = true
				break
			}
		}
		if len(labels) == MaxLabels {
			break
		}
	}

	return labels
}
