package parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stiago2/jira-ai-agent/internal/models"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New(DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestParse_EmptyInput(t *testing.T) {
	p := newTestParser(t)

	for _, text := range []string{"", "   ", "\n\t  ", "\u00a0\u2003"} {
		intent, err := p.Parse(text)
		require.Error(t, err)
		assert.Nil(t, intent)
		assert.ErrorIs(t, err, models.ErrEmptyInput)
		assert.Equal(t, models.KindValidation, models.Classify(err))
	}
}

func TestParse_BugWithAssignee(t *testing.T) {
	p := newTestParser(t)

	intent, err := p.Parse("Bug crítico: el login no funciona en mobile, asignar a María")
	require.NoError(t, err)

	assert.Equal(t, models.WorkTypeBug, intent.WorkType)
	assert.Contains(t, []models.Priority{models.PriorityHighest, models.PriorityHigh}, intent.Priority)
	assert.Equal(t, "María", intent.AssigneeName)
	assert.Equal(t, "Bug crítico: el login no funciona en mobile", intent.Summary)
	assert.Equal(t, []string{"mobile", "urgent"}, intent.Labels)
	assert.InDelta(t, 1.0, intent.Confidence, 1e-9)

	// The cleaned original collapses to the summary, so the note is appended.
	assert.True(t, strings.HasPrefix(intent.Description, "Bug crítico: el login no funciona en mobile\n\n"))
	assert.Contains(t, intent.Description, autoCreatedNote)
}

func TestParse_TaskWithPriorityAndAssignee(t *testing.T) {
	p := newTestParser(t)

	intent, err := p.Parse("Crea una tarea para editar el reel de Komodo, prioridad alta, asignada a Juan")
	require.NoError(t, err)

	assert.Equal(t, models.WorkTypeTask, intent.WorkType)
	assert.Equal(t, models.PriorityHigh, intent.Priority)
	assert.Equal(t, "Juan", intent.AssigneeName)
	assert.Equal(t, "Editar el reel de komodo", intent.Summary)
	assert.Contains(t, strings.ToLower(intent.Summary), "komodo")
	assert.NotContains(t, strings.ToLower(intent.Summary), "asignada a juan")
	assert.NotContains(t, strings.ToLower(intent.Summary), "prioridad alta")
	assert.Equal(t, "Crea una tarea para editar el reel de Komodo", intent.Description)
	assert.Equal(t, []string{"reel", "edicion"}, intent.Labels)
	assert.InDelta(t, 0.8, intent.Confidence, 1e-9)
}

func TestParse_WorkType(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		text string
		want models.WorkType
	}{
		{"story keyword at start", "Como usuario quiero exportar datos a CSV", models.WorkTypeStory},
		{"epic keyword at start", "Epic para implementar el módulo de reportes", models.WorkTypeEpic},
		{"bug verb at start", "Arreglar el bug en el login de mobile", models.WorkTypeBug},
		{"no keywords falls back to default", "comprar pan mañana temprano", models.WorkTypeTask},
		{"start bonus beats earlier type", "tarea para arreglar", models.WorkTypeTask},
		{"tie goes to bug over task", "revisar tarea y arreglar", models.WorkTypeBug},
		{"tie goes to bug over story", "una historia con error", models.WorkTypeBug},
		{"non-breaking space inside keyword", "el login no\u00a0funciona", models.WorkTypeBug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent.WorkType)
		})
	}
}

func TestParse_Priority(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		text string
		want models.Priority
	}{
		{"highest", "Crear tarea urgente para el servidor", models.PriorityHighest},
		{"high", "tarea importante", models.PriorityHigh},
		{"low", "tarea menor", models.PriorityLow},
		{"medium keyword", "tarea normal de mantenimiento", models.PriorityMedium},
		{"default", "comprar pan mañana temprano", models.PriorityMedium},
		{"high tier scanned before low regardless of position", "tarea menor pero importante", models.PriorityHigh},
		{"high tier scanned before low when low comes last", "importante aunque es menor", models.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent.Priority)
		})
	}
}

func TestParse_Assignee(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"asignada a", "Tarea asignada a Pedro", "Pedro"},
		{"para at end", "Tarea para María", "María"},
		{"que lo haga", "Tarea que lo haga Luis", "Luis"},
		{"mention", "Tarea @Ana", "Ana"},
		{"responsable", "responsable: Carlos revisar el guion", "Carlos"},
		{"a cargo de", "Grabar video a cargo de Sofía", "Sofía"},
		{"assigned to", "Review the edit, assigned to John", "John"},
		{"lowercase name is capitalized", "editar reel asignado a juan", "Juan"},
		{"mixed case kept verbatim", "editar reel para McKenzie", "McKenzie"},
		{"explicit form wins over para", "Tarea para Ana, asignada a Pedro", "Pedro"},
		{"none", "Editar el reel de Komodo", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent.AssigneeName)
			assert.Equal(t, tt.want != "", intent.HasAssignee())
		})
	}
}

func TestParse_Labels(t *testing.T) {
	p := newTestParser(t)

	intent, err := p.Parse("Implementar autenticación en el backend API con testing")
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "testing", "security"}, intent.Labels)

	intent, err = p.Parse("reel de viaje a cartagena en la playa, video urgente para publicar")
	require.NoError(t, err)
	assert.Equal(t, []string{"reel", "video", "publicacion", "viaje", "cartagena"}, intent.Labels)
	assert.Len(t, intent.Labels, MaxLabels)
}

func TestParse_Summary(t *testing.T) {
	p := newTestParser(t)

	t.Run("truncated to tracker limit", func(t *testing.T) {
		intent, err := p.Parse("Crear tarea " + strings.Repeat("x", 300))
		require.NoError(t, err)
		assert.Equal(t, MaxSummaryLength, utf8.RuneCountInString(intent.Summary))
		assert.True(t, strings.HasSuffix(intent.Summary, "..."))
		assert.True(t, strings.HasPrefix(intent.Summary, "Xxx"))
	})

	t.Run("falls back when stripping leaves too little", func(t *testing.T) {
		intent, err := p.Parse("Fix el bug")
		require.NoError(t, err)
		assert.Equal(t, "Fix el bug", intent.Summary)
	})

	t.Run("reverse order priority phrase removed", func(t *testing.T) {
		intent, err := p.Parse("Editar reel de Komodo, muy alta prioridad")
		require.NoError(t, err)
		assert.Equal(t, "Editar reel de komodo", intent.Summary)
		assert.Equal(t, "Editar reel de Komodo\n\n"+autoCreatedNote, intent.Description)
	})

	t.Run("normalizes whitespace and case", func(t *testing.T) {
		intent, err := p.Parse("  CREAR   TAREA   CON   ESPACIOS  ")
		require.NoError(t, err)
		assert.Equal(t, "Con espacios", intent.Summary)
		assert.Equal(t, models.WorkTypeTask, intent.WorkType)
	})
}

func TestParse_Confidence(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"short input is penalized", "bug", 0.5},
		{"plain task", "comprar pan mañana temprano", 0.65},
		{"type priority and title", "Bug crítico: el login no funciona en mobile, asignar a María", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := p.Parse(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, intent.Confidence, 1e-9)
		})
	}
}

func TestParse_Invariants(t *testing.T) {
	p := newTestParser(t)

	texts := []string{
		"x",
		"Bug urgente: el login no funciona en mobile",
		"Implementar autenticación con OAuth2 para el backend",
		"Documentar la API REST, baja prioridad",
		"Como usuario quiero poder exportar mis datos a CSV",
		"Historia de receta de arepas, asignado a santiago",
		strings.Repeat("necesito que ", 40),
		"@",
	}

	for _, text := range texts {
		first, err := p.Parse(text)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, first.Confidence, 0.0)
		assert.LessOrEqual(t, first.Confidence, 1.0)
		assert.True(t, first.WorkType.Valid(), "work type %q", first.WorkType)
		assert.True(t, first.Priority.Valid(), "priority %q", first.Priority)
		assert.NotEmpty(t, first.Summary)
		assert.LessOrEqual(t, utf8.RuneCountInString(first.Summary), MaxSummaryLength)
		assert.LessOrEqual(t, len(first.Labels), MaxLabels)

		second, err := p.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, first, second, "parsing %q twice should be identical", text)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii runs", "  Editar   el\treel\n", "editar el reel"},
		{"non-breaking space", "Editar\u00a0reel\u00a0\u00a0Komodo", "editar reel komodo"},
		{"em space and ideographic space", "ahora\u2003mismo\u3000ya", "ahora mismo ya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NonBreakingSpaces(t *testing.T) {
	p := newTestParser(t)

	intent, err := p.Parse("Arreglar\u00a0el login, ahora\u00a0mismo")
	require.NoError(t, err)
	assert.Equal(t, models.WorkTypeBug, intent.WorkType)
	assert.Equal(t, models.PriorityHighest, intent.Priority)
	assert.NotContains(t, intent.Summary, "\u00a0")
}

func TestNew_Options(t *testing.T) {
	_, err := New(Options{DefaultWorkType: "Chore"})
	require.Error(t, err)

	_, err = New(Options{DefaultPriority: "Urgent"})
	require.Error(t, err)

	p, err := New(Options{DefaultPriority: models.PriorityLow})
	require.NoError(t, err)

	intent, err := p.Parse("comprar pan mañana temprano")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, intent.Priority)
	assert.Equal(t, models.WorkTypeTask, intent.WorkType)
	assert.InDelta(t, 0.65, intent.Confidence, 1e-9)
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		text string
		want models.ContentType
	}{
		{"Crear carrusel de tips de viaje", models.ContentCarousel},
		{"Carousel with travel tips", models.ContentCarousel},
		{"Historia de receta de arepas", models.ContentStory},
		{"Instagram stories del hotel", models.ContentStory},
		{"Crear reel sobre viaje a Cartagena", models.ContentReel},
		{"Carrusel para la historia", models.ContentCarousel},
		{"Grabar entrevista", models.ContentReel},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectContentType(tt.text))
		})
	}
}
