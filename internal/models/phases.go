package models

// phaseCatalog is the production sequence. Order is meaningful and is kept
// when callers select a subset.
var phaseCatalog = []Phase{
	{
		ID:   "seleccion",
		Name: "Selección de tomas",
		Icon: "🎬",
		BodyTemplate: "📹 SELECCIÓN DE MATERIAL:\n" +
			"- [ ] Revisar todo el material grabado\n" +
			"- [ ] Seleccionar mejores tomas principales\n" +
			"- [ ] Identificar B-roll útil\n" +
			"- [ ] Organizar material por secuencia\n" +
			"- [ ] Crear carpeta de trabajo con selects\n\n" +
			"✅ ENTREGABLE: Material seleccionado y organizado",
		DefaultLabels: []string{"seleccion", "footage", "produccion"},
	},
	{
		ID:   "edicion",
		Name: "Edición",
		Icon: "✂️",
		BodyTemplate: "🎬 EDICIÓN DE VIDEO:\n" +
			"- [ ] Importar footage a software de edición\n" +
			"- [ ] Crear rough cut inicial\n" +
			"- [ ] Ajustar timing y ritmo\n" +
			"- [ ] Aplicar transiciones\n" +
			"- [ ] Agregar efectos visuales si aplica\n" +
			"- [ ] Crear fine cut final\n\n" +
			"✅ ENTREGABLE: Video editado (fine cut)",
		DefaultLabels: []string{"edicion", "video-editing", "postproduccion"},
	},
	{
		ID:   "audio",
		Name: "Diseño sonoro",
		Icon: "🎵",
		BodyTemplate: "🔊 AUDIO Y MÚSICA:\n" +
			"- [ ] Seleccionar música de fondo\n" +
			"- [ ] Ajustar niveles de audio\n" +
			"- [ ] Agregar efectos de sonido si aplica\n" +
			"- [ ] Sincronizar audio con video\n" +
			"- [ ] Masterización final de audio\n\n" +
			"✅ ENTREGABLE: Audio finalizado y mezclado",
		DefaultLabels: []string{"audio", "sound-design", "postproduccion"},
	},
	{
		ID:   "color",
		Name: "Color",
		Icon: "🎨",
		BodyTemplate: "🌈 CORRECCIÓN DE COLOR:\n" +
			"- [ ] Balance de blancos\n" +
			"- [ ] Ajustar exposición y contraste\n" +
			"- [ ] Aplicar LUT o preset de color\n" +
			"- [ ] Corrección de color por shot\n" +
			"- [ ] Ajustes finales de gradación\n\n" +
			"✅ ENTREGABLE: Color grading finalizado",
		DefaultLabels: []string{"color", "color-grading", "postproduccion"},
	},
	{
		ID:   "copy",
		Name: "Copy / Caption",
		Icon: "✍️",
		BodyTemplate: "📝 COPY Y CAPTION:\n" +
			"- [ ] Redactar caption principal\n" +
			"- [ ] Crear hook/gancho inicial\n" +
			"- [ ] Agregar call-to-action\n" +
			"- [ ] Seleccionar hashtags relevantes (3-5)\n" +
			"- [ ] Revisar ortografía y gramática\n\n" +
			"✅ ENTREGABLE: Caption final aprobado",
		DefaultLabels: []string{"copy", "caption", "contenido"},
	},
	{
		ID:   "export",
		Name: "Export",
		Icon: "📤",
		BodyTemplate: "💾 EXPORTACIÓN Y ENTREGA:\n" +
			"- [ ] Exportar en formato correcto (1080x1920, 9:16)\n" +
			"- [ ] Verificar calidad de exportación\n" +
			"- [ ] Comprimir si es necesario\n" +
			"- [ ] Subir a plataforma de almacenamiento\n" +
			"- [ ] Marcar como listo para publicación\n\n" +
			"📐 ESPECIFICACIONES:\n" +
			"- Resolución: 1080x1920 (vertical)\n" +
			"- Formato: MP4, H.264\n" +
			"- Duración: 15-90 segundos\n\n" +
			"✅ ENTREGABLE: Archivo final listo para publicar",
		DefaultLabels: []string{"export", "final", "delivery"},
	},
}

// PhaseCatalog returns a copy of the canonical phases in production order
func PhaseCatalog() []Phase {
	phases := make([]Phase, len(phaseCatalog))
	for i, p := range phaseCatalog {
		p.DefaultLabels = append([]string(nil), p.DefaultLabels...)
		phases[i] = p
	}
	return phases
}

// IsKnownPhase reports whether id names a catalog phase
func IsKnownPhase(id string) bool {
	for _, p := range phaseCatalog {
		if p.ID == id {
			return true
		}
	}
	return false
}

// PhaseIDs returns the catalog IDs in order
func PhaseIDs() []string {
	ids := make([]string, len(phaseCatalog))
	for i, p := range phaseCatalog {
		ids[i] = p.ID
	}
	return ids
}
