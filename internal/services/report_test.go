package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stiago2/jira-ai-agent/internal/config"
	"github.com/stiago2/jira-ai-agent/internal/models"
)

func sampleBatchResult() *models.BatchResult {
	result := &models.BatchResult{
		BatchID:    "b-42",
		ProjectKey: "KAN",
		StartedAt:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Requested:  3,
	}

	result.Add(models.ItemResult{
		Index:      0,
		Status:     models.StatusCreated,
		ParentKey:  "KAN-1",
		ParentURL:  "https://acme.atlassian.net/browse/KAN-1",
		TotalCount: 2,
		Children: []models.ChildResult{
			{Key: "KAN-2", Summary: "✂️ Edición – Viaje", URL: "https://acme.atlassian.net/browse/KAN-2"},
		},
		OriginalText: "Reel de viaje",
	})
	result.Add(models.ItemResult{
		Index:         1,
		Status:        models.StatusPartial,
		ParentKey:     "KAN-3",
		ParentURL:     "https://acme.atlassian.net/browse/KAN-3",
		TotalCount:    1,
		ChildFailures: []models.ChildFailure{{PhaseID: "color", Phase: "Color", Error: "bad field"}},
		Error:         "1 of 1 subtasks failed",
		OriginalText:  "Historia de arepas",
	})
	result.Add(models.ItemResult{
		Index:        2,
		Status:       models.StatusFailed,
		Error:        "text cannot be empty",
		ErrorKind:    models.KindValidation,
		OriginalText: "",
	})

	return result
}

func TestRenderBatchSummary(t *testing.T) {
	md := renderBatchSummary(sampleBatchResult())

	assert.True(t, strings.HasPrefix(md, "# Batch b-42\n\n**Project:** KAN\n"))
	assert.Contains(t, md, "**Requested:** 3 | **Created:** 1 | **Partial:** 1 | **Failed:** 1 | **Skipped:** 0")
	assert.Contains(t, md, "**Tracker items:** 3")
	assert.Contains(t, md, "[KAN-1](https://acme.atlassian.net/browse/KAN-1)")
	assert.Contains(t, md, "- [KAN-2](https://acme.atlassian.net/browse/KAN-2) ✂️ Edición – Viaje")
	assert.Contains(t, md, "- ❌ Color: bad field")
	assert.Contains(t, md, "**Error:** text cannot be empty")
	assert.NotContains(t, md, "**Error:** 1 of 1 subtasks failed")
}

func TestSaveBatchReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	reports := NewReportService(&config.ProcessingConfig{OutputDir: dir})

	jsonPath, mdPath, err := reports.SaveBatchReport(sampleBatchResult())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "batch-result-20260314-092653.json"), jsonPath)
	assert.Equal(t, filepath.Join(dir, "batch-summary-20260314-092653.md"), mdPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var saved models.BatchResult
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "b-42", saved.BatchID)
	assert.Equal(t, 3, saved.TrackerItemsTotal)
	assert.Len(t, saved.Results, 3)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Batch b-42")
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "corto", truncateText("corto", 10))
	assert.Equal(t, "ñañañ...", truncateText("ñañañañañaña", 8))
}
