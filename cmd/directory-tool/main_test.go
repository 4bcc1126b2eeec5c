package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/models"
)

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	log = logger.NewTestLogger(t)
	configPath = ""

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func resetSearchFlags() {
	searchFlags.query = ""
	searchFlags.industry = directory.All
	searchFlags.location = directory.All
	searchFlags.size = directory.All
	searchFlags.grade = directory.All
	searchFlags.minRating = directory.All
	searchFlags.verified = false
}

func TestSlugify(t *testing.T) {
	cmd, out := testCommand(t)

	require.NoError(t, runSlugify(cmd, []string{"Akhtar Industries", "  Acme & Co. "}))
	assert.Equal(t, "akhtar-industries\tAkhtar Industries\nacme-co\t  Acme & Co. \n", out.String())
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantTotal int
		wantSlug  string
	}{
		{name: "all", setup: func() {}, wantTotal: 8},
		{
			name:      "technology above 4.5",
			setup:     func() { searchFlags.industry = "Technology"; searchFlags.minRating = "4.5" },
			wantTotal: 1,
			wantSlug:  "techflow-solutions",
		},
		{name: "large", setup: func() { searchFlags.size = "Large" }, wantTotal: 2},
		{name: "nothing", setup: func() { searchFlags.query = "no such business" }, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out := testCommand(t)
			resetSearchFlags()
			tt.setup()

			require.NoError(t, runSearch(cmd, nil))

			var got struct {
				Businesses []models.BusinessListing `json:"businesses"`
				Total      int                      `json:"total"`
			}
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Len(t, got.Businesses, tt.wantTotal)
			if tt.wantSlug != "" {
				assert.Equal(t, tt.wantSlug, got.Businesses[0].Slug)
			}
		})
	}
}

func TestSearch_InvalidCriteria(t *testing.T) {
	cmd, _ := testCommand(t)
	resetSearchFlags()
	searchFlags.minRating = "great"

	err := runSearch(cmd, nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidSearchCriteria))
}

func TestResolveAndProfile(t *testing.T) {
	cmd, out := testCommand(t)

	require.NoError(t, runResolve(cmd, []string{"akhtar-industries"}))
	var listing models.BusinessListing
	require.NoError(t, json.Unmarshal(out.Bytes(), &listing))
	assert.Equal(t, 4, listing.ID)
	assert.Equal(t, "/business/akhtar-industries", listing.ProfilePath)

	out.Reset()
	require.NoError(t, runProfile(cmd, []string{"akhtar-industries"}))
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, "AI", p["initials"])

	err := runResolve(cmd, []string{"Akhtar-Industries"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeBusinessNotFound))
}

func TestIndex_RequiresElasticsearch(t *testing.T) {
	cmd, _ := testCommand(t)

	err := runIndex(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elasticsearch")
}

func TestRegistryExportAndValidate(t *testing.T) {
	cmd, out := testCommand(t)
	registryPath = filepath.Join(t.TempDir(), "activity-registry.json")

	require.NoError(t, runRegistryExport(cmd, nil))
	assert.Contains(t, out.String(), "wrote 10 activities")

	out.Reset()
	require.NoError(t, runRegistryValidate(cmd, nil))
	assert.Contains(t, out.String(), "passed")
}
