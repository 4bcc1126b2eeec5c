package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgrade-workers/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Kalaw Food Products":       "kalaw-food-products",
		"TechFlow Solutions":        "techflow-solutions",
		"Global Manufacturing Co.":  "global-manufacturing-co",
		"  --Hello,   World!!--  ":  "hello-world",
		"Food & Beverage":           "food-beverage",
		"ÜBER Café 24/7":            "ber-caf-24-7",
		"":                          "",
		"!!!":                       "",
		"already-a-slug":            "already-a-slug",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got := Slugify(in)
			assert.Equal(t, want, got)
			assert.Equal(t, got, Slugify(got), "slugify must be idempotent")
		})
	}
}

func TestSlugify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Slugify("kalaw food products"), Slugify("KALAW FOOD PRODUCTS"))
}

func TestResolve(t *testing.T) {
	records := seedRecords(t)

	r, ok := Resolve(records, "techflow-solutions")
	require.True(t, ok)
	assert.Equal(t, "TechFlow Solutions", r.Name)

	_, ok = Resolve(records, "nonexistent")
	assert.False(t, ok)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	records := []models.BusinessRecord{
		{ID: 7, Name: "Acme Co"},
		{ID: 3, Name: "ACME  co."},
	}
	r, ok := Resolve(records, "acme-co")
	require.True(t, ok)
	assert.Equal(t, 7, r.ID)
}

func TestProfilePath(t *testing.T) {
	assert.Equal(t, "/business/kalaw-food-products", ProfilePath(Slugify("Kalaw Food Products")))
}
