package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/models"
)

func seedRecords(t *testing.T) []models.BusinessRecord {
	t.Helper()
	records, err := LoadSeed()
	require.NoError(t, err)
	return records
}

func names(records []models.BusinessRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestMatches(t *testing.T) {
	techflow := models.BusinessRecord{
		Name:        "TechFlow Solutions",
		Industry:    "Technology",
		Location:    "San Francisco, CA",
		Description: "Cloud infrastructure and workflow automation",
		TrustGrade:  "A+",
		Verified:    true,
		Rating:      4.9,
		Employees:   "51-200",
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"empty criteria", Criteria{}, true},
		{"all filters", Criteria{Industry: All, Location: All, Size: All, Grade: All}, true},
		{"query on name is case insensitive", Criteria{Query: "techFLOW"}, true},
		{"query on industry", Criteria{Query: "techno"}, true},
		{"query on description", Criteria{Query: "WORKFLOW"}, true},
		{"query miss", Criteria{Query: "textile"}, false},
		{"industry exact", Criteria{Industry: "Technology"}, true},
		{"industry is not case folded", Criteria{Industry: "technology"}, false},
		{"location mismatch", Criteria{Location: "Austin, TX"}, false},
		{"size medium", Criteria{Size: SizeMedium}, true},
		{"size small", Criteria{Size: SizeSmall}, false},
		{"grade match", Criteria{Grade: "A+"}, true},
		{"grade mismatch", Criteria{Grade: "A"}, false},
		{"rating equal to minimum", Criteria{MinRating: 4.9}, true},
		{"rating below minimum", Criteria{MinRating: 5}, false},
		{"verified only", Criteria{VerifiedOnly: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(techflow, tt.criteria))
		})
	}
}

func TestMatches_UnverifiedExcludedWhenVerifiedOnly(t *testing.T) {
	r := models.BusinessRecord{Name: "Kalaw Food Products", Verified: false}
	assert.True(t, Matches(r, Criteria{}))
	assert.False(t, Matches(r, Criteria{VerifiedOnly: true}))
}

func TestEmployeeCount(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1-10", 1, true},
		{"51-200", 51, true},
		{"501-1000", 501, true},
		{"1000+", 1000, true},
		{"1,000-5,000", 1000, true},
		{"about 30 people", 30, true},
		{"unknown", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := EmployeeCount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestSizeBuckets(t *testing.T) {
	assert.True(t, inSizeBucket("11-50", SizeSmall))
	assert.True(t, inSizeBucket("50", SizeSmall))
	assert.True(t, inSizeBucket("51-200", SizeMedium))
	assert.True(t, inSizeBucket("201-500", SizeMedium))
	assert.True(t, inSizeBucket("501-1000", SizeLarge))
	assert.True(t, inSizeBucket("1000+", SizeLarge))
	assert.False(t, inSizeBucket("n/a", SizeSmall))
	assert.False(t, inSizeBucket("n/a", SizeLarge))
}

func TestFilter_TechnologyWithMinRating(t *testing.T) {
	records := seedRecords(t)
	require.Len(t, records, 8)

	minRating, err := ParseMinRating("4")
	require.NoError(t, err)

	got := Filter(records, Criteria{Industry: "Technology", Location: All, MinRating: minRating})
	assert.Equal(t, []string{"TechFlow Solutions"}, names(got))
}

func TestFilter_PreservesOrder(t *testing.T) {
	records := seedRecords(t)
	got := Filter(records, Criteria{VerifiedOnly: true})

	last := 0
	for _, r := range got {
		assert.Greater(t, r.ID, last)
		last = r.ID
	}
}

func TestFilter_RelaxingAFilterNeverShrinksResults(t *testing.T) {
	records := seedRecords(t)
	strict := Criteria{
		Query:        "a",
		Industry:     "Manufacturing",
		Location:     "Karachi, Pakistan",
		Size:         SizeMedium,
		Grade:        "A",
		MinRating:    4.5,
		VerifiedOnly: true,
	}

	relaxations := map[string]func(c *Criteria){
		"query":     func(c *Criteria) { c.Query = "" },
		"industry":  func(c *Criteria) { c.Industry = All },
		"location":  func(c *Criteria) { c.Location = All },
		"size":      func(c *Criteria) { c.Size = All },
		"grade":     func(c *Criteria) { c.Grade = All },
		"minRating": func(c *Criteria) { c.MinRating = 0 },
		"verified":  func(c *Criteria) { c.VerifiedOnly = false },
	}

	base := len(Filter(records, strict))
	for name, relax := range relaxations {
		t.Run(name, func(t *testing.T) {
			c := strict
			relax(&c)
			assert.GreaterOrEqual(t, len(Filter(records, c)), base)
		})
	}
}

func TestParseMinRating(t *testing.T) {
	for in, want := range map[string]float64{"": 0, "all": 0, "4": 4, "4.5": 4.5, " 3 ": 3, "0": 0, "5": 5} {
		got, err := ParseMinRating(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"four", "-1", "5.5", "NaN"} {
		_, err := ParseMinRating(in)
		require.Error(t, err, in)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidSearchCriteria), in)
	}
}

func TestParseSize(t *testing.T) {
	for _, in := range []string{"", All, SizeSmall, SizeMedium, SizeLarge} {
		_, err := ParseSize(in)
		assert.NoError(t, err, in)
	}
	got, err := ParseSize(" Large ")
	require.NoError(t, err)
	assert.Equal(t, SizeLarge, got)

	_, err = ParseSize("huge")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidSearchCriteria))
}
