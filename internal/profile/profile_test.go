package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/models"
)

func listing(r models.BusinessRecord) models.BusinessListing {
	return models.BusinessListing{BusinessRecord: r, Slug: "x", ProfilePath: "/business/x"}
}

func TestBuild_FallsBackToDefaults(t *testing.T) {
	defaults := config.DefaultProfile()
	p := Build(listing(models.BusinessRecord{
		Name:        "Kalaw Food Products",
		TrustGrade:  "B+",
		Rating:      4.2,
		ReviewCount: 38,
	}), defaults)

	assert.Equal(t, "KF", p.Initials)
	assert.Equal(t, "blue", p.GradeColor)
	assert.Equal(t, "+92 123 456 7890", p.Contact.Phone)
	assert.Equal(t, "tel:+921234567890", p.Contact.TelLink)
	assert.Equal(t, "https://www.akhtarindustries.com", p.Contact.WebsiteURL)
	assert.Equal(t, "mailto:contact@akhtarindustries.com", p.Contact.MailtoLink)
	assert.Equal(t, 8, p.Stats.YearsActive)
	assert.Equal(t, 12, p.Stats.DocumentsVerified)
	assert.Equal(t, 3, p.Stats.PartnerReferences)
	assert.Equal(t, "2 days ago", p.Stats.LastUpdated)
	assert.Equal(t, "4.2 average from 38 reviews", p.ReviewSummary)
	assert.Equal(t, defaults.VerifiedDocuments, p.VerifiedDocuments)
}

func TestBuild_RecordContactWins(t *testing.T) {
	p := Build(listing(models.BusinessRecord{
		Name:    "TechFlow Solutions",
		Phone:   "+1 415 555 0142",
		Website: "http://techflow.io",
		Email:   "hello@techflow.io",
	}), config.DefaultProfile())

	assert.Equal(t, "tel:+14155550142", p.Contact.TelLink)
	assert.Equal(t, "http://techflow.io", p.Contact.WebsiteURL)
	assert.Equal(t, "hello@techflow.io", p.Contact.Email)
}

func TestBreakdown(t *testing.T) {
	strong := Breakdown(models.BusinessRecord{Verified: true, Rating: 4.9, ReviewCount: 127}, 3)
	require.Len(t, strong, 3)
	assert.Equal(t, "Compliance", strong[0].Title)
	assert.Equal(t, StatusStrong, strong[0].Status)
	assert.Equal(t, "green", strong[0].Color)
	assert.Equal(t, StatusModerate, strong[1].Status)
	assert.Equal(t, "yellow", strong[1].Color)
	assert.Equal(t, StatusStrong, strong[2].Status)
	assert.Equal(t, "3 positive partner references", strong[2].Description)

	weak := Breakdown(models.BusinessRecord{Verified: false, Rating: 3.6, ReviewCount: 21}, 3)
	assert.Equal(t, StatusModerate, weak[0].Status)
	assert.Equal(t, StatusModerate, weak[2].Status)
	assert.Equal(t, "3.6 average from 21 reviews", weak[2].Description)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "GM", Initials("Global Manufacturing Co."))
	assert.Equal(t, "A", Initials("acme"))
	assert.Equal(t, "", Initials("   "))
	assert.Equal(t, "https://lunoa.com", WebsiteURL("lunoa.com"))
	assert.Equal(t, "https://lunoa.com", WebsiteURL("https://lunoa.com"))
	assert.Equal(t, "", WebsiteURL(""))
	assert.Equal(t, "", TelLink(""))
	assert.Equal(t, "red", StatusColor(StatusWeak))
}
