// Package profile assembles the public business profile page data.
package profile

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/trust"
)

const (
	StatusStrong   = "strong"
	StatusModerate = "moderate"
	StatusWeak     = "weak"
)

type ContactInfo struct {
	Phone      string `json:"phone"`
	Website    string `json:"website"`
	Email      string `json:"email"`
	WebsiteURL string `json:"websiteUrl"`
	TelLink    string `json:"telLink"`
	MailtoLink string `json:"mailtoLink"`
}

type Stats struct {
	YearsActive       int    `json:"yearsActive"`
	DocumentsVerified int    `json:"documentsVerified"`
	PartnerReferences int    `json:"partnerReferences"`
	LastUpdated       string `json:"lastUpdated"`
}

type BreakdownItem struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Details     string `json:"details"`
	Color       string `json:"color"`
}

type Profile struct {
	Business          models.BusinessListing `json:"business"`
	Initials          string                 `json:"initials"`
	GradeColor        string                 `json:"gradeColor"`
	Contact           ContactInfo            `json:"contact"`
	Stats             Stats                  `json:"stats"`
	TrustBreakdown    []BreakdownItem        `json:"trustBreakdown"`
	VerifiedDocuments []string               `json:"verifiedDocuments"`
	ReviewSummary     string                 `json:"reviewSummary"`
}

// Build fills the profile for listing, taking contact data and stats from
// defaults wherever the record has none.
func Build(listing models.BusinessListing, defaults config.ProfileConfig) *Profile {
	contact := ContactInfo{
		Phone:   firstNonEmpty(listing.Phone, defaults.Phone),
		Website: firstNonEmpty(listing.Website, defaults.Website),
		Email:   firstNonEmpty(listing.Email, defaults.Email),
	}
	contact.WebsiteURL = WebsiteURL(contact.Website)
	contact.TelLink = TelLink(contact.Phone)
	if contact.Email != "" {
		contact.MailtoLink = "mailto:" + contact.Email
	}

	docs := append([]string(nil), defaults.VerifiedDocuments...)

	return &Profile{
		Business:   listing,
		Initials:   Initials(listing.Name),
		GradeColor: trust.GradeColor(listing.TrustGrade),
		Contact:    contact,
		Stats: Stats{
			YearsActive:       defaults.YearsActive,
			DocumentsVerified: defaults.DocumentsVerified,
			PartnerReferences: defaults.PartnerReferences,
			LastUpdated:       defaults.LastUpdated,
		},
		TrustBreakdown:    Breakdown(listing.BusinessRecord, defaults.PartnerReferences),
		VerifiedDocuments: docs,
		ReviewSummary:     ReviewSummary(listing.Rating, listing.ReviewCount),
	}
}

// Breakdown derives the compliance, performance and reputation items.
func Breakdown(r models.BusinessRecord, partnerReferences int) []BreakdownItem {
	compliance := BreakdownItem{
		Title:       "Compliance",
		Status:      StatusModerate,
		Description: "Verification in progress",
		Details:     "Some legal documents are still pending review",
	}
	if r.Verified {
		compliance.Status = StatusStrong
		compliance.Description = "Valid Business License"
		compliance.Details = "All legal documents verified and up-to-date"
	}

	performance := BreakdownItem{
		Title:       "Performance",
		Status:      StatusModerate,
		Description: "Limited recent financials",
		Details:     "Some financial documents pending verification",
	}

	reputation := BreakdownItem{
		Title:       "Reputation",
		Status:      StatusModerate,
		Description: ReviewSummary(r.Rating, r.ReviewCount),
		Details:     "Building references with verified partners",
	}
	if r.Rating >= 4 {
		reputation.Status = StatusStrong
		reputation.Description = fmt.Sprintf("%d positive partner references", partnerReferences)
		reputation.Details = "Strong testimonials from verified partners"
	}

	items := []BreakdownItem{compliance, performance, reputation}
	for i := range items {
		items[i].Color = StatusColor(items[i].Status)
	}
	return items
}

func StatusColor(status string) string {
	switch status {
	case StatusStrong:
		return trust.ColorGreen
	case StatusModerate:
		return trust.ColorYellow
	default:
		return trust.ColorRed
	}
}

func ReviewSummary(rating float64, reviews int) string {
	return fmt.Sprintf("%.1f average from %d reviews", rating, reviews)
}

// WebsiteURL prefixes https:// unless the address already carries a scheme.
func WebsiteURL(website string) string {
	if website == "" || strings.HasPrefix(website, "http") {
		return website
	}
	return "https://" + website
}

// TelLink builds a dialer link with whitespace removed.
func TelLink(phone string) string {
	if phone == "" {
		return ""
	}
	return "tel:" + strings.Join(strings.Fields(phone), "")
}

// Initials takes the first letter of the first two words, upper-cased.
func Initials(name string) string {
	var b strings.Builder
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	for _, word := range words {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
