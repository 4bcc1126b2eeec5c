package models

// BusinessRecord is one entry in the business directory. Records are never
// mutated once loaded.
type BusinessRecord struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	TrustGrade      string   `json:"trustGrade"`
	TrustPercentage int      `json:"trustPercentage"`
	Verified        bool     `json:"verified"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"reviewCount"`
	Employees       string   `json:"employees"`
	Services        []string `json:"services"`
	Logo            string   `json:"logo"`
	Phone           string   `json:"phone,omitempty"`
	Website         string   `json:"website,omitempty"`
	Email           string   `json:"email,omitempty"`
}

// BusinessListing is a record with its route slug resolved.
type BusinessListing struct {
	BusinessRecord
	Slug        string `json:"slug"`
	ProfilePath string `json:"profilePath"`
}

// Tab identifiers for the single-page view switcher.
const (
	ViewDashboard     = "dashboard"
	ViewDiscover      = "discover"
	ViewVerifyPartner = "verify-partner"
	ViewSettings      = "settings"
)

var Views = []string{ViewDashboard, ViewDiscover, ViewVerifyPartner, ViewSettings}
