package models

type DashboardStat struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type ActivityItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

type TrustedPartner struct {
	Name            string `json:"name"`
	Industry        string `json:"industry"`
	TrustGrade      string `json:"trustGrade"`
	TrustPercentage int    `json:"trustPercentage"`
	Logo            string `json:"logo"`
	Status          string `json:"status"`
}

type SuggestedAction struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress"`
}

// TrustMetric is one scored category feeding the overall trust grade.
type TrustMetric struct {
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Status      string `json:"status"`
	Description string `json:"description"`
}
