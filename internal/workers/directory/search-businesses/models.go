package searchbusinesses

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/models"
)

// Input mirrors the discover view filter controls. Select values arrive as strings,
// "all" or empty meaning no filter.
type Input struct {
	Query        string `json:"query"`
	Industry     string `json:"industry"`
	Location     string `json:"location"`
	Size         string `json:"size"`
	Grade        string `json:"grade"`
	MinRating    string `json:"minRating"`
	VerifiedOnly bool   `json:"verifiedOnly"`
}

type Output struct {
	Businesses []models.BusinessListing `json:"businesses"`
	Total      int                      `json:"total"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"query":        {Type: "string", MaxLength: validation.Int(200)},
			"industry":     {Type: "string"},
			"location":     {Type: "string"},
			"size":         {Type: "string", Enum: []string{"", "all", "small", "medium", "large"}},
			"grade":        {Type: "string"},
			"minRating":    {Type: "string"},
			"verifiedOnly": {Type: "boolean"},
		},
		AdditionalProperties: true,
	}
}
