package resolvebusinessslug

import (
	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/models"
)

type Input struct {
	Slug string `json:"slug"`
}

type Output struct {
	Business models.BusinessListing `json:"business"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"slug": {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(200)},
		},
		Required:             []string{"slug"},
		AdditionalProperties: true,
	}
}
