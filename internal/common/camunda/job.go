package camunda

import (
	"encoding/json"
	"fmt"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
)

// DecodeJob validates the job variables against schema and decodes them into out.
// Process variables outside the schema are ignored unless the schema forbids them.
func DecodeJob(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("parse job variables: %v", err))
	}

	result := validation.ValidateInput(variables, schema)
	if !result.Valid {
		return errors.NewInvalidInputError(result.Summary()).
			WithMetadata("validationErrors", result.Errors)
	}

	if err := json.Unmarshal([]byte(job.Variables), out); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("decode job variables: %v", err))
	}
	return nil
}
