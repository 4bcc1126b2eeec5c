// pkg/registry/schema.go
package registry

import "trustgrade-workers/internal/common/validation"

// ActivityRegistry is the catalogue of job types this service can work on,
// published for BPMN modellers.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	TaskType    string                `json:"taskType"`
	DisplayName string                `json:"displayName"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	InputSchema validation.JSONSchema `json:"inputSchema"`
	ErrorCodes  []string              `json:"errorCodes"`
	Timeout     string                `json:"timeout,omitempty"`
	Retries     int                   `json:"retries,omitempty"`
	Tags        []string              `json:"tags,omitempty"`
}
