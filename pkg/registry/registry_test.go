package registry

import (
	"path/filepath"
	"testing"

	"trustgrade-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(taskType string) Activity {
	return Activity{
		TaskType:    taskType,
		DisplayName: taskType,
		Category:    "directory",
		InputSchema: validation.JSONSchema{
			Type:       "object",
			Properties: map[string]validation.Property{"slug": {Type: "string"}},
			Required:   []string{"slug"},
		},
		Timeout: "10s",
	}
}

func TestNew_SortsByTaskType(t *testing.T) {
	reg := New([]Activity{activity("search-businesses"), activity("build-dashboard")})

	assert.Equal(t, []string{"build-dashboard", "search-businesses"}, reg.TaskTypes())
	assert.Equal(t, Version, reg.Version)
	require.NoError(t, reg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	reg := New([]Activity{activity("resolve-business-slug")})
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)

	a, ok := loaded.Find("resolve-business-slug")
	require.True(t, ok)
	assert.Equal(t, []string{"slug"}, a.InputSchema.Required)

	_, ok = loaded.Find("unknown")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	undeclared := activity("a")
	undeclared.InputSchema.Required = []string{"missing"}

	badTimeout := activity("a")
	badTimeout.Timeout = "soon"

	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{name: "empty", wantErr: "no activities"},
		{name: "duplicate", activities: []Activity{activity("a"), activity("a")}, wantErr: "duplicate task type"},
		{name: "undeclared required", activities: []Activity{undeclared}, wantErr: "undeclared property"},
		{name: "bad timeout", activities: []Activity{badTimeout}, wantErr: "invalid timeout"},
		{name: "no task type", activities: []Activity{activity("")}, wantErr: "no task type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.activities}).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
