// Package workers lists the job types served by this service.
package workers

import (
	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/pkg/registry"

	builddashboard "trustgrade-workers/internal/workers/dashboard/build-dashboard"
	buildbusinessprofile "trustgrade-workers/internal/workers/directory/build-business-profile"
	resolvebusinessslug "trustgrade-workers/internal/workers/directory/resolve-business-slug"
	searchbusinesses "trustgrade-workers/internal/workers/directory/search-businesses"
	simulateupload "trustgrade-workers/internal/workers/documents/simulate-upload"
	businessaction "trustgrade-workers/internal/workers/engagement/business-action"
	generatereferral "trustgrade-workers/internal/workers/referral/generate-referral"
	navigatesignup "trustgrade-workers/internal/workers/signup/navigate-signup"
	submitsignup "trustgrade-workers/internal/workers/signup/submit-signup"
	validatesignupstep "trustgrade-workers/internal/workers/signup/validate-signup-step"
)

func codes(cs ...errors.ErrorCode) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// Activities describes every worker for the activity registry.
func Activities() []registry.Activity {
	return []registry.Activity{
		{
			TaskType:    searchbusinesses.TaskType,
			DisplayName: "Search Businesses",
			Description: "Filters the business directory by text, industry, location, size, grade, rating and verification.",
			Category:    "directory",
			InputSchema: searchbusinesses.GetInputSchema(),
			ErrorCodes: codes(errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSearchCriteria,
				errors.ErrCodeDirectoryUnavailable, errors.ErrCodeDirectoryQueryFailed, errors.ErrCodeSearchIndexFailed),
			Timeout: "10s",
			Retries: 3,
			Tags:    []string{"read-only"},
		},
		{
			TaskType:    resolvebusinessslug.TaskType,
			DisplayName: "Resolve Business Slug",
			Description: "Maps a profile route slug to its business listing.",
			Category:    "directory",
			InputSchema: resolvebusinessslug.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput, errors.ErrCodeBusinessNotFound, errors.ErrCodeDirectoryUnavailable),
			Timeout:     "5s",
			Retries:     3,
			Tags:        []string{"read-only"},
		},
		{
			TaskType:    buildbusinessprofile.TaskType,
			DisplayName: "Build Business Profile",
			Description: "Assembles the public profile view with trust breakdown and contact links.",
			Category:    "directory",
			InputSchema: buildbusinessprofile.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput, errors.ErrCodeBusinessNotFound, errors.ErrCodeDirectoryUnavailable),
			Timeout:     "5s",
			Retries:     3,
			Tags:        []string{"read-only"},
		},
		{
			TaskType:    validatesignupstep.TaskType,
			DisplayName: "Validate Sign-up Step",
			Description: "Checks one sign-up step against the supplied fields without storing anything.",
			Category:    "signup",
			InputSchema: validatesignupstep.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput),
			Timeout:     "5s",
		},
		{
			TaskType:    navigatesignup.TaskType,
			DisplayName: "Navigate Sign-up",
			Description: "Applies a wizard action to a stored sign-up session.",
			Category:    "signup",
			InputSchema: navigatesignup.GetInputSchema(),
			ErrorCodes: codes(errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAction,
				errors.ErrCodeSessionNotFound, errors.ErrCodeSessionStoreFailed),
			Timeout: "10s",
			Retries: 3,
			Tags:    []string{"stateful"},
		},
		{
			TaskType:    submitsignup.TaskType,
			DisplayName: "Submit Sign-up",
			Description: "Submits a completed sign-up session and returns the acknowledgment.",
			Category:    "signup",
			InputSchema: submitsignup.GetInputSchema(),
			ErrorCodes: codes(errors.ErrCodeInvalidInput, errors.ErrCodeSessionNotFound,
				errors.ErrCodeStepIncomplete, errors.ErrCodeNavigationBlocked, errors.ErrCodeSessionStoreFailed),
			Timeout: "10s",
			Retries: 3,
			Tags:    []string{"stateful"},
		},
		{
			TaskType:    simulateupload.TaskType,
			DisplayName: "Simulate Document Upload",
			Description: "Runs a timed upload from Uploading through Processing to Verified.",
			Category:    "documents",
			InputSchema: simulateupload.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput, errors.ErrCodeUploadCancelled, errors.ErrCodeUploadTimeout),
			Timeout:     "30s",
		},
		{
			TaskType:    generatereferral.TaskType,
			DisplayName: "Generate Referral",
			Description: "Creates a referral code and link and optionally shares it by email or SMS.",
			Category:    "referral",
			InputSchema: generatereferral.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput),
			Timeout:     "15s",
			Tags:        []string{"aws"},
		},
		{
			TaskType:    businessaction.TaskType,
			DisplayName: "Business Action",
			Description: "Acknowledges a profile action and returns call or website links where relevant.",
			Category:    "engagement",
			InputSchema: businessaction.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAction, errors.ErrCodeBusinessNotFound),
			Timeout:     "5s",
		},
		{
			TaskType:    builddashboard.TaskType,
			DisplayName: "Build Dashboard",
			Description: "Loads the account dashboard sections and grades the trust summary.",
			Category:    "dashboard",
			InputSchema: builddashboard.GetInputSchema(),
			ErrorCodes:  codes(errors.ErrCodeInvalidInput, errors.ErrCodeExternalService),
			Timeout:     "10s",
			Retries:     3,
			Tags:        []string{"read-only"},
		},
	}
}

// Registry returns the activity registry for all workers.
func Registry() *registry.ActivityRegistry {
	return registry.New(Activities())
}
