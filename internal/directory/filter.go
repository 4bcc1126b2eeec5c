package directory

import (
	"math"
	"strconv"
	"strings"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/models"
)

const (
	All = "all"

	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Criteria is the set of directory filters. Empty strings and "all" disable
// the corresponding filter.
type Criteria struct {
	Query        string  `json:"query"`
	Industry     string  `json:"industry"`
	Location     string  `json:"location"`
	Size         string  `json:"size"`
	Grade        string  `json:"grade"`
	MinRating    float64 `json:"minRating"`
	VerifiedOnly bool    `json:"verifiedOnly"`
}

// Matches reports whether record passes every filter in c.
func Matches(record models.BusinessRecord, c Criteria) bool {
	if q := strings.ToLower(c.Query); q != "" {
		if !strings.Contains(strings.ToLower(record.Name), q) &&
			!strings.Contains(strings.ToLower(record.Industry), q) &&
			!strings.Contains(strings.ToLower(record.Description), q) {
			return false
		}
	}
	if !isAll(c.Industry) && record.Industry != c.Industry {
		return false
	}
	if !isAll(c.Location) && record.Location != c.Location {
		return false
	}
	if !isAll(c.Size) && !inSizeBucket(record.Employees, c.Size) {
		return false
	}
	if !isAll(c.Grade) && record.TrustGrade != c.Grade {
		return false
	}
	if record.Rating < c.MinRating {
		return false
	}
	if c.VerifiedOnly && !record.Verified {
		return false
	}
	return true
}

// Filter returns the matching records in input order.
func Filter(records []models.BusinessRecord, c Criteria) []models.BusinessRecord {
	out := make([]models.BusinessRecord, 0, len(records))
	for _, r := range records {
		if Matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || v == All
}

// EmployeeCount returns the leading number of an employees range such as
// "51-200" or "1000+". ok is false when the string has no digits.
func EmployeeCount(employees string) (count int, ok bool) {
	start := strings.IndexFunc(employees, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(employees) && (isDigit(rune(employees[end])) || employees[end] == ',') {
		end++
	}
	n, err := strconv.Atoi(strings.ReplaceAll(employees[start:end], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func inSizeBucket(employees, bucket string) bool {
	n, ok := EmployeeCount(employees)
	if !ok {
		return false
	}
	switch bucket {
	case SizeSmall:
		return n <= 50
	case SizeMedium:
		return n > 50 && n <= 500
	case SizeLarge:
		return n > 500
	}
	return false
}

// ParseMinRating accepts "", "all" or a number in [0, 5].
func ParseMinRating(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if isAll(v) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > 5 {
		return 0, errors.NewInvalidSearchCriteriaError("minRating must be a number between 0 and 5, got " + strconv.Quote(v))
	}
	return f, nil
}

// ParseSize accepts "", "all" or one of the size buckets in any case and
// returns the lower-case form.
func ParseSize(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "", All, SizeSmall, SizeMedium, SizeLarge:
		return v, nil
	}
	return "", errors.NewInvalidSearchCriteriaError("size must be one of small, medium, large or all, got " + strconv.Quote(v))
}
