// Package trust computes letter grades from trust scores.
package trust

import (
	"math"
	"strings"

	"trustgrade-workers/internal/models"
)

const (
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
)

// OverallScore is the rounded mean of the metric scores, 0 for no metrics.
func OverallScore(metrics []models.TrustMetric) int {
	if len(metrics) == 0 {
		return 0
	}
	sum := 0
	for _, m := range metrics {
		sum += m.Score
	}
	return int(math.Round(float64(sum) / float64(len(metrics))))
}

// Grade maps an overall score to its letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	default:
		return "C"
	}
}

// GradeColor picks the display colour from the grade's letter.
func GradeColor(grade string) string {
	switch {
	case strings.HasPrefix(grade, "A"):
		return ColorGreen
	case strings.HasPrefix(grade, "B"):
		return ColorBlue
	case strings.HasPrefix(grade, "C"):
		return ColorYellow
	case strings.HasPrefix(grade, "D"):
		return ColorOrange
	default:
		return ColorRed
	}
}

// Outlook is the one-line verdict shown beside a score.
func Outlook(score int) string {
	switch {
	case score >= 80:
		return "looking great"
	case score >= 60:
		return "on the right track"
	default:
		return "getting started"
	}
}

// MetricStatus classifies a single metric score.
func MetricStatus(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "needs-improvement"
	}
}
