// Package dashboard assembles the account dashboard from its sections.
package dashboard

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"trustgrade-workers/internal/common/validation"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/trust"
)

var (
	//go:embed data/dashboard.json
	seedJSON []byte

	//go:embed data/dashboard.schema.json
	seedSchema []byte
)

// Source provides each dashboard section.
type Source interface {
	Stats(ctx context.Context) ([]models.DashboardStat, error)
	RecentActivity(ctx context.Context) ([]models.ActivityItem, error)
	TrustedPartners(ctx context.Context) ([]models.TrustedPartner, error)
	Documents(ctx context.Context) ([]models.DocumentRecord, error)
	SuggestedActions(ctx context.Context) ([]models.SuggestedAction, error)
	TrustMetrics(ctx context.Context) ([]models.TrustMetric, error)
}

type Partner struct {
	models.TrustedPartner
	GradeColor string `json:"gradeColor"`
}

type TrustSummary struct {
	Metrics      []models.TrustMetric `json:"metrics"`
	OverallScore int                  `json:"overallScore"`
	Grade        string               `json:"grade"`
	GradeColor   string               `json:"gradeColor"`
	Outlook      string               `json:"outlook"`
}

type Dashboard struct {
	Stats            []models.DashboardStat   `json:"stats"`
	RecentActivity   []models.ActivityItem    `json:"recentActivity"`
	TrustedPartners  []Partner                `json:"trustedPartners"`
	Documents        []models.DocumentRecord  `json:"documents"`
	SuggestedActions []models.SuggestedAction `json:"suggestedActions"`
	CompletedActions int                      `json:"completedActions"`
	Trust            TrustSummary             `json:"trust"`
}

// Section names accepted by Build.
const (
	SectionStats     = "stats"
	SectionActivity  = "activity"
	SectionPartners  = "partners"
	SectionDocuments = "documents"
	SectionActions   = "actions"
	SectionTrust     = "trust"
)

var AllSections = []string{SectionStats, SectionActivity, SectionPartners, SectionDocuments, SectionActions, SectionTrust}

// Build loads the requested sections concurrently; no sections means all.
func Build(ctx context.Context, src Source, sections []string) (*Dashboard, error) {
	if len(sections) == 0 {
		sections = AllSections
	}
	want := make(map[string]bool, len(sections))
	for _, s := range sections {
		if !isSection(s) {
			return nil, fmt.Errorf("unknown dashboard section %q", s)
		}
		want[s] = true
	}

	d := &Dashboard{}
	g, ctx := errgroup.WithContext(ctx)

	if want[SectionStats] {
		g.Go(func() (err error) {
			d.Stats, err = src.Stats(ctx)
			return err
		})
	}
	if want[SectionActivity] {
		g.Go(func() (err error) {
			d.RecentActivity, err = src.RecentActivity(ctx)
			return err
		})
	}
	if want[SectionPartners] {
		g.Go(func() error {
			partners, err := src.TrustedPartners(ctx)
			if err != nil {
				return err
			}
			d.TrustedPartners = make([]Partner, len(partners))
			for i, p := range partners {
				d.TrustedPartners[i] = Partner{TrustedPartner: p, GradeColor: trust.GradeColor(p.TrustGrade)}
			}
			return nil
		})
	}
	if want[SectionDocuments] {
		g.Go(func() (err error) {
			d.Documents, err = src.Documents(ctx)
			return err
		})
	}
	if want[SectionActions] {
		g.Go(func() error {
			actions, err := src.SuggestedActions(ctx)
			if err != nil {
				return err
			}
			d.SuggestedActions = actions
			for _, a := range actions {
				if a.Completed {
					d.CompletedActions++
				}
			}
			return nil
		})
	}
	if want[SectionTrust] {
		g.Go(func() error {
			metrics, err := src.TrustMetrics(ctx)
			if err != nil {
				return err
			}
			d.Trust = Summarize(metrics)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// Summarize grades a set of trust metrics.
func Summarize(metrics []models.TrustMetric) TrustSummary {
	scored := make([]models.TrustMetric, len(metrics))
	for i, m := range metrics {
		if m.Status == "" {
			m.Status = trust.MetricStatus(m.Score)
		}
		scored[i] = m
	}
	score := trust.OverallScore(scored)
	grade := trust.Grade(score)
	return TrustSummary{
		Metrics:      scored,
		OverallScore: score,
		Grade:        grade,
		GradeColor:   trust.GradeColor(grade),
		Outlook:      trust.Outlook(score),
	}
}

func isSection(s string) bool {
	for _, known := range AllSections {
		if s == known {
			return true
		}
	}
	return false
}

// EmbeddedSource serves the bundled sample dashboard.
type EmbeddedSource struct {
	data struct {
		Stats            []models.DashboardStat   `json:"stats"`
		RecentActivity   []models.ActivityItem    `json:"recentActivity"`
		TrustedPartners  []models.TrustedPartner  `json:"trustedPartners"`
		Documents        []models.DocumentRecord  `json:"documents"`
		SuggestedActions []models.SuggestedAction `json:"suggestedActions"`
		TrustMetrics     []models.TrustMetric     `json:"trustMetrics"`
	}
}

func NewEmbeddedSource() (*EmbeddedSource, error) {
	if err := validation.ValidateDocument(seedSchema, seedJSON); err != nil {
		return nil, fmt.Errorf("invalid dashboard data: %w", err)
	}
	src := &EmbeddedSource{}
	if err := json.Unmarshal(seedJSON, &src.data); err != nil {
		return nil, fmt.Errorf("decode dashboard data: %w", err)
	}
	return src, nil
}

func (e *EmbeddedSource) Stats(ctx context.Context) ([]models.DashboardStat, error) {
	return append([]models.DashboardStat(nil), e.data.Stats...), nil
}

func (e *EmbeddedSource) RecentActivity(ctx context.Context) ([]models.ActivityItem, error) {
	return append([]models.ActivityItem(nil), e.data.RecentActivity...), nil
}

func (e *EmbeddedSource) TrustedPartners(ctx context.Context) ([]models.TrustedPartner, error) {
	return append([]models.TrustedPartner(nil), e.data.TrustedPartners...), nil
}

func (e *EmbeddedSource) Documents(ctx context.Context) ([]models.DocumentRecord, error) {
	return append([]models.DocumentRecord(nil), e.data.Documents...), nil
}

func (e *EmbeddedSource) SuggestedActions(ctx context.Context) ([]models.SuggestedAction, error) {
	return append([]models.SuggestedAction(nil), e.data.SuggestedActions...), nil
}

func (e *EmbeddedSource) TrustMetrics(ctx context.Context) ([]models.TrustMetric, error) {
	return append([]models.TrustMetric(nil), e.data.TrustMetrics...), nil
}
