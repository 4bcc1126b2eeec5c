package directory

import (
	"context"
	"fmt"
	"sort"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/models"
)

// Directory serves listings with unique route slugs over a Repository.
type Directory struct {
	repo   Repository
	search *SearchIndex
	source string
	logger logger.Logger
}

type Option func(*Directory)

// WithSearchIndex pre-filters Search through Elasticsearch.
func WithSearchIndex(idx *SearchIndex) Option {
	return func(d *Directory) {
		d.search = idx
	}
}

// WithSource labels search metrics with the backing store name.
func WithSource(source string) Option {
	return func(d *Directory) {
		d.source = source
	}
}

func New(repo Repository, log logger.Logger, opts ...Option) *Directory {
	d := &Directory{
		repo:   repo,
		source: "memory",
		logger: log.WithFields(map[string]interface{}{"component": "directory"}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AssignSlugs maps each record id to a unique route slug. Records are taken
// in id order; the first keeps the bare slug and later collisions get -2, -3...
// The returned collisions list the ids that were suffixed.
func AssignSlugs(records []models.BusinessRecord) (slugs map[int]string, collisions []int) {
	ordered := make([]models.BusinessRecord, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	slugs = make(map[int]string, len(ordered))
	taken := make(map[string]bool, len(ordered))
	for _, r := range ordered {
		base := Slugify(r.Name)
		slug := base
		for n := 2; taken[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		if slug != base {
			collisions = append(collisions, r.ID)
		}
		taken[slug] = true
		slugs[r.ID] = slug
	}
	return slugs, collisions
}

// Listings returns every record in repository order with its route slug.
func (d *Directory) Listings(ctx context.Context) ([]models.BusinessListing, error) {
	records, err := d.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return d.toListings(records, records), nil
}

// Records returns the raw records in repository order.
func (d *Directory) Records(ctx context.Context) ([]models.BusinessRecord, error) {
	return d.repo.List(ctx)
}

// Search applies c to the directory, keeping repository order.
func (d *Directory) Search(ctx context.Context, c Criteria) ([]models.BusinessListing, error) {
	records, err := d.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	candidates := records
	source := d.source
	if d.search != nil {
		if narrowed, err := d.indexCandidates(ctx, records, c); err != nil {
			d.logger.Warn("search index unusable, filtering in process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			source = "elasticsearch"
			candidates = narrowed
		}
	}

	matched := Filter(candidates, c)
	metrics.DirectorySearchResults.WithLabelValues(source).Observe(float64(len(matched)))
	return d.toListings(records, matched), nil
}

// indexCandidates keeps the records the index matched plus every record the
// index does not hold, so a lagging index never hides a match.
func (d *Directory) indexCandidates(ctx context.Context, records []models.BusinessRecord, c Criteria) ([]models.BusinessRecord, error) {
	indexed, truncated, err := d.search.IndexedIDs(ctx)
	if err != nil {
		return nil, err
	}
	if truncated {
		return nil, fmt.Errorf("index listing capped at %d documents", maxCandidates)
	}
	ids, err := d.search.CandidateIDs(ctx, c)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.BusinessRecord, 0, len(ids))
	for _, r := range records {
		_, matched := ids[r.ID]
		_, known := indexed[r.ID]
		if matched || !known {
			candidates = append(candidates, r)
		}
	}
	return candidates, nil
}

// ResolveSlug finds the listing whose route slug equals slug.
func (d *Directory) ResolveSlug(ctx context.Context, slug string) (*models.BusinessListing, error) {
	records, err := d.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slugs, _ := AssignSlugs(records)
	for _, r := range records {
		if slugs[r.ID] == slug {
			return &models.BusinessListing{
				BusinessRecord: r,
				Slug:           slug,
				ProfilePath:    ProfilePath(slug),
			}, nil
		}
	}
	return nil, errors.NewBusinessNotFoundError(slug)
}

// GetByID returns a single listing.
func (d *Directory) GetByID(ctx context.Context, id int) (*models.BusinessListing, error) {
	records, err := d.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slugs, _ := AssignSlugs(records)
	r, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.BusinessListing{BusinessRecord: *r, Slug: slugs[id], ProfilePath: ProfilePath(slugs[id])}, nil
}

// toListings slugs subset using the slug assignment over all records.
func (d *Directory) toListings(all, subset []models.BusinessRecord) []models.BusinessListing {
	slugs, collisions := AssignSlugs(all)
	for _, id := range collisions {
		d.logger.Warn("business name slug collision", map[string]interface{}{
			"businessId": id,
			"slug":       slugs[id],
		})
	}

	out := make([]models.BusinessListing, len(subset))
	for i, r := range subset {
		out[i] = models.BusinessListing{
			BusinessRecord: r,
			Slug:           slugs[r.ID],
			ProfilePath:    ProfilePath(slugs[r.ID]),
		}
	}
	return out
}
