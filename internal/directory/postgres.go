package directory

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/models"
)

const (
	listBusinessesQuery = `
		SELECT id, name, industry, location, description, trust_grade, trust_percentage,
		       verified, rating, review_count, employees, logo,
		       COALESCE(phone, ''), COALESCE(website, ''), COALESCE(email, '')
		FROM businesses
		ORDER BY id`

	getBusinessQuery = `
		SELECT id, name, industry, location, description, trust_grade, trust_percentage,
		       verified, rating, review_count, employees, logo,
		       COALESCE(phone, ''), COALESCE(website, ''), COALESCE(email, '')
		FROM businesses
		WHERE id = $1`

	listServicesQuery = `
		SELECT business_id, service
		FROM business_services
		ORDER BY business_id, position`

	businessServicesQuery = `
		SELECT service
		FROM business_services
		WHERE business_id = $1
		ORDER BY position`
)

// PostgresRepository reads businesses and their services from PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (models.BusinessRecord, error) {
	var r models.BusinessRecord
	err := row.Scan(
		&r.ID, &r.Name, &r.Industry, &r.Location, &r.Description,
		&r.TrustGrade, &r.TrustPercentage, &r.Verified, &r.Rating,
		&r.ReviewCount, &r.Employees, &r.Logo,
		&r.Phone, &r.Website, &r.Email,
	)
	return r, err
}

func (p *PostgresRepository) List(ctx context.Context) ([]models.BusinessRecord, error) {
	rows, err := p.db.QueryContext(ctx, listBusinessesQuery)
	if err != nil {
		return nil, queryError(ctx, "list businesses", err)
	}
	defer rows.Close()

	var records []models.BusinessRecord
	index := make(map[int]int)
	for rows.Next() {
		r, err := scanBusiness(rows)
		if err != nil {
			return nil, queryError(ctx, "scan business", err)
		}
		r.Services = []string{}
		index[r.ID] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "list businesses", err)
	}

	svcRows, err := p.db.QueryContext(ctx, listServicesQuery)
	if err != nil {
		return nil, queryError(ctx, "list services", err)
	}
	defer svcRows.Close()

	for svcRows.Next() {
		var businessID int
		var service string
		if err := svcRows.Scan(&businessID, &service); err != nil {
			return nil, queryError(ctx, "scan service", err)
		}
		if i, ok := index[businessID]; ok {
			records[i].Services = append(records[i].Services, service)
		}
	}
	if err := svcRows.Err(); err != nil {
		return nil, queryError(ctx, "list services", err)
	}

	if err := checkUniqueIDs(records); err != nil {
		return nil, errors.NewDirectoryQueryFailedError("list businesses", err)
	}
	return records, nil
}

func (p *PostgresRepository) GetByID(ctx context.Context, id int) (*models.BusinessRecord, error) {
	r, err := scanBusiness(p.db.QueryRowContext(ctx, getBusinessQuery, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewBusinessNotFoundError(itoa(id))
	}
	if err != nil {
		return nil, queryError(ctx, "get business", err)
	}

	rows, err := p.db.QueryContext(ctx, businessServicesQuery, id)
	if err != nil {
		return nil, queryError(ctx, "get services", err)
	}
	defer rows.Close()

	r.Services = []string{}
	for rows.Next() {
		var service string
		if err := rows.Scan(&service); err != nil {
			return nil, queryError(ctx, "scan service", err)
		}
		r.Services = append(r.Services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "get services", err)
	}
	return &r, nil
}

func queryError(ctx context.Context, op string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewDirectoryQueryTimeoutError(op)
	}
	return errors.NewDirectoryQueryFailedError(op, err)
}

func itoa(id int) string {
	return strconv.Itoa(id)
}
