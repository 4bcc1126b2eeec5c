//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/common/database"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/models"
	"trustgrade-workers/internal/signup"

	buildbusinessprofile "trustgrade-workers/internal/workers/directory/build-business-profile"
	resolvebusinessslug "trustgrade-workers/internal/workers/directory/resolve-business-slug"
	searchbusinesses "trustgrade-workers/internal/workers/directory/search-businesses"
	navigatesignup "trustgrade-workers/internal/workers/signup/navigate-signup"
	submitsignup "trustgrade-workers/internal/workers/signup/submit-signup"
)

var zeebeClient zbc.Client

func TestMain(m *testing.M) {
	var err error
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         envOr("ZEEBE_ADDRESS", "localhost:26500"),
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic("failed to create zeebe client: " + err.Error())
	}

	code := m.Run()
	zeebeClient.Close()
	os.Exit(code)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestFullE2E runs the directory and sign-up workers against real PostgreSQL,
// Elasticsearch, Redis and Zeebe. Start them with the local compose stack first.
func TestFullE2E(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	cfg.Database.Elasticsearch.Index = "businesses-e2e"

	assertAllServicesConnectivity(t, cfg)

	records, err := directory.LoadSeed()
	require.NoError(t, err)
	loadDirectoryTables(t, cfg, records)
	loadSearchIndex(t, cfg, records)

	cfg.Directory.Source = "postgres"
	cfg.Directory.SearchIndex = true
	cfg.Directory.CacheTTL = 0

	testDirectoryWorkers(t, cfg)
	testSignupJourney(t, cfg)
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	assert.NoError(t, pg.Ping(ctx), "postgres ping failed")
	pg.Close()

	rdb := database.NewRedis(cfg.Database.Redis)
	assert.NoError(t, rdb.Ping(ctx), "redis ping failed")
	rdb.Close()

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	assert.NoError(t, es.Ping(ctx), "elasticsearch ping failed")

	_, err = zeebeClient.NewTopologyCommand().Send(ctx)
	assert.NoError(t, err, "zeebe topology request failed")
}

func loadDirectoryTables(t *testing.T, cfg *config.Config, records []models.BusinessRecord) {
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()

	statements := []string{
		`DROP TABLE IF EXISTS business_services`,
		`DROP TABLE IF EXISTS businesses`,
		`CREATE TABLE businesses (
			id INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			industry VARCHAR(100) NOT NULL,
			location VARCHAR(100) NOT NULL,
			description TEXT NOT NULL,
			trust_grade VARCHAR(3) NOT NULL,
			trust_percentage INTEGER NOT NULL,
			verified BOOLEAN NOT NULL DEFAULT false,
			rating NUMERIC(2,1) NOT NULL,
			review_count INTEGER NOT NULL,
			employees VARCHAR(50) NOT NULL,
			logo VARCHAR(10) NOT NULL,
			phone VARCHAR(50),
			website VARCHAR(255),
			email VARCHAR(255)
		)`,
		`CREATE TABLE business_services (
			business_id INTEGER REFERENCES businesses(id),
			service VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (business_id, position)
		)`,
	}
	for _, stmt := range statements {
		_, err := pg.DB.Exec(stmt)
		require.NoError(t, err)
	}

	for _, r := range records {
		_, err := pg.DB.Exec(
			`INSERT INTO businesses VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			r.ID, r.Name, r.Industry, r.Location, r.Description, r.TrustGrade, r.TrustPercentage,
			r.Verified, r.Rating, r.ReviewCount, r.Employees, r.Logo,
			nullable(r.Phone), nullable(r.Website), nullable(r.Email),
		)
		require.NoError(t, err)
		for i, s := range r.Services {
			_, err := pg.DB.Exec(`INSERT INTO business_services VALUES ($1,$2,$3)`, r.ID, s, i)
			require.NoError(t, err)
		}
	}
	t.Logf("loaded %d businesses into postgres", len(records))
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func loadSearchIndex(t *testing.T, cfg *config.Config, records []models.BusinessRecord) {
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)

	ctx := context.Background()
	idx := directory.NewSearchIndex(es.Client, es.Index)
	require.NoError(t, idx.EnsureIndex(ctx))
	n, err := idx.IndexAll(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)
}

func testDirectoryWorkers(t *testing.T, cfg *config.Config) {
	log := logger.NewTestLogger(t)
	st, err := directory.Open(cfg, nil, log)
	require.NoError(t, err)
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("search-businesses", func(t *testing.T) {
		h := searchbusinesses.NewHandler(searchbusinesses.LoadConfig(config.GetWorkerConfig(cfg, searchbusinesses.TaskType)), st.Directory, log)
		out, err := h.Execute(ctx, &searchbusinesses.Input{
			Industry: "Technology", Location: "all", Size: "all", Grade: "all", MinRating: "4.5",
		})
		require.NoError(t, err)
		require.Equal(t, 1, out.Total)
		assert.Equal(t, "techflow-solutions", out.Businesses[0].Slug)
	})

	t.Run("resolve-business-slug", func(t *testing.T) {
		h := resolvebusinessslug.NewHandler(resolvebusinessslug.LoadConfig(config.GetWorkerConfig(cfg, resolvebusinessslug.TaskType)), st.Directory, log)
		out, err := h.Execute(ctx, &resolvebusinessslug.Input{Slug: "akhtar-industries"})
		require.NoError(t, err)
		assert.Equal(t, 4, out.Business.ID)
	})

	t.Run("build-business-profile", func(t *testing.T) {
		h := buildbusinessprofile.NewHandler(buildbusinessprofile.LoadConfig(config.GetWorkerConfig(cfg, buildbusinessprofile.TaskType), cfg.Profile), st.Directory, log)
		out, err := h.Execute(ctx, &buildbusinessprofile.Input{Slug: "akhtar-industries"})
		require.NoError(t, err)
		assert.Equal(t, "AI", out.Profile.Initials)
	})
}

func testSignupJourney(t *testing.T, cfg *config.Config) {
	log := logger.NewTestLogger(t)
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()

	sessions := signup.NewRedisSessionStore(rdb.Client, time.Minute)
	nav := navigatesignup.NewHandler(navigatesignup.LoadConfig(config.GetWorkerConfig(cfg, navigatesignup.TaskType)), sessions, log)
	submit := submitsignup.NewHandler(submitsignup.LoadConfig(config.GetWorkerConfig(cfg, submitsignup.TaskType)), sessions, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	started, err := nav.Execute(ctx, &navigatesignup.Input{Action: navigatesignup.ActionStart})
	require.NoError(t, err)
	id := started.SessionID

	steps := []map[string]interface{}{
		{
			"firstName": "Aisha", "lastName": "Khan", "email": "aisha@example.com", "phone": "+923001234567",
			"password": "s3cure-pass", "confirmPassword": "s3cure-pass",
		},
		{
			"companyName": "Khan Traders", "jobTitle": "Director", "companySize": "11-50",
			"industry": "manufacturing", "businessType": "llc",
		},
	}
	for _, fields := range steps {
		out, err := nav.Execute(ctx, &navigatesignup.Input{SessionID: id, Action: navigatesignup.ActionUpdate, Fields: fields})
		require.NoError(t, err)
		require.True(t, out.CanAdvance, out.Reason)

		out, err = nav.Execute(ctx, &navigatesignup.Input{SessionID: id, Action: navigatesignup.ActionAdvance})
		require.NoError(t, err)
		require.False(t, out.Blocked, out.Reason)
	}

	for _, doc := range []string{"Business License", "Tax ID Certificate", "Certificate of Incorporation"} {
		_, err := nav.Execute(ctx, &navigatesignup.Input{SessionID: id, Action: navigatesignup.ActionUploadDocument, DocumentName: doc})
		require.NoError(t, err)
	}
	out, err := nav.Execute(ctx, &navigatesignup.Input{SessionID: id, Action: navigatesignup.ActionAdvance})
	require.NoError(t, err)
	require.False(t, out.Blocked, out.Reason)

	ack, err := submit.Execute(ctx, &submitsignup.Input{SessionID: id, Fields: map[string]interface{}{"agreeToTerms": true}})
	require.NoError(t, err)
	assert.True(t, ack.Submitted)

	_, err = sessions.Get(ctx, id)
	assert.Error(t, err, "submitted sessions are removed")
}
