package directory

import (
	"time"

	"github.com/redis/go-redis/v9"

	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/common/database"
	"trustgrade-workers/internal/common/logger"
)

// Stack is a configured Directory plus the connections it owns.
type Stack struct {
	Directory *Directory
	Postgres  *database.PostgresClient
	Search    *database.ElasticsearchClient
}

// Open assembles the directory described by cfg: memory or postgres records,
// an optional Redis read-through cache and an optional Elasticsearch pre-filter.
// rdb may be nil, in which case caching is skipped.
func Open(cfg *config.Config, rdb *redis.Client, log logger.Logger) (*Stack, error) {
	st := &Stack{}

	var repo Repository
	switch cfg.Directory.Source {
	case "postgres":
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		st.Postgres = pg
		repo = NewPostgresRepository(pg.DB)
	default:
		seed, err := NewSeedRepository()
		if err != nil {
			return nil, err
		}
		repo = seed
	}

	if cfg.Directory.CacheTTL > 0 && rdb != nil {
		repo = NewCachedRepository(repo, rdb, time.Duration(cfg.Directory.CacheTTL)*time.Second, log)
	}

	opts := []Option{WithSource(cfg.Directory.Source)}
	if cfg.Directory.SearchIndex {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.Search = es
		opts = append(opts, WithSearchIndex(NewSearchIndex(es.Client, es.Index)))
	}

	st.Directory = New(repo, log, opts...)
	return st, nil
}

// Close releases the Postgres pool if one was opened.
func (s *Stack) Close() error {
	if s.Postgres != nil {
		return s.Postgres.Close()
	}
	return nil
}
