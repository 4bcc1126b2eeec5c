// cmd/worker-manager/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trustgrade-workers/internal/api"
	"trustgrade-workers/internal/common/aws"
	"trustgrade-workers/internal/common/camunda"
	"trustgrade-workers/internal/common/config"
	"trustgrade-workers/internal/common/database"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/observability"
	"trustgrade-workers/internal/dashboard"
	"trustgrade-workers/internal/directory"
	"trustgrade-workers/internal/referral"
	"trustgrade-workers/internal/signup"
	"trustgrade-workers/internal/workers"

	// Directory workers
	bbp "trustgrade-workers/internal/workers/directory/build-business-profile"
	rbs "trustgrade-workers/internal/workers/directory/resolve-business-slug"
	sb "trustgrade-workers/internal/workers/directory/search-businesses"

	// Sign-up workers
	ns "trustgrade-workers/internal/workers/signup/navigate-signup"
	ss "trustgrade-workers/internal/workers/signup/submit-signup"
	vss "trustgrade-workers/internal/workers/signup/validate-signup-step"

	// Account workers
	bd "trustgrade-workers/internal/workers/dashboard/build-dashboard"
	su "trustgrade-workers/internal/workers/documents/simulate-upload"
	ba "trustgrade-workers/internal/workers/engagement/business-action"
	gr "trustgrade-workers/internal/workers/referral/generate-referral"
)

const shutdownTimeout = 30 * time.Second

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.FromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})
	log.Info("starting worker manager", map[string]interface{}{"environment": cfg.App.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	if err != nil {
		log.Warn("observability degraded", map[string]interface{}{"error": err.Error()})
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		obs.Shutdown(shutdownCtx)
	}()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.Plaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		log.Error("zeebe connection failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer zeebe.Close()
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- Redis (sessions and directory cache) ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	err = camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "redis ping", rdb.Ping)
	if err != nil {
		log.Error("redis unavailable", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// --- Business directory ---
	dir, err := directory.Open(cfg, rdb.Client, log)
	if err != nil {
		log.Error("directory setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer dir.Close()
	if dir.Postgres != nil {
		if err := camunda.Retry(ctx, camunda.DefaultRetryConfig, log, "postgres ping", dir.Postgres.Ping); err != nil {
			log.Error("postgres unavailable", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}
	if dir.Search != nil {
		if err := dir.Search.Ping(ctx); err != nil {
			log.Warn("search index unreachable, searches will filter in process", map[string]interface{}{"error": err.Error()})
		}
	}
	log.Info("business directory ready", map[string]interface{}{
		"source":      cfg.Directory.Source,
		"searchIndex": cfg.Directory.SearchIndex,
		"cacheTTL":    cfg.Directory.CacheTTL,
	})

	// --- Referral delivery ---
	var email referral.EmailSender
	var sms referral.SMSSender
	if cfg.AWS.SES.Enabled {
		ses, err := aws.NewSESClient(ctx, cfg.AWS.Region, cfg.AWS.SES.FromEmail)
		if err != nil {
			log.Error("ses client failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		email = ses
	}
	if cfg.AWS.SNS.Enabled {
		sns, err := aws.NewSNSClient(ctx, cfg.AWS.Region, cfg.AWS.SNS.SenderID)
		if err != nil {
			log.Error("sns client failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		sms = sns
	}

	sessions := signup.NewRedisSessionStore(rdb.Client, time.Duration(cfg.Signup.SessionTTL)*time.Second)
	generator := referral.NewGenerator(cfg.Referral.BaseURL, cfg.Referral.Subject, cfg.Referral.FixedCodes)
	sharer := referral.NewSharer(email, sms, log)

	dashboardSource, err := dashboard.NewEmbeddedSource()
	if err != nil {
		log.Error("dashboard data invalid", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// --- Workers ---
	handlers := map[string]camunda.JobHandler{
		sb.TaskType:  sb.NewHandler(sb.LoadConfig(config.GetWorkerConfig(cfg, sb.TaskType)), dir.Directory, log),
		rbs.TaskType: rbs.NewHandler(rbs.LoadConfig(config.GetWorkerConfig(cfg, rbs.TaskType)), dir.Directory, log),
		bbp.TaskType: bbp.NewHandler(bbp.LoadConfig(config.GetWorkerConfig(cfg, bbp.TaskType), cfg.Profile), dir.Directory, log),

		vss.TaskType: vss.NewHandler(vss.LoadConfig(config.GetWorkerConfig(cfg, vss.TaskType)), log),
		ns.TaskType:  ns.NewHandler(ns.LoadConfig(config.GetWorkerConfig(cfg, ns.TaskType)), sessions, log),
		ss.TaskType:  ss.NewHandler(ss.LoadConfig(config.GetWorkerConfig(cfg, ss.TaskType)), sessions, log),

		su.TaskType: su.NewHandler(su.LoadConfig(config.GetWorkerConfig(cfg, su.TaskType), cfg.Upload), log),
		gr.TaskType: gr.NewHandler(gr.LoadConfig(config.GetWorkerConfig(cfg, gr.TaskType)), generator, sharer, log),
		ba.TaskType: ba.NewHandler(ba.LoadConfig(config.GetWorkerConfig(cfg, ba.TaskType), cfg.Profile), dir.Directory, log),
		bd.TaskType: bd.NewHandler(bd.LoadConfig(config.GetWorkerConfig(cfg, bd.TaskType)), dashboardSource, log),
	}

	var running []*camunda.Worker
	for _, taskType := range workers.Registry().TaskTypes() {
		handler, ok := handlers[taskType]
		if !ok {
			log.Error("no handler registered", map[string]interface{}{"taskType": taskType})
			os.Exit(1)
		}
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if w := camunda.StartWorker(zeebe.Zeebe(), taskType, wcfg, camunda.Observe(taskType, handler, obs), log); w != nil {
			running = append(running, w)
		}
	}
	log.Info("workers registered", map[string]interface{}{"started": len(running), "known": len(handlers)})

	// --- HTTP API, health and metrics ---
	g, gctx := errgroup.WithContext(ctx)

	var server *api.Server
	if cfg.API.Enabled {
		server = api.NewServer(cfg.API, cfg.Observability.ServiceName, dir.Directory, cfg.Profile, log)
		server.AddReadinessCheck("zeebe", zeebe.HealthCheck)
		server.AddReadinessCheck("redis", rdb.Ping)
		if dir.Postgres != nil {
			server.AddReadinessCheck("postgres", dir.Postgres.Ping)
		}

		g.Go(server.Start)
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, stopping workers", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		for _, w := range running {
			w.Stop()
		}
		if server != nil {
			return server.Shutdown(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("worker manager stopped with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("worker manager stopped gracefully", nil)
}
