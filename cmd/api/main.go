// Package main - entrypoint of the Educa Learning Hub enrollment service.
//
// Wires the composition root: configuration, logging, PostgreSQL, Redis,
// the event bus with the audit-trail subscriber, and the command/query
// handlers of the enrollment lifecycle. Serving surfaces (HTTP, messaging
// consumers) plug in on top of the handlers assembled here.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/educahub/educa-learning-hub/config"
	"github.com/educahub/educa-learning-hub/internal/application/command"
	"github.com/educahub/educa-learning-hub/internal/application/query"
	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
	"github.com/educahub/educa-learning-hub/internal/infrastructure/messaging"
	"github.com/educahub/educa-learning-hub/internal/infrastructure/persistence/postgres"
	"github.com/educahub/educa-learning-hub/internal/infrastructure/persistence/redis"
	"github.com/educahub/educa-learning-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Educa Learning Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("timezone", cfg.App.Timezone),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		redisCache       *redis.Cache
		alunoCache       aluno.Cache
		certificadoCache *redis.CertificadoCache
	)

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", logger.Err(err))
		} else {
			defer redisCache.Close()
			alunoCache = redis.NewAlunoCache(redisCache, cfg.Redis.AlunoTTL)
			certificadoCache = redis.NewCertificadoCache(redisCache, cfg.Redis.CertificadoTTL)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	alunoRepo := postgres.NewAlunoRepository(dbConn)
	matriculaRepo := postgres.NewMatriculaRepository(dbConn)
	certificadoRepo := postgres.NewCertificadoRepository(dbConn)
	historicoRepo := postgres.NewHistoricoRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. EVENT BUS + AUDIT TRAIL
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...")
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.Logger = log

	var eventBus shared.EventBus
	if redisCache != nil {
		redisBus, err := messaging.NewRedisEventBus(messaging.RedisEventBusConfig{
			Client:         redisCache.Client(),
			LocalBusConfig: busConfig,
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}
		defer func() {
			log.Info("closing event bus...")
			_ = redisBus.Close()
		}()
		eventBus = redisBus
	} else {
		localBus := messaging.NewInMemoryEventBus(busConfig)
		defer func() {
			log.Info("closing event bus...")
			_ = localBus.Close()
		}()
		eventBus = localBus
	}

	auditoria, err := messaging.NewAuditoriaSubscriber(messaging.AuditoriaSubscriberConfig{
		Repository: historicoRepo,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create audit subscriber: %w", err)
	}
	if err := auditoria.Attach(eventBus); err != nil {
		return fmt.Errorf("failed to attach audit subscriber: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. APPLICATION HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application handlers...")

	cadastrarAluno := command.NewCadastrarAlunoHandler(alunoRepo, alunoCache, eventBus)
	matricularAluno := command.NewMatricularAlunoHandler(alunoRepo, matriculaRepo, alunoCache, eventBus)
	iniciarMatricula := command.NewIniciarMatriculaHandler(matriculaRepo, alunoCache, eventBus)
	registrarProgresso := command.NewRegistrarProgressoHandler(matriculaRepo, alunoCache, eventBus)
	concluirMatricula := command.NewConcluirMatriculaHandler(
		alunoRepo, matriculaRepo, alunoCache, eventBus,
		command.ConcluirMatriculaHandlerConfig{
			EmitirCertificado:       cfg.Domain.EmitirCertificadoAoConcluir,
			ValidadeCertificadoDias: cfg.Domain.ValidadeCertificadoDias,
		},
	)
	cancelarMatricula := command.NewCancelarMatriculaHandler(matriculaRepo, alunoCache, eventBus)

	var verificacaoCache query.VerificacaoCache
	var expiracaoCache command.CertificadoCacheInvalidator
	if certificadoCache != nil {
		verificacaoCache = certificadoCache
		expiracaoCache = certificadoCache
	}
	expirarCertificados := command.NewExpirarCertificadosHandler(certificadoRepo, expiracaoCache, eventBus)

	validarCertificado := query.NewValidarCertificadoHandler(certificadoRepo, verificacaoCache)
	progressoDoAluno := query.NewProgressoDoAlunoHandler(alunoRepo, query.ProgressoDoAlunoHandlerConfig{
		LimiteAtrasoDias:    cfg.Domain.LimiteAtrasoDias,
		LimiteAbandonoHoras: cfg.Domain.LimiteAbandonoHoras,
	})
	certificadosExpirando := query.NewCertificadosExpirandoHandler(certificadoRepo)

	app := &application{
		CadastrarAluno:        cadastrarAluno,
		MatricularAluno:       matricularAluno,
		IniciarMatricula:      iniciarMatricula,
		RegistrarProgresso:    registrarProgresso,
		ConcluirMatricula:     concluirMatricula,
		CancelarMatricula:     cancelarMatricula,
		ExpirarCertificados:   expirarCertificados,
		ValidarCertificado:    validarCertificado,
		ProgressoDoAluno:      progressoDoAluno,
		CertificadosExpirando: certificadosExpirando,
	}
	log.Info("application handlers assembled", logger.Any("handlers", app.nomes()))

	// ─────────────────────────────────────────────────────────────────────────
	// 9. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("Educa Learning Hub is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigCh
	log.Info("received shutdown signal", logger.String("signal", sig.String()))
	log.Info("starting graceful shutdown...", logger.Duration("timeout", cfg.App.ShutdownTimeout))

	log.Info("shutdown completed successfully")
	return nil
}

// application groups the assembled use-case handlers. Serving surfaces take
// this struct instead of the individual constructor arguments.
type application struct {
	CadastrarAluno        *command.CadastrarAlunoHandler
	MatricularAluno       *command.MatricularAlunoHandler
	IniciarMatricula      *command.IniciarMatriculaHandler
	RegistrarProgresso    *command.RegistrarProgressoHandler
	ConcluirMatricula     *command.ConcluirMatriculaHandler
	CancelarMatricula     *command.CancelarMatriculaHandler
	ExpirarCertificados   *command.ExpirarCertificadosHandler
	ValidarCertificado    *query.ValidarCertificadoHandler
	ProgressoDoAluno      *query.ProgressoDoAlunoHandler
	CertificadosExpirando *query.CertificadosExpirandoHandler
}

// nomes lists the wired handler names, for the startup log.
func (a *application) nomes() []string {
	t := reflect.TypeOf(*a)
	nomes := make([]string, t.NumField())
	for i := range nomes {
		nomes[i] = t.Field(i).Name
	}
	return nomes
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger configures structured logging from the observability settings.
// Caller annotation stays off outside debug builds to keep entries compact.
func setupLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug && !cfg.IsProduction(),
	})
}
