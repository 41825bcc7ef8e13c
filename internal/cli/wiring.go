package cli

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/config"
	"sains-quiz-service/internal/infra/file"
	"sains-quiz-service/internal/infra/memory"
	"sains-quiz-service/internal/infra/postgres"
	redisinfra "sains-quiz-service/internal/infra/redis"
	"sains-quiz-service/internal/infra/sqlite"
)

// buildService wires the question source and leaderboard backends named in
// cfg. The returned cleanup releases every connection it opened.
func buildService(ctx context.Context, cfg config.Config) (*app.QuizService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	var source app.QuestionSource = file.NewQuestionLoader(cfg.Questions.Path)
	bankID := cfg.Questions.Path
	if cfg.Questions.BankID != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
		source = postgres.NewQuestionLoader(pool, cfg.Questions.BankID)
		bankID = cfg.Questions.BankID
	}
	questionTTL := config.TTLDuration(cfg.Questions.CacheTTL, 0)
	if redisClient != nil {
		source = redisinfra.NewQuestionRepository(redisClient, source, bankID, questionTTL)
	}
	source = memory.NewQuestionRepository(source, questionTTL)
	// warm the cache so a broken source shows up in the startup log
	glog.Infof("question pool ready: %d subjects", len(app.Subjects(app.LoadQuestions(ctx, source))))

	var remote app.LeaderboardStore
	switch cfg.Leaderboard.Backend {
	case config.BackendRedis:
		remote = redisinfra.NewLeaderboard(redisClient, cfg.Leaderboard.Name)
	case config.BackendPostgres:
		db := postgres.OpenDB(cfg.Postgres.URL)
		closers = append(closers, func() { _ = db.Close() })
		remote = postgres.NewLeaderboard(db)
	case config.BackendSQLite:
		lb, err := sqlite.Open(ctx, cfg.Leaderboard.SQLitePath)
		if err != nil {
			// a broken local file should not stop the quiz; scores stay in memory
			glog.Warningf("open sqlite leaderboard: %v; keeping scores in memory", err)
			break
		}
		closers = append(closers, func() { _ = lb.Close() })
		remote = lb
	}
	if remote != nil {
		remote = memory.NewCachedLeaderboard(remote, config.TTLDuration(cfg.Leaderboard.CacheTTL, memory.DefaultLeaderboardTTL))
		glog.Infof("leaderboard backend: %s", cfg.Leaderboard.Backend)
	} else {
		glog.Info("no global leaderboard configured, scores are kept in memory")
	}

	service := app.NewQuizService(source, remote, memory.NewLeaderboard(cfg.Leaderboard.LocalCapacity),
		app.WithSampleSize(cfg.Quiz.SampleSize),
		app.WithStoreTimeout(config.TTLDuration(cfg.Leaderboard.Timeout, 5*time.Second)),
	)
	return service, cleanup, nil
}
