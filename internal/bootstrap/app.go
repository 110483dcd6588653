package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"socialnet/internal/app"
	"socialnet/internal/config"
	"socialnet/internal/model"
	"socialnet/internal/pkg/upload"
	mysqlClient "socialnet/internal/platform/mysql"
	rabbitmqClient "socialnet/internal/platform/rabbitmq"
	redisClient "socialnet/internal/platform/redis"
	"socialnet/internal/repository"
	"socialnet/internal/repository/memory"
	"socialnet/internal/worker"
)

// Stores groups the persistence backends the services run on.
type Stores struct {
	Users        app.UserStore
	Follows      app.FollowStore
	Publications app.PublicationStore
}

type App struct {
	Config        *config.Config
	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	CleanupWorker *worker.FileCleanupWorker

	Stores  Stores
	Avatars *upload.Store
	Media   *upload.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("release partially initialised resources failed")
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	avatars, err := upload.NewStore(cfg.Upload.AvatarDir, "avatar", cfg.Upload.MaxSizeBytes, upload.ImageExtensions...)
	if err != nil {
		return err
	}
	media, err := upload.NewStore(cfg.Upload.PublicationDir, "pub", cfg.Upload.MaxSizeBytes, upload.ImageExtensions...)
	if err != nil {
		return err
	}
	a.Avatars = avatars
	a.Media = media

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		a.Stores = NewMemoryStores()
		log.Warn().Msg("using in-memory store, data is lost on restart")
	default:
		db, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.App.Env == "dev")
		if err != nil {
			return err
		}
		a.MySQL = db
		if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Publication{}); err != nil {
			return fmt.Errorf("auto migrate tables failed: %w", err)
		}
		a.Stores = Stores{
			Users:        repository.NewUserRepository(db),
			Follows:      repository.NewFollowRepository(db),
			Publications: repository.NewPublicationRepository(db),
		}
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.Redis = redisCli
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.FileCleanupQueue)
		if err != nil {
			return err
		}
		a.MQConn = mqConn

		cleanupWorker := worker.NewFileCleanupWorker(mqConn, cfg.RabbitMQ.FileCleanupQueue, map[string]worker.FileRemover{
			model.FileKindAvatar:      avatars,
			model.FileKindPublication: media,
		})
		if err := cleanupWorker.Start(ctx); err != nil {
			return fmt.Errorf("start file cleanup worker failed: %w", err)
		}
		a.CleanupWorker = cleanupWorker
	}

	return nil
}

// NewMemoryStores returns stores backed by a fresh in-process store.
func NewMemoryStores() Stores {
	store := memory.NewStore()
	return Stores{
		Users:        store.Users(),
		Follows:      store.Follows(),
		Publications: store.Publications(),
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.CleanupWorker != nil {
		a.CleanupWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
