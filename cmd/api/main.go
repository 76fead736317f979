package main

import (
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/persist"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/store"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .envがあれば読む（無くても環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New("storefront")
	if cfg.GoEnv == "dev" {
		logger.SetLevel(log.DEBUG)
	}

	//カタログDB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(&model.Product{}); err != nil {
		panic(err)
	}

	//永続化バックエンド選択
	var snapStore repository.SnapshotStore
	switch cfg.PersistDriver {
	case config.DriverFile:
		fs, err := persist.NewFileSnapshotStore(cfg.StateDir)
		if err != nil {
			panic(err)
		}
		snapStore = fs
	case config.DriverPostgres:
		if err := gormDB.AutoMigrate(&persist.StoreSnapshot{}); err != nil {
			panic(err)
		}
		snapStore = persist.NewGormSnapshotStore(gormDB)
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		snapStore = persist.NewRedisSnapshotStore(client, 0)
	case config.DriverMemory:
		snapStore = persist.NewMemorySnapshotStore()
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	//セッションごとのストア管理
	sessions := store.NewManager(snapStore, logger)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(productRepo, sessions)
	favUC := usecase.NewFavoriteUsecase(productRepo, sessions)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	favH := handler.NewFavoriteHandler(favUC)

	//Server起動
	if err := server.Start(cfg, cartH, favH); err != nil {
		panic(err)
	}
}
