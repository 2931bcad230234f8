package main

import (
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/handler"
	"github.com/yi-nology/asset_harbor/biz/handler/version"
	"github.com/yi-nology/asset_harbor/biz/middleware"
	"github.com/yi-nology/asset_harbor/biz/router"
	"github.com/yi-nology/asset_harbor/biz/service"
	"github.com/yi-nology/asset_harbor/pkg/config"
	"github.com/yi-nology/asset_harbor/pkg/database"
	"github.com/yi-nology/asset_harbor/pkg/lock"
	pkgredis "github.com/yi-nology/asset_harbor/pkg/redis"
	"github.com/yi-nology/asset_harbor/pkg/storage"
	"github.com/yi-nology/asset_harbor/pkg/validator"
)

// Version information, injected at build time:
//
//	go build -ldflags "-X main.Version=v1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	version.AppVersion = Version
	version.AppGitCommit = GitCommit
	version.AppBuildTime = BuildTime

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Asset{}, &model.Component{}); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	objects, err := storage.New(storage.Config{
		Type:  cfg.Storage.Type,
		Local: storage.LocalConfig{BasePath: cfg.Storage.Local.BasePath},
		S3: storage.S3Config{
			Endpoint:  cfg.Storage.S3.Endpoint,
			Region:    cfg.Storage.S3.Region,
			Bucket:    cfg.Storage.S3.Bucket,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			UseSSL:    cfg.Storage.S3.UseSSL,
			PathStyle: cfg.Storage.S3.PathStyle,
			URLMode:   cfg.Storage.S3.URLMode,
		},
	})
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	log.Printf("storage backend: %s", objects.Type())

	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("init redis: %v", err)
	}
	if redisClient != nil {
		middleware.InitWriteLock(lock.New(redisClient, "asset_harbor:write_lock",
			30*time.Second, 10*time.Second))
		log.Println("global write lock enabled")
	}

	svc := service.NewService(db, objects)
	uploads := validator.NewUploadConfig(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	h.Use(middleware.Recovery())
	h.Use(middleware.Logging())
	h.Use(middleware.CORS(&cfg.CORS))
	h.Use(middleware.Auth())

	router.Register(h,
		handler.NewInventoryHandler(svc, uploads),
		handler.NewFileHandler(objects),
		handler.NewTransferHandler(svc),
	)

	log.Printf("asset harbor %s listening on %s", Version, cfg.Server.Address)
	h.Spin()
}
