package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Guyuepp/picshare/internal/repository"
	mysqlRepo "github.com/Guyuepp/picshare/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/picshare/internal/repository/redis"
	"github.com/Guyuepp/picshare/internal/rest"
	"github.com/Guyuepp/picshare/internal/rest/middleware"
	"github.com/Guyuepp/picshare/internal/rest/request"
	"github.com/Guyuepp/picshare/internal/usecase/account"
	"github.com/Guyuepp/picshare/internal/usecase/comment"
	"github.com/Guyuepp/picshare/internal/usecase/picture"
	"github.com/Guyuepp/picshare/internal/usecase/score"
	"github.com/Guyuepp/picshare/internal/workers"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
}

func main() {
	cfg := loadConfig()
	logrus.SetLevel(cfg.LogLevel)

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = openDB(cfg.DSN)
		if err == nil {
			break
		}
		logrus.Warnf("failed to connect to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		logrus.Fatal("could not connect to database after retries: ", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			logrus.Error("got error when getting sql.DB from gorm.DB: ", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Error("got error when closing the DB connection: ", err)
		}
	}()

	if err := mysqlRepo.AutoMigrate(db); err != nil {
		logrus.Fatal("failed to migrate database: ", err)
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.CacheAddr,
		Password: cfg.CachePass,
		DB:       cfg.CacheDB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Error("got error when closing the cache connection: ", err)
		}
	}()

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logrus.Fatal("failed to open connection to cache: ", err)
	}

	// prepare gin
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if err := request.RegisterValidators(); err != nil {
		logrus.Fatal(err)
	}
	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middleware.Metrics())
	route.Use(middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	// Prepare Repository
	accountRepo := mysqlRepo.NewAccountRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	tagRepo := mysqlRepo.NewTagRepository(db)

	// Picture相关的三层架构
	// 1. DB层
	pictureDBRepo := mysqlRepo.NewPictureDBRepository(db)
	// 2. Cache层
	pictureCache := myRedisCache.NewPictureCache(client)
	// 3. Repository协调层
	pictureRepo := repository.NewPictureRepository(pictureDBRepo, pictureCache, accountRepo)

	bloomRepo := myRedisCache.NewRedisBloomRepo(client, cfg.BloomBitSize)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rankSyncer := workers.NewRankSyncWorker(pictureCache)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		rankSyncer.Start(ctx)
	}()

	// Build service Layer
	calculator := score.NewCalculator(cfg.LikeWeight, cfg.DislikeWeight)
	pictureSvc := picture.NewService(pictureRepo, tagRepo, accountRepo, bloomRepo, calculator, rankSyncer)
	accountSvc := account.NewService(accountRepo, []byte(cfg.JWTSecret), cfg.JWTTTL)
	commentSvc := comment.NewService(commentRepo, accountRepo, bloomRepo)
	pictureHandler := rest.NewPictureHandler(pictureSvc)
	accountHandler := rest.NewAccountHandler(accountSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Prepare bloom filter
	if err := pictureSvc.InitBloomFilter(ctx); err != nil {
		logrus.Errorf("failed to init bloom filter: %v", err)
		return
	}

	// Register routes
	route.GET("/metrics", gin.WrapH(promhttp.Handler()))

	route.POST("/register", accountHandler.Register)
	route.POST("/login", accountHandler.Login)

	route.GET("/pictures", pictureHandler.Fetch)
	route.GET("/pictures/popular", pictureHandler.FetchPopular)
	route.GET("/pictures/:id", optionalAuth, pictureHandler.GetByID)
	route.GET("/pictures/:id/likes", pictureHandler.GetLikes)
	route.GET("/pictures/:id/comments", commentHandler.FetchCommentsByPicture)

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.GET("/pictures/personalized", pictureHandler.FetchPersonalized)
		authorized.POST("/pictures", pictureHandler.Store)
		authorized.PATCH("/pictures/:id/tags", pictureHandler.UpdateTags)
		authorized.DELETE("/pictures/:id", pictureHandler.Delete)
		authorized.PATCH("/pictures/:id/voteup", pictureHandler.VoteUp)
		authorized.PATCH("/pictures/:id/votedown", pictureHandler.VoteDown)
		authorized.POST("/pictures/:id/comments", commentHandler.CreateComment)
		authorized.DELETE("/comments/:id", commentHandler.DeleteComment)
	}

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		logrus.Warn("worker did not stop in time")
	}

	logrus.Info("Server exiting")
}

// openDB opens the gorm connection and pings it
func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}
