package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout      = 30
	defaultAddress      = ":9090"
	defaultCacheDB      = 0
	defaultBloomBitSize = 10000000
	defaultJWTTTLHours  = 24
	defaultLikeWeight   = 10
	defaultDislikeWgt   = 5
	dbMaxRetry          = 10
	dbRetryIntervalSec  = 2
)

type config struct {
	DSN string

	CacheAddr string
	CachePass string
	CacheDB   int

	ContextTimeout time.Duration
	ServerAddress  string

	JWTSecret string
	JWTTTL    time.Duration

	BloomBitSize uint64

	LikeWeight    int64
	DislikeWeight int64

	LogLevel logrus.Level
	GinMode  string
}

func loadConfig() config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, reading configuration from the environment")
	}

	cfg := config{
		CacheAddr:      os.Getenv("CACHE_HOST") + ":" + os.Getenv("CACHE_PORT"),
		CachePass:      os.Getenv("CACHE_PASS"),
		CacheDB:        int(envInt("CACHE_DB", defaultCacheDB)),
		ContextTimeout: time.Duration(envInt("CONTEXT_TIMEOUT", defaultTimeout)) * time.Second,
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         time.Duration(envInt("JWT_EXPIRE_HOURS", defaultJWTTTLHours)) * time.Hour,
		BloomBitSize:   uint64(envInt("BLOOM_FILTER_SIZE", defaultBloomBitSize)),
		LikeWeight:     envInt("SCORE_LIKE_WEIGHT", defaultLikeWeight),
		DislikeWeight:  envInt("SCORE_DISLIKE_WEIGHT", defaultDislikeWgt),
		LogLevel:       logrus.InfoLevel,
		GinMode:        os.Getenv("GIN_MODE"),
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = defaultAddress
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		cfg.LogLevel = lvl
	}

	// prepare database
	dbCfg := mysqlDriver.NewConfig()
	dbCfg.User = os.Getenv("DATABASE_USER")
	dbCfg.Passwd = os.Getenv("DATABASE_PASS")
	dbCfg.Net = "tcp"
	dbCfg.Addr = fmt.Sprintf("%s:%s", os.Getenv("DATABASE_HOST"), os.Getenv("DATABASE_PORT"))
	dbCfg.DBName = os.Getenv("DATABASE_NAME")
	dbCfg.ParseTime = true
	dbCfg.Params = map[string]string{"charset": "utf8mb4"}
	if loc := os.Getenv("DATABASE_LOC"); loc != "" {
		if l, err := time.LoadLocation(loc); err == nil {
			dbCfg.Loc = l
		} else {
			logrus.Warnf("invalid DATABASE_LOC %q, using UTC", loc)
		}
	}
	cfg.DSN = dbCfg.FormatDSN()

	return cfg
}

func envInt(key string, def int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return v
}
