package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the backing connections. Each one is optional; a nil field means
// the service runs with the in-memory implementation for that concern.
type DB struct {
	Mongo    *mongo.Client
	Postgres *gorm.DB
	Redis    *redis.Client

	logger *logrus.Logger
}

// InitDB connects to every backend named in cfg.
func InitDB(ctx context.Context, cfg *Config, logger *logrus.Logger) (*DB, error) {
	db := &DB{logger: logger}

	if cfg.MongoURI != "" {
		client, err := initMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = client
		logger.Info("Successfully connected to MongoDB")
	} else {
		logger.Warn("MONGO_URI not set, using in-memory user store")
	}

	if cfg.PostgresConnStr != "" {
		pg, err := initPostgres(cfg.PostgresConnStr, cfg.IsDevelopment())
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		db.Postgres = pg
		logger.Info("Successfully connected to PostgreSQL")
	} else {
		logger.Warn("POSTGRES_CONN_STR not set, using in-memory prompt store")
	}

	if cfg.RedisAddr != "" {
		rdb, err := initRedis(ctx, cfg)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		db.Redis = rdb
		logger.Info("Successfully connected to Redis")
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory acquisition sessions")
	}

	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

func initPostgres(connStr string, verbose bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if verbose {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func initRedis(ctx context.Context, cfg *Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// CloseDB closes whatever connections were opened.
func (db *DB) CloseDB() {
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			db.logger.WithError(err).Error("Error closing Redis connection")
		} else {
			db.logger.Info("Redis connection closed")
		}
	}

	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			db.logger.WithError(err).Error("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			db.logger.WithError(err).Error("Error closing PostgreSQL connection")
		} else {
			db.logger.Info("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.WithError(err).Error("Error closing MongoDB connection")
		} else {
			db.logger.Info("MongoDB connection closed")
		}
	}
}
