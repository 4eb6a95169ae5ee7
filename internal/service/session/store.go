package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kapu/figures-review-go/internal/constants"
	"github.com/kapu/figures-review-go/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Snapshot is the browsing position restored when the review UI starts again.
// Records themselves are never stored; they are always refetched.
type Snapshot struct {
	ActiveTab     string    `json:"active_tab,omitempty"`
	ReviewCode    string    `json:"review_code,omitempty"`
	FiguresFilter string    `json:"figures_filter,omitempty"`
	FiguresPage   int       `json:"figures_page,omitempty"`
	FiguresCode   string    `json:"figures_code,omitempty"`
	MonthlyPage   int       `json:"monthly_page,omitempty"`
	SavedAt       time.Time `json:"saved_at"`
}

// Store loads and saves snapshots by session name.
type Store interface {
	Load(ctx context.Context, name string) (Snapshot, bool, error)
	Save(ctx context.Context, name string, snap Snapshot) error
	Clear(ctx context.Context, name string) error
	Close() error
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.SessionConfig.ReadyTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Session store connected",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = constants.SessionConfig.DefaultTTL
	}
	return &RedisStore{client: client, logger: logger, ttl: ttl}, nil
}

func Key(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "default"
	}
	return constants.SessionConfig.KeyPrefix + name
}

func (s *RedisStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	key := Key(name)
	value, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		s.logger.Error("Session load failed", zap.String("key", key), zap.Error(err))
		return Snapshot{}, false, errors.NewCacheError("get failed", "get", key, err)
	}

	snap, err := decodeSnapshot(value)
	if err != nil {
		s.logger.Warn("Session unmarshal failed, ignoring", zap.String("key", key), zap.Error(err))
		return Snapshot{}, false, errors.NewCacheError("unmarshal failed", "get", key, err)
	}
	return snap, true, nil
}

func (s *RedisStore) Save(ctx context.Context, name string, snap Snapshot) error {
	key := Key(name)
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Error("Session save failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, name string) error {
	key := Key(name)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Session delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("delete failed", "del", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return errors.NewCacheError("close failed", "close", "", err)
	}
	return nil
}

func decodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
