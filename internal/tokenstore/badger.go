package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"study_assistant/internal/util"
	"study_assistant/pkg/logger"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore 基于 BadgerDB 的持久化键值存储，令牌保存在固定键下
type BadgerStore struct {
	db *badger.DB
}

type BadgerConfig struct {
	// Path 数据目录，InMemory 为 true 时忽略
	Path     string
	InMemory bool
}

// badgerLogger 把 badger 内部日志转到 zap，info 以下降级为 debug
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Log.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "badger"))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Log.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "badger"))
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logger.Log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "badger"))
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Log.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "badger"))
}

func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("token store path is required")
		}
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, fmt.Errorf("create token store dir: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(true)
	}
	opts = opts.WithLogger(badgerLogger{}).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to save empty token")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(util.TokenKey), []byte(token))
	})
}

func (s *BadgerStore) Load() (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(util.TokenKey))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		token = string(val)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", util.ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", util.ErrNoToken
	}
	return token, nil
}

func (s *BadgerStore) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(util.TokenKey))
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
