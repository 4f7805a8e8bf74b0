// Package tokenstore 保存登录后获得的 bearer 令牌。
//
// 令牌只在每次请求开始时读取，客户端从不刷新令牌；过期或失效由后端判定。
package tokenstore

import (
	"errors"
	"strings"
	"sync"

	"study_assistant/internal/util"
)

type Store interface {
	Save(token string) error
	// Load 未登录时返回 util.ErrNoToken
	Load() (string, error)
	Clear() error
}

// IsAuthenticated 存在非空令牌即视为已登录
func IsAuthenticated(s Store) bool {
	token, err := s.Load()
	return err == nil && token != ""
}

// MemoryStore 进程内存储，用于测试和 --token 参数
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: strings.TrimSpace(token)}
}

func (s *MemoryStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to save empty token")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", util.ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
