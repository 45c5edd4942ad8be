package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

// SessionKey names the stored session in every Storage implementation.
const SessionKey = "spicy-pepper-user"

// Session is the logged-in account as returned by the login call.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsAdmin reports whether the session belongs to the admin account.
func (s *Session) IsAdmin() bool {
	return s != nil && models.IsAdminName(s.Name)
}

// Auth is the literal credentials the session was obtained with.
type Auth struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type storedSession struct {
	Account *Session `json:"account"`
	Auth    *Auth    `json:"auth,omitempty"`
}

// EncodeSession produces the stored form {"account": ..., "auth": ...}.
func EncodeSession(session Session, auth *Auth) (string, error) {
	raw, err := json.Marshal(storedSession{Account: &session, Auth: auth})
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return string(raw), nil
}

// DecodeSession restores a stored session. A bare account object from older clients
// is accepted without credentials. Anything unparseable yields ok=false.
func DecodeSession(raw string) (*Session, *Auth, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil, nil, false
	}

	if account, ok := fields["account"]; ok && string(account) != "null" {
		var stored storedSession
		if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.Account == nil {
			return nil, nil, false
		}
		return stored.Account, stored.Auth, true
	}

	var legacy Session
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, nil, false
	}
	if strings.TrimSpace(legacy.ID) == "" && strings.TrimSpace(legacy.Name) == "" {
		return nil, nil, false
	}
	return &legacy, nil, true
}

// Storage is the durable client-side slot holding the encoded session.
type Storage interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, value string) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the session for the life of the process.
type MemoryStorage struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.set, nil
}

func (m *MemoryStorage) Save(ctx context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = value, true
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = "", false
	return nil
}

// FileStorage keeps the session in <dir>/spicy-pepper-user.json.
type FileStorage struct {
	path string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("session dir is required")
	}
	return &FileStorage{path: filepath.Join(dir, SessionKey+".json")}, nil
}

// Path is the file the session is written to.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load(ctx context.Context) (string, bool, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read session: %w", err)
	}
	return string(raw), true, nil
}

func (f *FileStorage) Save(ctx context.Context, value string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

type redisClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(name string) string
}

// RedisStorage keeps the session under the namespaced session key. A zero ttl never expires.
type RedisStorage struct {
	client redisClient
	key    string
	ttl    time.Duration
}

func NewRedisStorage(client redisClient, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStorage{client: client, key: client.SessionKey(SessionKey), ttl: ttl}, nil
}

func (r *RedisStorage) Load(ctx context.Context) (string, bool, error) {
	return r.client.Get(ctx, r.key)
}

func (r *RedisStorage) Save(ctx context.Context, value string) error {
	return r.client.Set(ctx, r.key, value, r.ttl)
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key)
}
