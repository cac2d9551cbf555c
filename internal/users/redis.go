package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
)

// RedisStore はユーザーレコードを Redis に保存します。
// レコード本体は user:<id> に JSON で保持し、username:<username> には
// id のみをインデックスとして保持します。
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore は RedisStore を作成します。
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// FindByUsername はユーザー名インデックス経由でレコードを取得します。
func (s *RedisStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, ErrNotFound
	}
	id, err := s.rdb.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// FindByID は識別子でレコードを取得します。
func (s *RedisStore) FindByID(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	data, err := s.rdb.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Save はレコード本体と username インデックスをまとめて保存します。
// プロビジョニング（cmd/seed）専用で、Store インターフェースには含まれません。
func (s *RedisStore) Save(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	if user.ID == "" || user.Username == "" {
		return fmt.Errorf("id and username are required")
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	tx := s.rdb.TxPipeline()
	tx.Set(ctx, userKey(user.ID), payload, 0)
	tx.Set(ctx, usernameKey(user.Username), user.ID, 0)
	_, err = tx.Exec(ctx)
	return err
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func usernameKey(name string) string {
	return usernameKeyPrefix + name
}
