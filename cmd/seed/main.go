// Package main はユーザーレコードを Redis に投入するプロビジョニングコマンドです。
// アプリケーション本体はストアを読み取り専用で扱うため、
// アカウントの作成・更新はこのコマンドだけが行います。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/robinson/internal/config"
	"github.com/yourusername/robinson/internal/users"
)

// seedUser は投入ファイル内の1ユーザー分の定義です。
type seedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

func main() {
	file := flag.String("file", "seed/users.json", "path to the JSON user list")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	flag.Parse()

	if err := run(*file, *cost); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(file string, cost int) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var entries []seedUser
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return err
	}
	store := users.NewRedisStore(redis.NewClient(opt))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, entry := range entries {
		if entry.Username == "" || entry.Password == "" {
			return fmt.Errorf("username and password are required (username=%q)", entry.Username)
		}

		hash, err := users.HashPassword(entry.Password, cost)
		if err != nil {
			return err
		}

		// 既存ユーザーは識別子を維持したまま上書きする
		// （発行済みセッションを無効化しないため）
		id := uuid.NewString()
		existing, err := store.FindByUsername(ctx, entry.Username)
		if err == nil {
			id = existing.ID
		} else if !errors.Is(err, users.ErrNotFound) {
			return err
		}

		user := &users.User{
			ID:           id,
			Username:     entry.Username,
			PasswordHash: hash,
			Admin:        entry.Admin,
		}
		if err := store.Save(ctx, user); err != nil {
			return fmt.Errorf("save %s: %w", entry.Username, err)
		}
		log.Printf("seeded user %s (admin=%v)", entry.Username, entry.Admin)
	}

	return nil
}
