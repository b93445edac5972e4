package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"farmasaude-api/internal/core/config"
	"farmasaude-api/internal/repo"
	"farmasaude-api/internal/service"
)

// ensureAdmin 启动时保证引导 admin 账号存在，未配置邮箱则跳过
func ensureAdmin(svc *service.AuthService, cfg *config.Config, log *zap.Logger) error {
	email := cfg.Seed.AdminEmail
	if email == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := svc.EnsureAdmin(ctx, email, cfg.Seed.AdminPassword, cfg.Seed.AdminName)
	if err != nil {
		// 多副本同时启动会撞唯一键，另一个副本已经种好了
		if repo.IsDupKey(err) {
			return nil
		}
		return err
	}
	if created {
		log.Info("seeded admin account", zap.String("email", email))
	}
	return nil
}
