package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/modules/users"
	"docvault/internal/repository"
)

func main() {
	username := flag.String("username", "", "username of the account to create")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", "user", "role: admin or user")
	flag.Parse()

	if err := run(*username, *password, *role); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(username, password, role string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		return err
	}

	ctx := context.Background()
	svc := users.NewService(repository.NewUserRepository(db), nil, logger)

	// A fresh database gets its admin before any other account, as at server startup.
	if _, err := svc.EnsureDefaultAdmin(ctx, cfg.DefaultAdminPassword); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	u, err := svc.Add(ctx, users.AddUserRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	switch {
	case errors.Is(err, users.ErrMissingFields):
		return errors.New("-username and -password are required")
	case errors.Is(err, users.ErrInvalidRole):
		return fmt.Errorf("invalid role %q", role)
	case errors.Is(err, users.ErrReservedUsername):
		return fmt.Errorf("user %q must have the admin role", username)
	case errors.Is(err, users.ErrUserExists):
		return fmt.Errorf("user %q already exists", username)
	case err != nil:
		return err
	}

	logger.Info("user created", zap.Int64("id", u.ID), zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return nil
}
