package handlers

import (
	firebase "firebase.google.com/go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.globetrek.app/internal/journal"
)

type AuthHandler struct {
	firebaseApp *firebase.App
	postgres    *pgxpool.Pool
	redis       *redis.Client
	journals    *journal.Store
	logger      *zap.SugaredLogger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(firebaseApp *firebase.App, postgres *pgxpool.Pool, redisClient *redis.Client, journals *journal.Store, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		firebaseApp: firebaseApp,
		postgres:    postgres,
		redis:       redisClient,
		journals:    journals,
		logger:      logger,
	}
}
