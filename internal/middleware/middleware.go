package middleware

import (
	"github.com/mailgate/mailgate/internal/config"
	"github.com/mailgate/mailgate/internal/database"
	"github.com/mailgate/mailgate/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	rdb *database.Redis
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance. rdb may be nil when rate limiting
// is disabled.
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		rdb: rdb,
		log: log,
		cfg: cfg,
	}
}
