package httpapi

import (
	"time"

	"go.uber.org/zap"

	"github.com/zkadhem/Quiz-App/internal/history"
	"github.com/zkadhem/Quiz-App/internal/quiz"
)

// API serves quiz sessions over HTTP. Sessions live in memory; finished
// results are recorded in history when a repository is configured.
type API struct {
	source   quiz.Source
	sessions *registry
	history  history.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAPI returns an API backed by source. repo may be nil, in which case the
// history and leaderboard endpoints report history as disabled.
func NewAPI(source quiz.Source, repo history.Repository, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		source:   source,
		sessions: newRegistry(),
		history:  repo,
		logger:   logger,
		now:      time.Now,
	}
}
