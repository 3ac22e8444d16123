package quiz

import (
	"errors"

	"github.com/zkadhem/Quiz-App/internal/opentdb"
)

var (
	ErrEmptyQuestionSet   = errors.New("question set is empty")
	ErrInvalidTimeLimit   = errors.New("time limit must not be negative")
	ErrSessionComplete    = errors.New("session is complete")
	ErrSessionNotComplete = errors.New("session is not complete")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrUntimed            = errors.New("session has no time limit")
)

// Source failures are defined by the transport and passed through unchanged.
var (
	ErrSourceUnavailable = opentdb.ErrSourceUnavailable
	ErrSourceRejected    = opentdb.ErrSourceRejected
	ErrInvalidResponse   = opentdb.ErrInvalidResponse
)
