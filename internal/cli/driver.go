package cli

import (
	"context"

	"github.com/zkadhem/Quiz-App/internal/quiz"
)

// Driver is the session surface the terminal loop talks to. LocalDriver runs
// the session in-process; remote.Client runs it on a quiz server.
type Driver interface {
	Present(ctx context.Context) (quiz.Presentation, error)
	Submit(ctx context.Context, index int) (quiz.Resolution, error)
	Tick(ctx context.Context) (quiz.TickResult, error)
	Result(ctx context.Context) (quiz.Result, error)
}

type LocalDriver struct {
	session *quiz.Session
}

var _ Driver = (*LocalDriver)(nil)

func NewLocalDriver(session *quiz.Session) *LocalDriver {
	return &LocalDriver{session: session}
}

func (d *LocalDriver) Present(context.Context) (quiz.Presentation, error) {
	return d.session.Present()
}

func (d *LocalDriver) Submit(_ context.Context, index int) (quiz.Resolution, error) {
	return d.session.Submit(index)
}

func (d *LocalDriver) Tick(context.Context) (quiz.TickResult, error) {
	return d.session.Tick()
}

func (d *LocalDriver) Result(context.Context) (quiz.Result, error) {
	return d.session.Result()
}
