package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type nopJob struct{}

func (nopJob) Name() string            { return "nop" }
func (nopJob) Run(ctx context.Context) {}

func TestRegister(t *testing.T) {
	s := New(zap.NewNop())

	assert.NoError(t, s.Register("*/5 * * * *", nopJob{}))
	assert.Error(t, s.Register("not a cron spec", nopJob{}))
}
