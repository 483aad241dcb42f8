package deferred

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGo(t *testing.T) {
	release := make(chan struct{})
	v := Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 42, nil
	})
	assert.False(t, v.Ready())

	close(release)
	got, err := v.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.True(t, v.Ready())
}

func TestGoError(t *testing.T) {
	boom := errors.New("boom")
	v := Go(context.Background(), func(context.Context) (string, error) { return "", boom })

	_, err := v.Await(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGoPanic(t *testing.T) {
	v := Go(context.Background(), func(context.Context) (int, error) { panic("kaboom") })

	_, err := v.Await(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestAwaitContextDone(t *testing.T) {
	release := make(chan struct{})
	v := Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	defer func() {
		close(release)
		<-v.Done()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := v.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProducerSeesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v := Go(ctx, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	cancel()

	_, err := v.Await(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolvedAndFailed(t *testing.T) {
	r := Resolved("ok")
	assert.True(t, r.Ready())
	got, err := r.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	f := Failed[int](errors.New("nope"))
	assert.True(t, f.Ready())
	_, err = f.Await(context.Background())
	assert.EqualError(t, err, "nope")
}
