package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSourceCachesFirstLogin(t *testing.T) {
	calls := 0
	source := newTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return fmt.Sprintf("tok-%d", calls), nil
	})

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	token, err = source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, 1, calls)
}

func TestTokenSourceRefreshOverwrites(t *testing.T) {
	calls := 0
	source := newTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return fmt.Sprintf("tok-%d", calls), nil
	})

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Refresh logs in even though a token is cached.
	refreshed, err := source.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", refreshed)
	assert.Equal(t, 2, calls)

	token, err = source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token, "the refreshed token replaces the cached one")
	assert.Equal(t, 2, calls)
}

func TestTokenSourceLoginFailureNotCached(t *testing.T) {
	calls := 0
	source := newTokenSource(func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("upstream down")
		}
		return "tok-ok", nil
	})

	_, err := source.Token(context.Background())
	require.Error(t, err)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-ok", token)
	assert.Equal(t, 2, calls, "a failed login must not poison the cell")
}

func TestTokenSourceConcurrentFirstUse(t *testing.T) {
	var calls int32
	gate := make(chan struct{})
	source := newTokenSource(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return "tok-1", nil
	})

	const workers = 16
	tokens := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = source.Token(context.Background())
		}(i)
	}
	close(gate)
	wg.Wait()

	// Late arrivals find the cell filled; everyone else shares the one
	// flight. Either way a single upstream login serves all workers.
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok-1", tokens[i])
	}
}

func TestTokenSourceRefreshDoesNotJoinPendingGet(t *testing.T) {
	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	source := newTokenSource(func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
			return "tok-get", nil
		}
		return "tok-refresh", nil
	})

	var got string
	var getErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		got, getErr = source.Token(context.Background())
	}()

	// With the first login still in flight, a forced refresh must run its
	// own login rather than being handed the pending one's result.
	<-entered
	refreshed, err := source.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-refresh", refreshed)

	close(release)
	<-done
	require.NoError(t, getErr)
	assert.Equal(t, "tok-get", got)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
