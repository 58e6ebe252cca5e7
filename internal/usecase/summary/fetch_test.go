package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/domain"
)

func TestQueryReturnsBackendResult(t *testing.T) {
	var gotParams map[string]string
	backend := domain.BackendFunc(func(_ context.Context, r domain.Resource, p map[string]string) (any, error) {
		gotParams = p
		return map[string]any{"resource": string(r)}, nil
	})

	v, err := Query(context.Background(), backend, time.Second, domain.ResourceCapital, map[string]string{"status": "pending"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"resource": "capital"}, v)
	assert.Equal(t, "pending", gotParams["status"])
}

func TestQueryPassesBackendError(t *testing.T) {
	backend := domain.BackendFunc(func(context.Context, domain.Resource, map[string]string) (any, error) {
		return nil, domain.NewDomainError("Backend.Query", domain.ErrBackendStatus, "503")
	})
	_, err := Query(context.Background(), backend, time.Second, domain.ResourcePortfolios, nil)
	assert.ErrorIs(t, err, domain.ErrBackendStatus)
}

func TestQueryTimesOutOnStuckBackend(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	backend := domain.BackendFunc(func(context.Context, domain.Resource, map[string]string) (any, error) {
		<-release // ignores ctx
		return nil, nil
	})

	start := time.Now()
	_, err := Query(context.Background(), backend, 20*time.Millisecond, domain.ResourceWorkflowStatus, nil)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestQueryMapsDeadlineErrorFromBackend(t *testing.T) {
	backend := domain.BackendFunc(func(ctx context.Context, _ domain.Resource, _ map[string]string) (any, error) {
		return nil, context.DeadlineExceeded
	})
	_, err := Query(context.Background(), backend, time.Second, domain.ResourceCapital, nil)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestQueryRecoversPanic(t *testing.T) {
	backend := domain.BackendFunc(func(context.Context, domain.Resource, map[string]string) (any, error) {
		panic("decoder exploded")
	})
	_, err := Query(context.Background(), backend, time.Second, domain.ResourcePerformance, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "decoder exploded")
}

func TestQueryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	backend := domain.BackendFunc(func(ctx context.Context, _ domain.Resource, _ map[string]string) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := Query(ctx, backend, 0, domain.ResourceCapital, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestQueryNilBackend(t *testing.T) {
	_, err := Query(context.Background(), nil, time.Second, domain.ResourceCapital, nil)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}
