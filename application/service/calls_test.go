package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dialcoach/dialcoach/application/service"
	"github.com/dialcoach/dialcoach/domain/call"
	"github.com/dialcoach/dialcoach/infrastructure/persistence"
	"github.com/dialcoach/dialcoach/internal/database"
	"github.com/dialcoach/dialcoach/internal/testdb"
)

func newCalls(t *testing.T) *service.Calls {
	t.Helper()
	store := persistence.NewSalesCallStore(testdb.New(t))
	return service.NewCalls(store)
}

func strPtr(s string) *string { return &s }

func TestCalls_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	created, err := calls.Create(ctx, "hello there", "strong opener")
	require.NoError(t, err)
	require.NotZero(t, created.ID())

	got, err := calls.Get(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, "hello there", got.Transcription())
	require.Equal(t, "strong opener", got.Analysis())
}

func TestCalls_Create_RejectsEmptyFields(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	_, err := calls.Create(ctx, "", "analysis")
	require.ErrorIs(t, err, call.ErrValidation)

	_, err = calls.Create(ctx, "transcript", "   ")
	require.ErrorIs(t, err, call.ErrValidation)

	count, err := calls.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count, "invalid calls must not reach the store")
}

func TestCalls_List_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	for i := 0; i < 5; i++ {
		_, err := calls.Create(ctx, "transcript", "analysis")
		require.NoError(t, err)
	}

	page, err := calls.List(ctx, &service.CallListParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)

	all, err := calls.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestCalls_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	created, err := calls.Create(ctx, "original transcript", "original analysis")
	require.NoError(t, err)

	updated, err := calls.Update(ctx, created.ID(), service.CallUpdateParams{
		Analysis: strPtr("revised analysis"),
	})
	require.NoError(t, err)
	require.Equal(t, "original transcript", updated.Transcription(), "nil field stays unchanged")
	require.Equal(t, "revised analysis", updated.Analysis())
	require.True(t, updated.UpdatedAt().After(updated.CreatedAt()),
		"domain helper stamps updated_at on modification")
}

func TestCalls_Update_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	created, err := calls.Create(ctx, "transcript", "analysis")
	require.NoError(t, err)

	_, err = calls.Update(ctx, created.ID(), service.CallUpdateParams{
		Transcription: strPtr(""),
	})
	require.ErrorIs(t, err, call.ErrValidation)

	got, err := calls.Get(ctx, created.ID())
	require.NoError(t, err)
	require.Equal(t, "transcript", got.Transcription(), "failed update leaves the row untouched")
}

func TestCalls_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	_, err := calls.Update(ctx, 999, service.CallUpdateParams{Analysis: strPtr("x")})
	require.ErrorIs(t, err, database.ErrNotFound)
}

func TestCalls_Delete(t *testing.T) {
	ctx := context.Background()
	calls := newCalls(t)

	created, err := calls.Create(ctx, "transcript", "analysis")
	require.NoError(t, err)

	require.NoError(t, calls.Delete(ctx, created.ID()))

	_, err = calls.Get(ctx, created.ID())
	require.ErrorIs(t, err, database.ErrNotFound)

	err = calls.Delete(ctx, created.ID())
	require.ErrorIs(t, err, database.ErrNotFound)
}
