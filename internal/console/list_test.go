package console_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetadovale/newsdesk/internal/console"
)

type deleteRecorder struct {
	deleted   []int
	deleteErr error
	refreshes int
	refErr    error
}

func (r *deleteRecorder) delete(_ context.Context, id int) error {
	r.deleted = append(r.deleted, id)
	return r.deleteErr
}

func (r *deleteRecorder) refresh(_ context.Context) error {
	r.refreshes++
	return r.refErr
}

func TestRequestDeleteDoesNotFire(t *testing.T) {
	rec := &deleteRecorder{}
	coord := console.NewListCoordinator(console.KindNews, rec.delete, rec.refresh)

	coord.RequestDelete(5, "Acme")

	pending, ok := coord.Pending()
	require.True(t, ok)
	assert.Equal(t, 5, pending.ID)
	assert.Equal(t, "Acme", pending.Label)
	assert.Empty(t, rec.deleted)
}

func TestCancelNeverFires(t *testing.T) {
	rec := &deleteRecorder{}
	coord := console.NewListCoordinator(console.KindAds, rec.delete, rec.refresh)

	coord.RequestDelete(5, "Acme")
	coord.Cancel()

	_, ok := coord.Pending()
	assert.False(t, ok)
	assert.Empty(t, rec.deleted)
	assert.Zero(t, rec.refreshes)

	// Confirming after a cancel must not resurrect the request.
	err := coord.Confirm(context.Background())
	assert.ErrorIs(t, err, console.ErrNoPendingDelete)
	assert.Empty(t, rec.deleted)
}

func TestConfirmFiresOnceAndRefreshes(t *testing.T) {
	rec := &deleteRecorder{}
	coord := console.NewListCoordinator(console.KindPartners, rec.delete, rec.refresh)

	coord.RequestDelete(5, "Acme")
	require.NoError(t, coord.Confirm(context.Background()))

	assert.Equal(t, []int{5}, rec.deleted)
	assert.Equal(t, 1, rec.refreshes)

	_, ok := coord.Pending()
	assert.False(t, ok)

	assert.ErrorIs(t, coord.Confirm(context.Background()), console.ErrNoPendingDelete)
	assert.Equal(t, []int{5}, rec.deleted)
}

func TestNewRequestReplacesPending(t *testing.T) {
	rec := &deleteRecorder{}
	coord := console.NewListCoordinator(console.KindUsers, rec.delete, rec.refresh)

	coord.RequestDelete(5, "Acme")
	coord.RequestDelete(9, "Umbrella")

	pending, ok := coord.Pending()
	require.True(t, ok)
	assert.Equal(t, 9, pending.ID)

	require.NoError(t, coord.Confirm(context.Background()))
	assert.Equal(t, []int{9}, rec.deleted)
}

func TestConfirmRefreshesEvenWhenDeleteFails(t *testing.T) {
	rec := &deleteRecorder{deleteErr: errors.New("boom")}
	coord := console.NewListCoordinator(console.KindRegions, rec.delete, rec.refresh)

	coord.RequestDelete(3, "Vale do Aço")
	err := coord.Confirm(context.Background())

	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, rec.refreshes)

	_, ok := coord.Pending()
	assert.False(t, ok, "failed delete still returns to idle")
}

func TestConfirmReportsRefreshFailure(t *testing.T) {
	rec := &deleteRecorder{refErr: errors.New("fetch down")}
	coord := console.NewListCoordinator(console.KindCities, rec.delete, rec.refresh)

	coord.RequestDelete(7, "Ipatinga")
	err := coord.Confirm(context.Background())

	assert.ErrorContains(t, err, "fetch down")
	assert.Equal(t, []int{7}, rec.deleted)
}

func TestConfirmWithoutRefresher(t *testing.T) {
	rec := &deleteRecorder{}
	coord := console.NewListCoordinator(console.KindNews, rec.delete, nil)

	coord.RequestDelete(1, "x")
	assert.NoError(t, coord.Confirm(context.Background()))
	assert.Equal(t, []int{1}, rec.deleted)
}
