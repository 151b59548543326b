package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrustAnchorListLoad(t *testing.T) {
	api := newFakeAPI(record("1", "https://a.example"), record("2", "https://b.example"))
	list := NewTrustAnchorList(api, Deps{})
	assert.Equal(t, StateLoading, list.State())

	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, StateReady, list.State())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, list.TrustAnchorIDs())
}

func TestTrustAnchorListFetchFailureShowsEmpty(t *testing.T) {
	logs := captureLogs(t)
	api := newFakeAPI(record("1", "https://a.example"))
	api.listErr = errBackend
	deps, alerts, _ := testDeps()
	list := NewTrustAnchorList(api, deps)

	err := list.Load(context.Background())
	assert.ErrorIs(t, err, errBackend)

	assert.NotNil(t, list.Items())
	assert.Empty(t, list.Items())
	assert.Equal(t, StateError, list.State())
	assert.ErrorIs(t, list.Err(), errBackend)
	assert.Empty(t, alerts.Alerts(), "fetch failures raise no alert")
	assert.Contains(t, logs.String(), "failed to list trust anchors")
	assert.Contains(t, logs.String(), "WARN")
}

func TestTrustAnchorListDeleteKeepsOrder(t *testing.T) {
	api := newFakeAPI(
		record("1", "https://a.example"),
		record("2", "https://b.example"),
		record("3", "https://c.example"),
	)
	deps, alerts, _ := testDeps()
	list := NewTrustAnchorList(api, deps)
	require.NoError(t, list.Load(context.Background()))

	confirm, err := list.RequestDelete("2")
	require.NoError(t, err)
	assert.Equal(t, "https://b.example", confirm.TrustAnchor)
	assert.Contains(t, confirm.Message, "https://b.example")
	assert.Equal(t, 0, api.Calls("delete"), "requesting a delete sends nothing")

	pending, ok := list.Pending()
	require.True(t, ok)
	assert.Equal(t, "2", pending.InternalID)

	require.NoError(t, list.ConfirmDelete(context.Background()))

	assert.Equal(t, []string{"https://a.example", "https://c.example"}, list.TrustAnchorIDs())
	assert.Equal(t, 1, api.Calls("delete"))
	assert.Equal(t, 1, api.Calls("list"), "delete does not re-fetch")
	assert.Equal(t, 1, alerts.Count(AlertSuccess))

	_, ok = list.Pending()
	assert.False(t, ok)
}

func TestTrustAnchorListDeleteFailureLeavesList(t *testing.T) {
	api := newFakeAPI(record("1", "https://a.example"), record("2", "https://b.example"))
	deps, alerts, _ := testDeps()
	list := NewTrustAnchorList(api, deps)
	require.NoError(t, list.Load(context.Background()))

	api.deleteErr = errBackend
	_, err := list.RequestDelete("1")
	require.NoError(t, err)

	assert.ErrorIs(t, list.ConfirmDelete(context.Background()), errBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, list.TrustAnchorIDs())
	assert.Equal(t, 1, alerts.Count(AlertDanger))
	assert.Equal(t, 0, alerts.Count(AlertSuccess))
}

func TestTrustAnchorListDeleteEdgeCases(t *testing.T) {
	api := newFakeAPI(record("1", "https://a.example"))
	list := NewTrustAnchorList(api, Deps{})
	require.NoError(t, list.Load(context.Background()))

	_, err := list.RequestDelete("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, list.ConfirmDelete(context.Background()), ErrNoPendingDelete)

	_, err = list.RequestDelete("1")
	require.NoError(t, err)
	list.CancelDelete()
	assert.ErrorIs(t, list.ConfirmDelete(context.Background()), ErrNoPendingDelete)
	assert.Equal(t, 0, api.Calls("delete"))
}
