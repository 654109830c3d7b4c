package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/parsepush/internal/logging"
	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/pushstatus"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchStatuses(ctx context.Context, cfg models.ServerConfiguration, secret string) ([]models.PushStatusEntry, error) {
	args := m.Called(ctx, cfg, secret)
	entries, _ := args.Get(0).([]models.PushStatusEntry)
	return entries, args.Error(1)
}

type staticSecrets map[string]string

func (s staticSecrets) SecretFor(_ context.Context, cfg models.ServerConfiguration) (string, bool) {
	v, ok := s[cfg.SecretKey()]
	return v, ok
}

func entry(id string) models.PushStatusEntry {
	return models.PushStatusEntry{ID: id, PayloadItems: []models.PayloadItem{}}
}

func fixedNow() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }

func TestStatusBoard_LoadSuccess(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "rest-key").
		Return([]models.PushStatusEntry{entry("a"), entry("b")}, nil).Once()

	b := NewStatusBoard(f, staticSecrets{c.SecretKey(): "rest-key"}, logging.Nop())
	b.now = fixedNow

	snap := b.Load(context.Background(), c)

	f.AssertExpectations(t)
	assert.False(t, snap.Loading)
	assert.Equal(t, c.ID, snap.ConfigurationID)
	assert.Len(t, snap.Entries, 2)
	assert.Empty(t, snap.ErrorMessage)
	assert.NoError(t, snap.Err)
	assert.Equal(t, fixedNow(), snap.LastUpdated)
	assert.Equal(t, snap, b.Snapshot())
}

func TestStatusBoard_MissingSecretFetchesWithout(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "").Return([]models.PushStatusEntry{}, nil).Once()

	NewStatusBoard(f, staticSecrets{}, logging.Nop()).Load(context.Background(), c)
	f.AssertExpectations(t)
}

func TestStatusBoard_FailureClearsEntries(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "").Return([]models.PushStatusEntry{entry("a")}, nil).Once()
	f.On("FetchStatuses", mock.Anything, c, "").Return(nil, &pushstatus.HTTPStatusError{StatusCode: 401}).Once()

	b := NewStatusBoard(f, staticSecrets{}, logging.Nop())
	b.now = fixedNow

	first := b.Load(context.Background(), c)
	require.Len(t, first.Entries, 1)

	snap := b.Load(context.Background(), c)
	assert.Empty(t, snap.Entries)
	assert.Equal(t, "The server returned HTTP status 401.", snap.ErrorMessage)
	var statusErr *pushstatus.HTTPStatusError
	assert.ErrorAs(t, snap.Err, &statusErr)
	assert.Equal(t, fixedNow(), snap.LastUpdated, "last success time is kept")
}

func TestStatusBoard_SwitchingServerClearsBoard(t *testing.T) {
	a, z := cfg("A"), cfg("Z")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, a, "").Return([]models.PushStatusEntry{entry("a")}, nil).Once()
	f.On("FetchStatuses", mock.Anything, z, "").Return(nil, pushstatus.ErrDecodeFailed).Once()

	b := NewStatusBoard(f, staticSecrets{}, logging.Nop())
	b.Load(context.Background(), a)
	snap := b.Load(context.Background(), z)

	assert.Equal(t, z.ID, snap.ConfigurationID)
	assert.Empty(t, snap.Entries)
	assert.True(t, snap.LastUpdated.IsZero())
	assert.Equal(t, "The response could not be decoded.", snap.ErrorMessage)
}

// blockingFetcher ignores cancellation so a superseded call can still
// deliver its (stale) result late.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan int
	release map[int]chan struct{}
	results map[int][]models.PushStatusEntry
	ctxs    map[int]context.Context
}

func (f *blockingFetcher) FetchStatuses(ctx context.Context, _ models.ServerConfiguration, _ string) ([]models.PushStatusEntry, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.ctxs[n] = ctx
	rel := f.release[n]
	res := f.results[n]
	f.mu.Unlock()

	f.started <- n
	<-rel
	return res, nil
}

func TestStatusBoard_StaleResultNeverOverwritesNewer(t *testing.T) {
	c := cfg("Prod")
	f := &blockingFetcher{
		started: make(chan int, 2),
		release: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})},
		results: map[int][]models.PushStatusEntry{
			1: {entry("stale")},
			2: {entry("fresh")},
		},
		ctxs: map[int]context.Context{},
	}
	b := NewStatusBoard(f, staticSecrets{}, logging.Nop())

	firstDone := make(chan StatusSnapshot, 1)
	go func() { firstDone <- b.Load(context.Background(), c) }()
	require.Equal(t, 1, <-f.started)
	assert.True(t, b.Snapshot().Loading)

	secondDone := make(chan StatusSnapshot, 1)
	go func() { secondDone <- b.Load(context.Background(), c) }()
	require.Equal(t, 2, <-f.started)

	f.mu.Lock()
	firstCtx := f.ctxs[1]
	f.mu.Unlock()
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled, "superseded load is cancelled")

	close(f.release[2])
	second := <-secondDone
	require.Len(t, second.Entries, 1)
	assert.Equal(t, "fresh", second.Entries[0].ID)

	close(f.release[1])
	<-firstDone

	final := b.Snapshot()
	require.Len(t, final.Entries, 1)
	assert.Equal(t, "fresh", final.Entries[0].ID)
	assert.False(t, final.Loading)
}

func TestStatusBoard_Reset(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "").Return([]models.PushStatusEntry{entry("a")}, nil).Once()

	b := NewStatusBoard(f, staticSecrets{}, logging.Nop())
	b.Load(context.Background(), c)
	b.Reset()

	assert.Equal(t, StatusSnapshot{}, b.Snapshot())
}

func TestStatusBoard_SnapshotIsACopy(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "").Return([]models.PushStatusEntry{entry("a")}, nil).Once()

	b := NewStatusBoard(f, staticSecrets{}, logging.Nop())
	snap := b.Load(context.Background(), c)
	snap.Entries[0].ID = "mutated"

	assert.Equal(t, "a", b.Snapshot().Entries[0].ID)
}

func TestStatusBoard_TransportErrorMessage(t *testing.T) {
	c := cfg("Prod")
	f := &mockFetcher{}
	f.On("FetchStatuses", mock.Anything, c, "").Return(nil, errors.New("dial tcp: connection refused")).Once()

	snap := NewStatusBoard(f, staticSecrets{}, logging.Nop()).Load(context.Background(), c)
	assert.Equal(t, "dial tcp: connection refused", snap.ErrorMessage)
}
