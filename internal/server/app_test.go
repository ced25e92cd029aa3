package server

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/zkpauth/internal/server/config"
	"github.com/dmitrijs2005/zkpauth/internal/server/store"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	return c
}

type closeTrackingStore struct {
	*store.MemoryStore
	closed   bool
	closeErr error
}

func (s *closeTrackingStore) Close() error {
	s.closed = true
	return s.closeErr
}

func stubStore(t *testing.T, st store.Store, err error) {
	t.Helper()
	orig := openStore
	openStore = func(context.Context, *config.Config) (store.Store, error) { return st, err }
	t.Cleanup(func() { openStore = orig })
}

func TestNewApp_MemoryStoreByDefault(t *testing.T) {
	var buf bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &buf)
	require.NoError(t, err)
	require.IsType(t, &store.MemoryStore{}, app.store)
	require.Equal(t, 16, app.authService.IdentifierLength())
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := testConfig()
	c.LogLevel = "chatty"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "logger init error")
}

func TestNewApp_StoreError(t *testing.T) {
	stubStore(t, nil, errors.New("connection refused"))

	c := testConfig()
	c.DatabaseDSN = "postgres://nowhere"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "store init error")
}

func TestRun_StopsOnCancelAndClosesStore(t *testing.T) {
	st := &closeTrackingStore{MemoryStore: store.NewMemoryStore()}
	stubStore(t, st, nil)

	var buf bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &buf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.True(t, st.closed)
	require.Contains(t, buf.String(), "App stopped")
}

func TestRun_ListenErrorIsReturned(t *testing.T) {
	st := &closeTrackingStore{MemoryStore: store.NewMemoryStore()}
	stubStore(t, st, nil)

	c := testConfig()
	c.EndpointAddrGRPC = "256.0.0.1:bad"

	var buf bytes.Buffer
	app, err := NewApp(context.Background(), c, &buf)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after listen failure")
	}
	require.True(t, st.closed)
	require.Contains(t, buf.String(), "server error")
	require.Contains(t, buf.String(), "App stopped")
}
