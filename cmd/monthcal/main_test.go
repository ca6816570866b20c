package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/config"
)

func TestWaitHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := waitHealthy(context.Background(), ts.URL+"/health", time.Second, make(chan error))
	assert.NoError(t, err)
}

func TestWaitHealthy_ServerFailed(t *testing.T) {
	bindErr := errors.New("listen tcp 127.0.0.1:1: bind: permission denied")
	serveErr := make(chan error, 1)
	serveErr <- bindErr

	started := time.Now()
	err := waitHealthy(context.Background(), "http://127.0.0.1:1/health", 10*time.Second, serveErr)

	assert.ErrorIs(t, err, bindErr)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestWaitHealthy_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	err := waitHealthy(context.Background(), ts.URL+"/health", 300*time.Millisecond, make(chan error))
	assert.ErrorContains(t, err, "did not become healthy")
}

func TestRunOnce_PortInUse(t *testing.T) {
	// Something else answers on the port; the snapshot must not capture it.
	busy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer busy.Close()

	conf := config.DefaultConfig()
	conf.Listen = busy.Listener.Addr().(*net.TCPAddr).String()

	started := time.Now()
	err := run(context.Background(), conf, nil, true)

	require.Error(t, err)
	assert.ErrorContains(t, err, "listen on")
	assert.Less(t, time.Since(started), 5*time.Second)
}
