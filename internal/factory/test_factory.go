package factory

import (
	"testing"
	"time"

	"github.com/mcoot/buitransport/internal/dependencies/mocks"
	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/storage/memory"
	"github.com/mcoot/buitransport/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
	// API is the fake REST API the gateway talks to
	API *gatewaytest.Server
}

// NewTestApp creates an App wired to an in-process fake API, in-memory storage
// and a mocked clock
func NewTestApp(t testing.TB) *TestApp {
	t.Helper()

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	api := gatewaytest.New(t)

	app := newWithDependencies(store, mockClock, api.Client(), testutil.Logger(t))

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
		API:       api,
	}
}
