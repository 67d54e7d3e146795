//go:build integration

package integration

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blogapi/config"
	"blogapi/internal/app"
	"blogapi/internal/core"
	"blogapi/internal/fixtures"
	"blogapi/internal/posts"
)

// TestServerFixture holds the resources of one test case: the running
// application, the fixture generator, and the database handle used for
// direct cross-checks.
type TestServerFixture struct {
	// ServerURL is the base URL of the test server
	ServerURL string

	// App is the running application
	App *app.App

	// DB is the MongoDB database used for direct assertions
	DB *mongo.Database

	// Gen produces synthetic post inputs
	Gen *fixtures.Generator
}

// SetupTestServer boots the application on a free loopback port against the
// container database and waits for it to accept connections. Teardown is
// registered with t.Cleanup so it runs unconditionally, whether the test's
// verify steps pass or fail: the app is shut down and the database dropped,
// guaranteeing no cross-test leakage.
func SetupTestServer(t *testing.T) *TestServerFixture {
	t.Helper()

	port, err := findAvailablePort()
	require.NoError(t, err, "failed to find available port")

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: fmt.Sprintf("%d", port),
		},
		Storage: config.StorageConfig{
			URL:      GetMongoURL(),
			Database: testDatabaseName,
		},
	}

	ctx, cancel := context.WithCancel(GetTestContext())

	application, err := app.New(ctx, cfg)
	require.NoError(t, err, "failed to create app")

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	go func() {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		_ = application.Start(addr)
	}()

	err = waitForServer(serverURL + "/health")
	require.NoError(t, err, "server failed to become healthy")

	t.Cleanup(func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := application.Shutdown(shutdownCtx); err != nil {
			t.Errorf("failed to shutdown app: %v", err)
		}
		if err := GetMongoDatabase().Drop(shutdownCtx); err != nil {
			t.Errorf("failed to drop test database: %v", err)
		}
		cancel()
	})

	return &TestServerFixture{
		ServerURL: serverURL,
		App:       application,
		DB:        GetMongoDatabase(),
		Gen:       fixtures.NewGenerator(time.Now().UnixNano()),
	}
}

// Seed bulk-inserts n synthetic posts through the application's store and
// returns them with their assigned ids. A seed failure is an infrastructure
// failure, so it fails the test immediately.
func (f *TestServerFixture) Seed(t *testing.T, n int) []*core.Post {
	t.Helper()

	inserted, err := f.Gen.Seed(GetTestContext(), f.App.Store(), n)
	require.NoError(t, err, "failed to seed posts")
	require.Len(t, inserted, n, "seed did not insert the requested count")
	return inserted
}

// Store exposes the collaborator's persistence surface for tests that need
// to read through it (e.g. FindOne to pick an arbitrary seeded post).
func (f *TestServerFixture) Store() posts.Store {
	return f.App.Store()
}

// waitForServer waits for the server to become healthy.
func waitForServer(healthURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 50; i++ {
		resp, err := client.Get(healthURL)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy within timeout")
}

// findAvailablePort finds an available TCP port on loopback.
func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = listener.Close() }()
	return listener.Addr().(*net.TCPAddr).Port, nil
}
