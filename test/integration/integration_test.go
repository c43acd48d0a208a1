package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

func runFeatures(t *testing.T, backend Backend) {
	t.Helper()

	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps := NewStepsContext(backend)
			steps.RegisterSteps(sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("Non-zero status returned, failed to run feature tests")
	}
}

func TestFeaturesSQLite(t *testing.T) {
	runFeatures(t, NewSQLiteBackend(t.TempDir()))
}

func TestFeaturesPostgres(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := NewPostgresBackend(ctx)
	if err != nil {
		t.Fatalf("Failed to create postgres backend: %v", err)
	}
	defer backend.Close(ctx)

	runFeatures(t, backend)
}
