package dbtest

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jtest "github.com/testcontainers/testcontainers-go/modules/neo4j"
)

// Neo4jImage is the image of the Neo4j container. Node key constraints and
// multiple databases require the enterprise edition.
const Neo4jImage = "docker.io/neo4j:5-enterprise"

// neo4jHTTP is the port of Neo4j Browser, for inspecting the database of a
// failed test.
const neo4jHTTP = nat.Port("7474/tcp")

// SetupNeo4j runs a new Neo4j container and returns a driver connected to it.
// The container is terminated, and the driver closed, when the test completes.
//
// SetupNeo4j skips the test in short mode and marks it as parallel.
func SetupNeo4j(t *testing.T) neo4j.DriverWithContext {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode...")
	}
	t.Parallel()

	ctx := context.Background()
	container, err := neo4jtest.Run(ctx, Neo4jImage, containerOptions(t,
		neo4jtest.WithoutAuthentication(),
		neo4jtest.WithAcceptCommercialLicenseAgreement(),
	)...)
	if err != nil {
		t.Fatal("Failed to run neo4j container:", err)
	}
	t.Cleanup(func() {
		t.Logf("Terminating neo4j container %q...", container.GetContainerID())
		if err := container.Terminate(ctx); err != nil {
			t.Error("Failed to terminate neo4j container:", err)
		}
	})

	boltURL, err := container.BoltUrl(ctx)
	if err != nil {
		t.Fatal("Failed to get bolt url:", err)
	}
	browserURL, err := container.PortEndpoint(ctx, neo4jHTTP, "http")
	if err != nil {
		t.Fatal("Failed to get http endpoint:", err)
	}

	driver, err := neo4j.NewDriverWithContext(boltURL, neo4j.NoAuth())
	if err != nil {
		t.Fatal("Failed to open neo4j driver:", err)
	}
	t.Cleanup(func() {
		if err := driver.Close(ctx); err != nil {
			t.Error("Failed to close neo4j driver:", err)
		}
	})
	if err := verifyConnectivity(ctx, t, driver); err != nil {
		t.Fatalf("Failed to connect to neo4j: %v", err)
	}

	// Registered last, so that it runs before the container is terminated.
	t.Cleanup(func() {
		if !t.Failed() || !*Inspect {
			return
		}
		t.Logf("Container %v is still running for inspection (Ctrl+C to terminate)...", container.GetContainerID())
		t.Logf("Browser = %s/browser?preselectAuthMethod=%s&dbms=%s", browserURL, url.QueryEscape("[NO_AUTH]"), url.QueryEscape(boltURL))
		t.Logf("Bolt URL = %s", boltURL)
		waitForInspection()
	})
	return driver
}

// verifyConnectivity checks the connection to Neo4j a few times, because the
// container may be reported as started before Neo4j accepts connections.
func verifyConnectivity(ctx context.Context, t *testing.T, driver neo4j.DriverWithContext) error {
	t.Helper()
	const (
		attempts = 6
		pause    = 100 * time.Millisecond
	)

	err := driver.VerifyConnectivity(ctx)
	for i := 1; err != nil && i < attempts; i++ {
		t.Logf("Retrying [%d/%d] to connect to neo4j: %v", i, attempts-1, err)
		select {
		case <-time.After(pause):
		case <-ctx.Done():
			return fmt.Errorf("retry pause interrupted: %w", ctx.Err())
		}
		err = driver.VerifyConnectivity(ctx)
	}
	return err
}
