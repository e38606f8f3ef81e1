package firestore

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/api/option"

	"github.com/tradejournal/tradejournal-server/internal/store"
	"github.com/tradejournal/tradejournal-server/internal/store/storetest"
)

const emulatorProject = "local-project"

// startEmulator runs the Firestore emulator and points the client library at it.
func startEmulator(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "gcr.io/google.com/cloudsdktool/google-cloud-cli:emulators",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"gcloud", "emulators", "firestore", "start", "--host-port=0.0.0.0:8080"},
		WaitingFor:   wait.ForLog("Dev App Server is now running"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	t.Setenv("FIRESTORE_EMULATOR_HOST", fmt.Sprintf("%s:%s", host, port.Port()))
}

func TestFirestoreStoreConformance(t *testing.T) {
	if os.Getenv("TRADEJOURNAL_FIRESTORE_IT") != "1" {
		t.Skip("set TRADEJOURNAL_FIRESTORE_IT=1 to run against the Firestore emulator")
	}
	startEmulator(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		client, err := Open(context.Background(), emulatorProject, "", option.WithoutAuthentication())
		require.NoError(t, err)
		s := New(client, "trades", zerolog.Nop())
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
