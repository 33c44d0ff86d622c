package accounts_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/flowmerce/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for accounts service end-to-end
 * tests. This includes container setup, account operations, and assertions.
 */

const (
	testImageName = "flowmerce-accounts-test:latest"

	adminEmail    = "admin@flowmerce.test"
	adminPassword = "Admin123!"
	userPassword  = "Passw0rd!"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Accounts Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Accounts Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/accounts/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

func containerEnv(overrides map[string]string) map[string]string {
	env := map[string]string{
		"AUTH_ISSUER":         "https://accounts.flowmerce.test",
		"AUTH_ALGORITHM":      "HS256",
		"AUTH_SIGNING_SECRET": "e2e-signing-secret-0123456789abcdef",
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
		"SEED_ADMIN_EMAIL":    adminEmail,
		"SEED_ADMIN_PASSWORD": adminPassword,
		// Tests make many rapid requests from one address
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range overrides {
		env[k] = v
	}
	return env
}

// setupAccountsContainer starts the accounts service in a container and
// returns the base URL.
func setupAccountsContainer(t *testing.T, overrides map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          containerEnv(overrides),
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerAndLogin creates a buyer account and returns its session.
func registerAndLogin(t *testing.T, client *accountsdk.Client, email string) *accountsdk.Session {
	t.Helper()

	_, err := client.Register(t.Context(), accountsdk.RegisterRequest{
		Email:    email,
		Password: userPassword,
		FullName: "E2E " + strings.Split(email, "@")[0],
	})
	require.NoError(t, err)

	session, err := client.Login(t.Context(), email, userPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
	return session
}

// loginAdmin logs in as the seeded administrator.
func loginAdmin(t *testing.T, client *accountsdk.Client) *accountsdk.Session {
	t.Helper()
	session, err := client.Login(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	return session
}

func assertHealthy(t *testing.T, health *accountsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, accountsdk.IsStatus(err, status), "expected HTTP %d, got %v", status, err)
}
