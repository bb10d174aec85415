package warden_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/warden/pkg/wardensdk"
)

/*
 * Container setup and shared assertions for the warden end-to-end suite.
 * The image is built once in TestMain and every test gets a fresh container.
 */

const (
	testImageName = "warden-test:latest"

	adminUsername = "admin"
	adminEmail    = "admin@warden.test"
	adminPassword = "Admin123!"
)

func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building warden Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up warden Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/warden/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// baseEnv seeds an admin and keeps mail in the container log.
func baseEnv() map[string]string {
	return map[string]string{
		"WARDEN_ISSUER":         "warden-e2e",
		"WARDEN_NUM_KEYS":       "1",
		"WARDEN_ADMIN_USERNAME": adminUsername,
		"WARDEN_ADMIN_EMAIL":    adminEmail,
		"WARDEN_ADMIN_PASSWORD": adminPassword,
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",
	}
}

// relaxedLimits lifts the per-IP limits so a test can make many quick calls.
func relaxedLimits(env map[string]string) map[string]string {
	for _, tier := range []string{"STRICT", "MODERATE", "LENIENT"} {
		env["RATELIMIT_"+tier+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+tier+"_WINDOW_SEC"] = "60"
		env["RATELIMIT_"+tier+"_BURST"] = "1000"
	}
	return env
}

// setupWarden starts a container with relaxed limits and returns an SDK client.
func setupWarden(t *testing.T) *wardensdk.Client {
	t.Helper()
	return startContainer(t, relaxedLimits(baseEnv()))
}

// setupWardenWithDefaultRateLimits keeps the production limits.
func setupWardenWithDefaultRateLimits(t *testing.T) *wardensdk.Client {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) *wardensdk.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return wardensdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

func loginAdmin(t *testing.T, client *wardensdk.Client) *wardensdk.Session {
	t.Helper()
	session, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err, "admin login should succeed")
	return session
}

// createUser makes an activated account through the admin API.
func createUser(t *testing.T, admin *wardensdk.Session, username, password string) *wardensdk.User {
	t.Helper()
	u, err := admin.CreateUser(t.Context(), wardensdk.CreateUserRequest{
		Username: username,
		Email:    username + "@warden.test",
		Password: password,
	})
	require.NoError(t, err)
	return u
}

// requireAPIError asserts err is an APIError with status and code.
func requireAPIError(t *testing.T, err error, status int, code string) *wardensdk.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr *wardensdk.APIError
	require.True(t, errors.As(err, &apiErr), "want APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code())
	return apiErr
}
