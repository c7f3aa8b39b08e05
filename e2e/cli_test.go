package e2e_test

import (
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/buitransport/internal/gateway/gatewaytest"
	"github.com/mcoot/buitransport/internal/model"
)

// cliRunner runs the built btc binary against one API and credential file
type cliRunner struct {
	binaryPath     string
	apiURL         string
	credentialFile string
}

func newCLIRunner(t *testing.T, apiURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "btc")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/btc")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:     binaryPath,
		apiURL:         apiURL,
		credentialFile: filepath.Join(t.TempDir(), "credential.json"),
	}
}

func (r *cliRunner) run(args ...string) (string, int) {
	fullArgs := append([]string{
		"--api", r.apiURL,
		"--credential-file", r.credentialFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), exitErr.ExitCode()
	}
	return string(output), 0
}

func TestCLIBookingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the CLI binary")
	}

	upstream := gatewaytest.New(t)
	upstream.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	option := upstream.AddTransportOption(model.TransportOption{
		RouteName: "Campus Shuttle", Price: "200.00", TotalSeats: 10, AvailableSeats: 10,
	})
	cli := newCLIRunner(t, upstream.BaseURL())

	out, code := cli.run("whoami")
	assert.Equal(t, 2, code, out)
	assert.Contains(t, out, "not logged in")

	out, code = cli.run("login", "--email", "ada@bui.edu.ng", "--password", password)
	require.Equal(t, 0, code, out)

	var session struct {
		User      model.Identity `json:"user"`
		Dashboard string         `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, "ada@bui.edu.ng", session.User.Email)
	assert.Equal(t, "student", session.Dashboard)

	out, code = cli.run("bookings", "create", string(option.ID), "--seats", "2")
	require.Equal(t, 0, code, out)

	var booking model.Booking
	require.NoError(t, json.Unmarshal([]byte(out), &booking))
	assert.Equal(t, model.Amount("408.00"), booking.TotalAmount)

	out, code = cli.run("bookings", "list")
	require.Equal(t, 0, code, out)
	assert.True(t, strings.Contains(out, string(booking.ID)))

	upstream.RevokeAll()
	out, code = cli.run("bookings", "list")
	assert.Equal(t, 2, code, out)
}

func TestCLIRejectedLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the CLI binary")
	}

	upstream := gatewaytest.New(t)
	upstream.AddUser("ada@bui.edu.ng", password, model.RoleStudent)
	cli := newCLIRunner(t, upstream.BaseURL())

	out, code := cli.run("login", "--email", "ada@bui.edu.ng", "--password", "nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "Invalid credentials")
}
