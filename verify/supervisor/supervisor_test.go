package supervisor_test

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/varon/sercheck/verify/client"
	"github.com/varon/sercheck/verify/codec"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/server"
	"github.com/varon/sercheck/verify/supervisor"
)

const helperEnv = "SERCHECK_HELPER_SERVE"

// TestHelperServe is not a test. It is the process image the supervisor
// tests spawn: the test binary re-executed with this test selected runs a
// real verification server until it is killed.
func TestHelperServe(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	// positional arguments after "--": <testedSerializer> <port>
	sep := -1
	for i, arg := range os.Args {
		if arg == "--" {
			sep = i
			break
		}
	}
	if sep < 0 || len(os.Args)-sep != 3 {
		fmt.Fprintln(os.Stderr, "helper: expected -- <serializer> <port>")
		os.Exit(2)
	}

	tested, err := serializer.Get(os.Args[sep+1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "helper:", err)
		os.Exit(2)
	}

	s := server.NewVerificationServer(
		common.ServerConfig{Endpoint: "127.0.0.1:" + os.Args[sep+2], TimeoutSecond: 5},
		codec.NewJSONCodec(),
		tested,
	)
	if err := s.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "helper:", err)
		os.Exit(2)
	}

	// serve until the supervisor kills the process
	select {}
}

// newSupervisor creates a supervisor that spawns this test binary as the
// server process image
func newSupervisor(t *testing.T, tested serializer.ITestedSerializer) *supervisor.Supervisor {
	t.Helper()
	t.Setenv(helperEnv, "1")

	return supervisor.New(supervisor.Config{
		BinaryPath:    os.Args[0],
		ExtraArgs:     []string{"-test.run=TestHelperServe", "--"},
		TimeoutSecond: 5,
	}, codec.NewJSONCodec(), tested, nil)
}

// waitReady polls the spawned server until it serves a round trip
func waitReady(t *testing.T, c *client.VerificationClient) {
	t.Helper()

	var lastErr error
	for i := 0; i < 100; i++ {
		_, err := c.Test(0)
		var remoteErr *client.RemoteError
		if err == nil || errors.As(err, &remoteErr) {
			return
		}
		lastErr = err
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("Server process did not become ready: %v", lastErr)
}

func TestSupervisorLifecycle(t *testing.T) {
	sup := newSupervisor(t, serializer.NewJSONSerializer())

	// nothing tracked yet
	if _, err := sup.GetClient(); err == nil {
		t.Fatal("Expected error from GetClient before Start, got nil")
	}
	if err := sup.Stop(); err == nil {
		t.Fatal("Expected error from Stop before Start, got nil")
	}

	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if err := sup.Start(port); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// second start while the child is alive is a caller bug
	if err := sup.Start(port); err == nil {
		t.Fatal("Expected error from second Start, got nil")
	}

	c, err := sup.GetClient()
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	waitReady(t, c)

	got, err := client.TestAs(c, 42)
	if err != nil {
		t.Fatalf("Round trip through spawned server failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Round trip = %v, want 42", got)
	}

	if err := sup.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// the handle is cleared, nothing is tracked anymore
	if err := sup.Stop(); err == nil {
		t.Fatal("Expected error from Stop after Stop, got nil")
	}
	if _, err := sup.GetClient(); err == nil {
		t.Fatal("Expected error from GetClient after Stop, got nil")
	}
}

func TestSupervisorRestart(t *testing.T) {
	sup := newSupervisor(t, serializer.NewJSONSerializer())

	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if err := sup.Start(port); err != nil {
		t.Fatalf("First Start failed: %v", err)
	}

	c, err := sup.GetClient()
	if err != nil {
		t.Fatal(err)
	}
	waitReady(t, c)

	if err := sup.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// a stopped supervisor accepts a fresh Start
	port, err = freeport.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if err := sup.Start(port); err != nil {
		t.Fatalf("Start after Stop failed: %v", err)
	}

	c, err = sup.GetClient()
	if err != nil {
		t.Fatal(err)
	}
	waitReady(t, c)

	if err := sup.Stop(); err != nil {
		t.Fatalf("Final Stop failed: %v", err)
	}
}

// TestSupervisorRemoteErrorThroughProcess checks that an engine failure in
// the child process surfaces as a RemoteError in the parent
func TestSupervisorRemoteErrorThroughProcess(t *testing.T) {
	sup := newSupervisor(t, serializer.NewFailingSerializer())

	port, err := freeport.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if err := sup.Start(port); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = sup.Stop() }()

	c, err := sup.GetClient()
	if err != nil {
		t.Fatal(err)
	}
	waitReady(t, c)

	_, err = c.Test(42)
	var remoteErr *client.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("Expected *RemoteError from child process, got %T: %v", err, err)
	}
}
