package supervisor

import (
	"bufio"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/varon/sercheck/verify/client"
	"github.com/varon/sercheck/verify/codec"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
)

var Logger = logger.GetLogger("verify/supervisor")

// Config holds the parameters for spawning verification server processes.
type Config struct {
	// BinaryPath is the process image to launch (e.g. the sercheck binary)
	BinaryPath string

	// ExtraArgs are inserted between the binary and the positional
	// arguments, e.g. ["serve", "--codec", "json"]. The supervisor always
	// appends the serializer name and the port as the final two arguments.
	ExtraArgs []string

	// Host the child binds and the produced clients connect to.
	// Defaults to 127.0.0.1.
	Host string

	// TimeoutSecond is passed through to produced clients
	TimeoutSecond int
}

// Supervisor launches verification servers as child processes and produces
// clients against them. Running the tested serializer out of process
// isolates the caller from crashes or runaway memory use of a defective
// engine. At most one child is tracked at a time.
type Supervisor struct {
	config Config
	codec  codec.IProtocolCodec
	tested serializer.ITestedSerializer
	sink   logger.ILogger

	mu   sync.Mutex // guards proc
	proc *trackedProcess
}

// trackedProcess is the handle to a live child plus its output capture.
// It exists only while a server process is active and is owned exclusively
// by the supervisor.
type trackedProcess struct {
	cmd    *exec.Cmd
	port   int
	waitCh chan struct{} // closed once the child is reaped
}

// alive reports whether the child has not been reaped yet
func (p *trackedProcess) alive() bool {
	select {
	case <-p.waitCh:
		return false
	default:
		return true
	}
}

// New creates a supervisor. The codec and tested serializer are handed to
// every client it produces. A nil sink sends the child's output to the
// package logger.
func New(
	config Config,
	protoCodec codec.IProtocolCodec,
	tested serializer.ITestedSerializer,
	sink logger.ILogger,
) *Supervisor {
	if config.Host == "" {
		config.Host = "127.0.0.1"
	}
	if sink == nil {
		sink = Logger
	}
	return &Supervisor{
		config: config,
		codec:  protoCodec,
		tested: tested,
		sink:   sink,
	}
}

// Start launches a verification server process for the supervisor's tested
// serializer, bound to the given port. It fails if a previously started
// child is still alive; liveness is re-checked against the process, not a
// cached flag. The child's stdout and stderr are streamed line by line into
// the log sink.
func (s *Supervisor) Start(port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc != nil && s.proc.alive() {
		return fmt.Errorf("verification server process already running (pid %d)", s.proc.cmd.Process.Pid)
	}

	name := s.tested.Name()
	args := append(append([]string{}, s.config.ExtraArgs...), name, strconv.Itoa(port))
	cmd := exec.Command(s.config.BinaryPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %v", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open stderr pipe: %v", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %v", s.config.BinaryPath, err)
	}

	proc := &trackedProcess{
		cmd:    cmd,
		port:   port,
		waitCh: make(chan struct{}),
	}

	// Stream the child's output into the sink. Wait must only reap the
	// child after both pipes are drained.
	var wg sync.WaitGroup
	capture := func(r *bufio.Scanner, stream string) {
		defer wg.Done()
		for r.Scan() {
			s.sink.Infof("[%s:%d %s] %s", name, port, stream, r.Text())
		}
	}
	wg.Add(2)
	go capture(bufio.NewScanner(stdout), "out")
	go capture(bufio.NewScanner(stderr), "err")

	go func() {
		wg.Wait()
		if err := cmd.Wait(); err != nil {
			Logger.Warningf("verification server process (pid %d) exited: %v", cmd.Process.Pid, err)
		}
		close(proc.waitCh)
	}()

	Logger.Infof("launched verification server for %q on port %d (pid %d)", name, port, cmd.Process.Pid)

	s.proc = proc
	return nil
}

// GetClient returns a new verification client bound to the tracked child's
// port. It fails if no server process is active.
func (s *Supervisor) GetClient() (*client.VerificationClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil || !s.proc.alive() {
		return nil, fmt.Errorf("no verification server process is active")
	}

	config := common.ClientConfig{
		Endpoint:      net.JoinHostPort(s.config.Host, strconv.Itoa(s.proc.port)),
		TimeoutSecond: s.config.TimeoutSecond,
	}
	return client.NewVerificationClient(config, s.codec, s.tested), nil
}

// Stop force-terminates the tracked child if it is still running, waits for
// it to be reaped (which also releases the output capture) and clears the
// handle. It fails if nothing is tracked.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proc == nil {
		return fmt.Errorf("no verification server process is tracked")
	}

	if s.proc.alive() {
		if err := s.proc.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill verification server process (pid %d): %v", s.proc.cmd.Process.Pid, err)
		}
	}
	<-s.proc.waitCh

	Logger.Infof("verification server process (pid %d) stopped", s.proc.cmd.Process.Pid)

	s.proc = nil
	return nil
}
