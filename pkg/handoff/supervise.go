package handoff

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
	"github.com/yevhenii-memruk/user-management-service/pkg/state"
)

// shutdownGrace bounds how long a cancelled handoff waits for the child
// to honor SIGTERM before escalating to SIGKILL.
var shutdownGrace = 10 * time.Second

// Supervise runs the service as a direct child in its own process
// group, forwards terminal signals to it, and returns the child's
// exact exit code once it terminates. A signal death maps to 128+n,
// matching shell convention. This reproduces exec-style transparency
// where a true image replacement is not wanted.
//
// Cancelling ctx terminates the child with SIGTERM.
func Supervise(ctx context.Context, spec launch.Spec, exitInfoPath string) (int, error) {
	argv := spec.Argv()
	if _, err := exec.LookPath(argv[0]); err != nil {
		return -1, errors.Wrapf(err, "locate %s", argv[0])
	}

	child := exec.Command(argv[0], argv[1:]...) // #nosec G204 -- command comes from launch settings.
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	child.Env = os.Environ()
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	startedAt := time.Now()
	if err := child.Start(); err != nil {
		return -1, errors.Wrap(err, "start service")
	}
	pid := child.Process.Pid
	log.Info().Int("pid", pid).Strs("argv", argv).Msg("service started under supervision")

	sigCh := make(chan os.Signal, 8)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	var waitErr error

	g := new(errgroup.Group)
	g.Go(func() error {
		waitErr = child.Wait()
		close(done)
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case s := <-sigCh:
				forward(pid, s)
			case <-ctx.Done():
				forward(pid, syscall.SIGTERM)
				select {
				case <-done:
				case <-time.After(shutdownGrace):
					if state.ProcessAlive(pid) {
						log.Warn().Int("pid", pid).Msg("service ignored SIGTERM; killing")
						forward(pid, syscall.SIGKILL)
					}
					<-done
				}
				return nil
			case <-done:
				return nil
			}
		}
	})
	_ = g.Wait()

	exitedAt := time.Now()
	code := 0
	var sigName string

	if waitErr != nil {
		var ee *exec.ExitError
		if !stderrors.As(waitErr, &ee) {
			return -1, errors.Wrap(waitErr, "wait for service")
		}
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok {
			switch {
			case ws.Signaled():
				code = 128 + int(ws.Signal())
				sigName = ws.Signal().String()
			case ws.Exited():
				code = ws.ExitStatus()
			}
		} else {
			code = ee.ExitCode()
		}
	}

	if exitInfoPath != "" {
		info := state.ExitInfo{
			Bin:       argv[0],
			Argv:      argv,
			PID:       pid,
			StartedAt: startedAt,
			ExitedAt:  exitedAt,
			ExitCode:  &code,
			Signal:    sigName,
		}
		if waitErr != nil {
			info.Error = waitErr.Error()
		}
		if err := state.WriteExitInfo(exitInfoPath, info); err != nil {
			log.Warn().Err(err).Str("path", exitInfoPath).Msg("failed to write exit info")
		}
	}

	log.Info().Int("pid", pid).Int("exit_code", code).Str("signal", sigName).Msg("service exited")
	return code, nil
}

// forward delivers a signal to the child's whole process group so
// grandchildren see it too.
func forward(pid int, s os.Signal) {
	sig, ok := s.(syscall.Signal)
	if !ok {
		return
	}
	if pgid, err := syscall.Getpgid(pid); err == nil {
		_ = syscall.Kill(-pgid, sig)
		return
	}
	_ = syscall.Kill(pid, sig)
}
