// Package handoff transfers control to the main service process once
// the dependency wait has completed.
package handoff

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
)

// Exec replaces the current process image with the service process. On
// success it never returns: the service keeps the orchestrator's pid
// and receives signals directly from the container runtime. An error
// return means the target could not be located or executed, and no
// service process was started.
func Exec(spec launch.Spec) error {
	argv := spec.Argv()
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return errors.Wrapf(err, "locate %s", argv[0])
	}

	log.Info().Str("bin", path).Strs("argv", argv).Msg("handing off to service")

	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return errors.Wrapf(err, "exec %s", path)
	}
	return nil
}
