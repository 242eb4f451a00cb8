package cmds

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yevhenii-memruk/user-management-service/pkg/handoff"
	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
	"github.com/yevhenii-memruk/user-management-service/pkg/readiness"
)

func AddCommands(root *cobra.Command) error {
	// Bare invocation is the container entry point: wait, then hand off.
	root.RunE = runOrchestrator
	root.AddCommand(newRunCmd())
	root.AddCommand(newWaitCmd())
	root.AddCommand(newConfigCmd())
	return nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Wait for the dependency, then hand off to the service process",
		RunE:  runOrchestrator,
	}
}

func runOrchestrator(cmd *cobra.Command, args []string) error {
	set, opts, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	spec := set.LaunchSpec()
	if err := spec.Validate(); err != nil {
		return err
	}
	policy, err := set.WaitPolicy()
	if err != nil {
		return err
	}
	dep := set.Dependency()
	if policy.Mode == launch.ModeProbe {
		if err := dep.Validate(); err != nil {
			return err
		}
	}

	// A terminal signal during the wait phase aborts without handoff.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	log.Info().
		Str("dependency", dep.Name).
		Str("mode", string(policy.Mode)).
		Str("address", dep.Address()).
		Msg("waiting for dependency before launch")
	err = readiness.NewWaiter(dep, policy).Wait(ctx)
	stop()
	if err != nil {
		return errors.Wrap(err, "dependency wait")
	}

	if opts.Supervise {
		code, err := handoff.Supervise(cmd.Context(), spec, set.ExitInfoPath)
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	}
	return handoff.Exec(spec)
}
