package cmds

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
	"github.com/yevhenii-memruk/user-management-service/pkg/readiness"
)

func newWaitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "Run only the dependency wait phase (exit 0 when ready)",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := resolveSettings(cmd)
			if err != nil {
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log.Info().
				Str("dependency", dep.Name).
				Str("mode", string(policy.Mode)).
				Msg("waiting for dependency")
			if err := readiness.NewWaiter(dep, policy).Wait(ctx); err != nil {
				return errors.Wrap(err, "dependency wait")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ready")
			return nil
		},
	}
}
