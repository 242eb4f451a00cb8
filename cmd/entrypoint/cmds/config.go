package cmds

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yevhenii-memruk/user-management-service/pkg/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings and the sanitized service environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, opts, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			out := map[string]any{
				"config_file": opts.ConfigPath,
				"settings":    set,
				"environment": config.ServiceEnv(),
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return errors.Wrap(err, "marshal config")
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
