package cmds

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yevhenii-memruk/user-management-service/pkg/config"
)

type rootOptions struct {
	ConfigPath string
	Supervise  bool
}

func AddRootFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (defaults to .entrypoint.yaml in the working directory)")
	pf.Bool("supervise", false, "Run the service as a supervised child instead of replacing the process")
	pf.String("host", "", "Bind address passed to the service")
	pf.Int("port", 0, "Bind port passed to the service")
	pf.Bool("reload", false, "Enable live reload in the service")
	pf.String("app-bin", "", "Service executable")
	pf.String("wait-mode", "", "Dependency wait mode: delay or probe")
	pf.Duration("wait-delay", 0, "Fixed grace period before launch (delay mode)")
	pf.Duration("probe-interval", 0, "Cadence between connectivity probes (probe mode)")
	pf.Duration("wait-timeout", 0, "Maximum total time to wait for the dependency")
	pf.String("exit-info", "", "Write a JSON exit record to this path when supervising")
}

// resolveSettings captures configuration once: defaults, optional file,
// environment, then explicit flags.
func resolveSettings(cmd *cobra.Command) (*config.Settings, rootOptions, error) {
	pf := cmd.Root().PersistentFlags()

	cfgPath, err := pf.GetString("config")
	if err != nil {
		return nil, rootOptions{}, err
	}
	if cfgPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, rootOptions{}, err
		}
		cfgPath = config.DefaultPath(cwd)
	}

	set, err := config.Load(cfgPath)
	if err != nil {
		return nil, rootOptions{}, err
	}
	if err := applyFlagOverrides(set, pf); err != nil {
		return nil, rootOptions{}, err
	}

	supervise, err := pf.GetBool("supervise")
	if err != nil {
		return nil, rootOptions{}, err
	}

	return set, rootOptions{ConfigPath: cfgPath, Supervise: supervise}, nil
}

func applyFlagOverrides(set *config.Settings, pf *pflag.FlagSet) error {
	var err error
	if pf.Changed("host") {
		if set.Host, err = pf.GetString("host"); err != nil {
			return err
		}
	}
	if pf.Changed("port") {
		if set.Port, err = pf.GetInt("port"); err != nil {
			return err
		}
	}
	if pf.Changed("reload") {
		if set.Reload, err = pf.GetBool("reload"); err != nil {
			return err
		}
	}
	if pf.Changed("app-bin") {
		if set.AppBin, err = pf.GetString("app-bin"); err != nil {
			return err
		}
	}
	if pf.Changed("wait-mode") {
		if set.WaitMode, err = pf.GetString("wait-mode"); err != nil {
			return err
		}
	}
	if pf.Changed("wait-delay") {
		d, err := pf.GetDuration("wait-delay")
		if err != nil {
			return err
		}
		set.WaitDelay = d.String()
	}
	if pf.Changed("probe-interval") {
		d, err := pf.GetDuration("probe-interval")
		if err != nil {
			return err
		}
		set.WaitProbeInterval = d.String()
	}
	if pf.Changed("wait-timeout") {
		d, err := pf.GetDuration("wait-timeout")
		if err != nil {
			return err
		}
		set.WaitTimeout = d.String()
	}
	if pf.Changed("exit-info") {
		if set.ExitInfoPath, err = pf.GetString("exit-info"); err != nil {
			return err
		}
	}
	return nil
}
