package main

import (
	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/spf13/cobra"

	"github.com/yevhenii-memruk/user-management-service/cmd/entrypoint/cmds"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "entrypoint",
	Short:   "entrypoint gates service startup on broker readiness, then hands off to the service",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitLoggerFromCobra(cmd)
	},
}

func main() {
	cobra.CheckErr(logging.AddLoggingLayerToRootCommand(rootCmd, "entrypoint"))
	cmds.AddRootFlags(rootCmd)
	cobra.CheckErr(cmds.AddCommands(rootCmd))
	cobra.CheckErr(rootCmd.Execute())
}
