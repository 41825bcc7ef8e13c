package cli

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	// glog registers on the standard flag set; parse it empty so glog treats
	// flags as parsed and let cobra fill the values.
	_ = flag.CommandLine.Set("logtostderr", "true")
	_ = flag.CommandLine.Parse(nil)

	cmd := &cobra.Command{
		Use:          "sains-quiz",
		Short:        "SPM Science multiple-choice quiz with a shared leaderboard",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on (overrides server.port)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewPlayCmd(&configPath))
	cmd.AddCommand(NewLeaderboardCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
