package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"assetctl/internal/config"
	"assetctl/internal/ioreg"
	"assetctl/internal/report"
	"assetctl/internal/sysctl"
)

// configPath holds the path to the configuration YAML file.
// It's passed via the `--config` or `-c` flag.
var configPath string

// reportCmd prints the full hardware asset report. Collection is
// best-effort: fields that cannot be read are omitted and the command
// still succeeds.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the hardware asset report",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load(configPath)

		var opts []ioreg.Option
		if cfg.Report.RegistryStrict {
			opts = append(opts, ioreg.Strict())
		}

		var describe report.Describer
		if cfg.Report.LookupHost != "" {
			timeout := time.Duration(cfg.Report.LookupTimeoutSeconds) * time.Second
			describe = report.NewLookupClient(cfg.Report.LookupHost, timeout, cfg.Report.CacheFile)
		}

		report.New(sysctl.New(), ioreg.New(opts...), describe, os.Stdout).Run()
	},
}

// init sets up CLI flags and registers the command.
func init() {
	reportCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.AddCommand(reportCmd)
}
