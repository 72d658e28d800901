package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetctl/internal/logger"
	"assetctl/internal/netsetup"
)

// networkCmd groups the thin networksetup wrappers.
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Enable, disable, and reorder network services",
}

// networkEnableCmd turns a network service on.
var networkEnableCmd = &cobra.Command{
	Use:   "enable <service>",
	Short: "Enable a network service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := netsetup.SetServiceEnabled(args[0], true); err != nil {
			return err
		}
		logger.Info("[INFO] Enabled network service %s\n", args[0])
		return nil
	},
}

// networkDisableCmd turns a network service off.
var networkDisableCmd = &cobra.Command{
	Use:   "disable <service>",
	Short: "Disable a network service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := netsetup.SetServiceEnabled(args[0], false); err != nil {
			return err
		}
		logger.Info("[INFO] Disabled network service %s\n", args[0])
		return nil
	},
}

// networkOrderCmd sets the service priority order. networksetup requires
// the complete service list, highest priority first.
var networkOrderCmd = &cobra.Command{
	Use:   "order <service>...",
	Short: "Set the network service priority order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := netsetup.OrderServices(args); err != nil {
			return err
		}
		logger.Info("[INFO] Reordered %d network services\n", len(args))
		return nil
	},
}

// networkListCmd prints all services in their current priority order.
var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List network services in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := netsetup.ListServices()
		if err != nil {
			return err
		}
		for _, s := range services {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkEnableCmd)
	networkCmd.AddCommand(networkDisableCmd)
	networkCmd.AddCommand(networkOrderCmd)
	networkCmd.AddCommand(networkListCmd)
	rootCmd.AddCommand(networkCmd)
}
