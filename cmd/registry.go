package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"assetctl/internal/ioreg"
	"assetctl/internal/logger"
)

// registryStrict makes a failed property snapshot a hard error instead of
// a skipped entry.
var registryStrict bool

// registryCmd dumps the property dictionary of every device-registry
// service matching a class name.
var registryCmd = &cobra.Command{
	Use:   "registry <class>",
	Short: "Dump properties of all services matching a registry class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class := args[0]

		var opts []ioreg.Option
		if registryStrict {
			opts = append(opts, ioreg.Strict())
		}

		services, err := ioreg.New(opts...).Enumerate(class)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			logger.Warn("[WARN] No services match class %s\n", class)
			return nil
		}

		for i, svc := range services {
			fmt.Printf("%s[%d]:\n", class, i)

			keys := make([]string, 0, len(svc.Properties))
			for k := range svc.Properties {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %s: %s\n", k, svc.Properties[k].Display())
			}
		}
		return nil
	},
}

func init() {
	registryCmd.Flags().BoolVar(&registryStrict, "strict", false, "Fail when an entry's properties cannot be read")
	rootCmd.AddCommand(registryCmd)
}
