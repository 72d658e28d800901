package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetctl/internal/sysctl"
)

// readAs selects how the raw control buffer is interpreted.
var readAs string

// readCmd reads one sysctl control by dotted name and prints its value.
var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Read a single sysctl control value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := sysctl.New()
		name := args[0]

		switch readAs {
		case "string":
			s, err := r.String(name)
			if err != nil {
				return err
			}
			fmt.Println(s)
		case "uint64":
			v, err := r.Uint64(name)
			if err != nil {
				return err
			}
			fmt.Println(v)
		case "uint32":
			v, err := r.Uint32(name)
			if err != nil {
				return err
			}
			fmt.Println(v)
		case "int32":
			v, err := r.Int32(name)
			if err != nil {
				return err
			}
			fmt.Println(v)
		case "raw":
			path, err := r.Resolve(name)
			if err != nil {
				return err
			}
			buf, err := r.ReadRaw(path)
			if err != nil {
				return err
			}
			fmt.Printf("% x\n", buf)
		default:
			return fmt.Errorf("unknown --as type %q (want string, uint64, uint32, int32, or raw)", readAs)
		}
		return nil
	},
}

func init() {
	readCmd.Flags().StringVar(&readAs, "as", "string", "Interpret the value as: string, uint64, uint32, int32, raw")
	rootCmd.AddCommand(readCmd)
}
