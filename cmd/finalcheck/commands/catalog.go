package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Treedy2020/FinalCheck/internal/config"
	"github.com/Treedy2020/FinalCheck/internal/registry"
)

// newRegistry builds the standard registry without the rest of the pipeline,
// so catalog commands work without model credentials.
func newRegistry() (*registry.Registry, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Registry.ExtraStandardsPath != "" {
		return registry.NewWithExtras(cfg.Registry.ExtraStandardsPath)
	}
	return registry.New(), nil
}

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "List the registered compliance standards",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		for _, std := range reg.Standards() {
			fmt.Printf("%s\n  %s\n", std.ID, std.Title)
			if len(std.Requirements) > 0 {
				fmt.Printf("  requirements: %d\n", len(std.Requirements))
			}
		}
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the registered product types and their required standards",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		for _, p := range reg.Products() {
			required := "none"
			if len(p.Standards) > 0 {
				required = strings.Join(p.Standards, ", ")
			}
			fmt.Printf("%-15s %s\n  standards: %s\n", p.ID, p.Name, required)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(standardsCmd)
	rootCmd.AddCommand(productsCmd)
}
