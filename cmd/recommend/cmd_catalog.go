package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajharbinger/lunai-strategist/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate service catalogs",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the active catalog as YAML",
	Long: `Prints the catalog as YAML. Without --catalog this is the built-in
catalog, a starting point for a CATALOG_FILE.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := loadProvider()
		if err != nil {
			return err
		}
		c, err := provider.Catalog(cmd.Context())
		if err != nil {
			return err
		}
		data, err := catalog.Marshal(c)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check that catalog files parse and are complete",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			p, err := catalog.NewFileProvider(path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
				failed++
				continue
			}
			c, _ := p.Catalog(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d services)\n", path, len(c.Services))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogExportCmd, catalogValidateCmd)
}
