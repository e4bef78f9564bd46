package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/forgeline/equipment-cms/config"
	"github.com/forgeline/equipment-cms/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create categories, components, products and news from a YAML seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadEnv()
			appLogger := newLogger(cfg)
			defer appLogger.Sync()

			fh, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer fh.Close()
			data, err := seed.Parse(fh)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, appLogger)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := seed.NewImporter(seed.Services{
				Categories: a.categories,
				Components: a.components,
				Products:   a.products,
				News:       a.news,
				Media:      a.media,
			}, appLogger).Run(cmd.Context(), data)
			if err != nil {
				return err
			}

			for kind, n := range rep.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %d %s\n", n, kind)
			}
			for _, f := range rep.Failures {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s %q: %v\n", f.Kind, f.Name, f.Err)
			}
			if len(rep.Failures) > 0 {
				appLogger.Warn("Import finished with rejected records", zap.Int("rejected", len(rep.Failures)))
				return errors.New("some records were not imported")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
