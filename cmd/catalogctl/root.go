package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridiantrade/catalog-services/internal/app"
	"github.com/meridiantrade/catalog-services/internal/config"
)

// openStoresFunc lets tests run the commands on in-memory stores.
type openStoresFunc func(ctx context.Context, cfg *config.Config) *app.Stores

func newRootCmd(open openStoresFunc) *cobra.Command {
	if open == nil {
		open = app.OpenStores
	}
	var timeout time.Duration

	withStores := func(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, s *app.Stores) error) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		s := open(ctx, cfg)
		defer s.Close(context.Background())
		return fn(ctx, cfg, s)
	}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operator tools for the catalog service",
		Long:          "catalogctl seeds the FAQ collection, asks the chat helper a question and exports the static site routes, using the same MONGODB_URI configuration as the server.",
		SilenceUsage:  true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout for the command")

	root.AddCommand(&cobra.Command{
		Use:   "seed-faqs",
		Short: "Insert the default FAQs when the collection is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, func(ctx context.Context, _ *config.Config, s *app.Stores) error {
				n, err := s.FAQs.Seed(ctx)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "faq collection already populated")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d faqs\n", n)
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "ask <message>",
		Short: "Print the chat helper's reply to a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, func(ctx context.Context, cfg *config.Config, s *app.Stores) error {
				reply := app.NewResponder(cfg, s).Respond(ctx, strings.Join(args, " "))
				fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n%s\n", reply.Source, reply.Text)
				return nil
			})
		},
	})

	var asJSON bool
	paths := &cobra.Command{
		Use:   "export-paths",
		Short: "List the routes a static export must render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStores(cmd, func(ctx context.Context, _ *config.Config, s *app.Stores) error {
				list, err := s.Catalog.StaticPaths(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}
				for _, p := range list {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			})
		},
	}
	paths.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	root.AddCommand(paths)

	return root
}
