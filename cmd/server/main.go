package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/config"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/endpoints"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/rewrite"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	loadConfig := func() (config.Config, error) {
		if configPath == "" {
			return config.Load(), nil
		}
		return config.LoadFrom(configPath)
	}

	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the todo web app and its API endpoint configuration",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (overrides CONFIG_FILE)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  rootCmd.RunE,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "endpoints",
		Short: "Print the resolved API endpoint table as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := endpoints.Default()
			if configPath != "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				table = endpoints.FromConfig(cfg)
			}
			return printEndpoints(cmd.OutOrStdout(), table)
		},
	})

	var out, target string
	rewritesCmd := &cobra.Command{
		Use:   "rewrites",
		Short: "Write the hosting rewrite manifest for /api/v1",
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				target = cfg.ProxyTarget
			}
			return writeRewrites(cmd.OutOrStdout(), out, target)
		},
	}
	rewritesCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	rewritesCmd.Flags().StringVar(&target, "target", "", "backend origin (default API_PROXY_TARGET)")
	rootCmd.AddCommand(rewritesCmd)

	return rootCmd
}

func serve(cfg config.Config) error {
	router, err := server.NewRouter(cfg)
	if err != nil {
		return err
	}

	log.Printf("server starting on %s (env=%s, proxy=%s)", cfg.Addr, cfg.Env, cfg.ProxyTarget)
	if err := router.Run(cfg.Addr); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func printEndpoints(w io.Writer, table endpoints.Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode endpoints: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("indent endpoints: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func writeRewrites(stdout io.Writer, out, target string) error {
	manifest := rewrite.NewManifest(rewrite.APIRule(target))
	if out == "" {
		_, err := manifest.WriteTo(stdout)
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if _, err := manifest.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	return f.Close()
}
