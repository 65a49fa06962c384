package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"npisearch/internal/logging"
	"npisearch/internal/proxy"
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the same-origin proxy for the provider registry",
	Long: `Start an HTTP server that forwards /api/ requests to the provider registry
and serves static files from a directory for every other path.

Every response carries permissive CORS headers so browser clients on other
origins can use it. Flags override the [proxy] section of the config file.`,
	RunE: runProxy,
}

func init() {
	rootCmd.AddCommand(proxyCmd)

	proxyCmd.Flags().StringP("addr", "a", "", "Address to bind to (default proxy.addr)")
	proxyCmd.Flags().IntP("port", "p", 0, "Port to listen on (default proxy.port)")
	proxyCmd.Flags().String("upstream", "", "Registry origin (default proxy.upstream)")
	proxyCmd.Flags().String("static", "", "Directory served for non-API paths (default proxy.static_dir)")
	proxyCmd.Flags().Bool("debug", false, "Log at debug level")
}

func runProxy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Read flags
	if cmd.Flags().Changed("addr") {
		cfg.Proxy.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("port") {
		cfg.Proxy.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("upstream") {
		cfg.Proxy.Upstream, _ = cmd.Flags().GetString("upstream")
	}
	if cmd.Flags().Changed("static") {
		cfg.Proxy.StaticDir, _ = cmd.Flags().GetString("static")
	}
	debug, _ := cmd.Flags().GetBool("debug")

	logger := logging.NewRequestLogger(os.Stderr, debug)
	srv := proxy.NewServer(proxyConfig(cfg.Proxy, cfg.API), proxy.WithLogger(logger))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stderr, "npisearch proxy listening on http://%s\n", srv.Addr())
	fmt.Fprintf(os.Stderr, "  upstream:   %s\n", cfg.Proxy.Upstream)
	fmt.Fprintf(os.Stderr, "  static dir: %s\n", cfg.Proxy.StaticDir)

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	fmt.Fprintf(os.Stderr, "npisearch proxy stopped\n")
	return nil
}
