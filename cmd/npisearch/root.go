package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"npisearch/internal/config"
	"npisearch/internal/datasource"
	"npisearch/internal/eventbus"
	"npisearch/internal/geocode"
	"npisearch/internal/logging"
	"npisearch/internal/npi"
	"npisearch/internal/proxy"
	"npisearch/internal/ui"
	"npisearch/internal/ui/services/search"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "npisearch",
	Short: "Search the NPI provider registry from the terminal",
	Long: `npisearch - a terminal search page for the national provider registry.

Pick a state and a specialty from the typeahead dropdowns, optionally narrow
by city, ZIP or name, and press enter. Requests go through the local proxy
(see "npisearch proxy"), which must be running unless --with-proxy is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/npisearch/config.toml)")

	rootCmd.Flags().String("api-base", "", "Proxy base URL (overrides api.base_url)")
	rootCmd.Flags().Bool("map", false, "Geocode results and show them on a map")
	rootCmd.Flags().Bool("with-proxy", false, "Run the proxy in-process alongside the TUI")
}

// loadConfig reads --config when given, otherwise the default location
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.NewConfigServiceAt(configPath).LoadFromPath(configPath)
	}
	return config.NewConfigService().Load()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-base") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("api-base")
	}
	if cmd.Flags().Changed("map") {
		cfg.Map.Enabled, _ = cmd.Flags().GetBool("map")
	}
	withProxy, _ := cmd.Flags().GetBool("with-proxy")

	// Set up logging
	logFile := logging.Setup(cfg.Log)
	defer logFile.Close()
	log.Printf("npisearch %s starting, api %s, map %v", Version, cfg.API.BaseURL, cfg.Map.Enabled)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Forward events to the program once it exists. Events published while
	// the page is built wait in the forwarding buffer.
	var p *tea.Program
	ready := make(chan struct{})
	stopForwarding := ui.ForwardEvents(bus, func(msg tea.Msg) {
		select {
		case <-ready:
			p.Send(msg)
		case <-ctx.Done():
		}
	})
	defer stopForwarding()

	deps := ui.Deps{
		Bus:      bus,
		Searcher: npi.NewClient(cfg.API.BaseURL, npi.WithTimeout(cfg.API.Timeout())),
		Fetcher:  datasource.NewHTTPFetcher(datasource.WithTimeout(cfg.API.Timeout())),
	}
	if cfg.Map.Enabled {
		deps.Geocoder = newGeocoder(cfg.Geocode)
	}

	page, errs := ui.NewPage(cfg, deps)
	for _, err := range errs {
		log.Printf("page setup: %v", err)
	}

	zone.NewGlobal()
	defer zone.Close()

	model := ui.NewModel(ctx, page)
	p = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)
	close(ready)

	g, gctx := errgroup.WithContext(ctx)
	if withProxy {
		srv := proxy.NewServer(proxyConfig(cfg.Proxy, cfg.API),
			proxy.WithLogger(logging.NewRequestLogger(log.Writer(), false)))
		g.Go(func() error {
			if err := srv.ListenAndServe(gctx); err != nil {
				return fmt.Errorf("proxy: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("Error running program: %v", err)
		return err
	}
	log.Printf("UI exited normally")
	return nil
}

func newGeocoder(settings config.GeocodeSettings) search.Geocoder {
	if settings.APIKey == "" {
		log.Printf("map enabled without a geocoding key, set %s or geocode.api_key", config.GeocodeKeyEnv)
	}
	return geocode.NewClient(settings.BaseURL, settings.APIKey,
		geocode.WithRPS(settings.RPS),
		geocode.WithConcurrency(settings.Concurrency),
	)
}

func proxyConfig(ps config.ProxySettings, api config.APISettings) proxy.Config {
	return proxy.Config{
		Addr:      ps.Addr,
		Port:      ps.Port,
		Upstream:  ps.Upstream,
		StaticDir: ps.StaticDir,
		Timeout:   2 * api.Timeout(),
	}
}
