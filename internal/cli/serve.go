package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marinetools/loadicator/internal/server"
	"github.com/marinetools/loadicator/pkg/cache"
	"github.com/marinetools/loadicator/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		data    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the stability calculator over HTTP. The server loads the configured
workbook at startup; a new workbook can be uploaded at runtime via POST
/upload. With --redis the artifact cache is shared across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if data == "" {
				data = c.Config.Data
			}
			if redis == "" {
				redis = c.Config.Cache.Redis
			}

			backend, err := c.serveCache(cmd.Context(), noCache, redis)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(backend, c.Logger)
			defer runner.Close()

			srv, err := server.New(server.Config{
				Addr:     addr,
				Workbook: data,
				KG: server.KGOverride{
					BaseFactor:     c.Config.KG.BaseFactor,
					LoadAdjustment: c.Config.KG.LoadAdjustment,
				},
			}, runner, c.Logger)
			if err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVarP(&data, "data", "d", "", "ship data workbook loaded at startup")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for a shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// serveCache picks the artifact cache backend for the server.
func (c *CLI) serveCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		return rc, nil
	}
	return c.newCache(false), nil
}
