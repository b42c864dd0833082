// Package cli implements the sitetrust command line interface. It talks
// to the rating API where one is reachable and falls back to bundled
// data when it is not, so a lookup always produces an answer.
package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitetrust/internal/adapters/sqlite"
	"sitetrust/internal/client"
	"sitetrust/internal/engagement"
	"sitetrust/internal/mbfc"
	"sitetrust/internal/resolver"
	"sitetrust/internal/trustcache"
)

// app carries the shared state commands need. The sqlite store backing
// engagement history is opened lazily so read-only commands that never
// touch it do not create the data directory.
type app struct {
	cfg    Config
	client *client.Client
	store  *sqlite.Store
}

func (a *app) remote() *client.Client {
	if a.client == nil {
		a.client = client.New(a.cfg.APIURL, a.cfg.timeout())
	}
	return a.client
}

func (a *app) localStore(ctx context.Context) (*sqlite.Store, error) {
	if a.store == nil {
		store, err := sqlite.Open(ctx, filepath.Join(a.cfg.DataDir, "sitetrust.db"))
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	return a.store, nil
}

func (a *app) engagements(ctx context.Context) (*engagement.Service, error) {
	store, err := a.localStore(ctx)
	if err != nil {
		return nil, err
	}
	return engagement.New(store, time.Now), nil
}

func (a *app) newResolver() *resolver.Resolver {
	source := mbfc.NewCachedSource(mbfc.NewStaticSource(time.Now), trustcache.DefaultTTL, time.Now)
	return resolver.New(a.remote(), source, zap.NewNop(), time.Now)
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// NewRootCmd builds the sitetrust command tree.
func NewRootCmd(version string) *cobra.Command {
	var configPath string
	a := &app{}

	root := &cobra.Command{
		Use:           "sitetrust",
		Short:         "Look up and rate the trustworthiness of websites",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.sitetrust/config.toml)")

	root.AddCommand(
		newLookupCmd(a),
		newVoteCmd(a),
		newTopCmd(a),
		newLowestCmd(a),
		newStatsCmd(a),
		newSummaryCmd(a),
	)
	return root
}
