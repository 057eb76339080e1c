package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"bookstore-ledger/config"
	"bookstore-ledger/ledger"
	"bookstore-ledger/store"
)

// app carries what every command needs once the persistent pre-run has
// resolved configuration and loaded the ledger.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	store ledger.Store
	mgr   *ledger.Manager
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// openLedger loads the saved ledger from st. The store is closed when the
// load fails, since no manager will own it.
func openLedger(ctx context.Context, st ledger.Store, log *zap.Logger) (*ledger.Manager, error) {
	mgr := ledger.NewManager(st, log)
	if err := mgr.Load(ctx); err != nil {
		if cerr := st.Close(); cerr != nil {
			log.Warn("close store after failed load", zap.Error(cerr))
		}
		return nil, err
	}
	return mgr, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		configFile string
		storeKind  string
		storePath  string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "bookstore",
		Short: "Bookstore back-office ledger: employees, catalog, sales and reports",
		Long: `bookstore keeps the shop's employees, book catalog and sales in memory,
persisting them between runs to a JSON file or a SQLite database.

Run without arguments to start the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("store") {
				cfg.StoreKind = storeKind
			}
			if flags.Changed("path") {
				cfg.StorePath = storePath
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg

			if a.log, err = newLogger(cfg.Verbose); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			st, err := store.Open(cfg.StoreKind, cfg.StorePath)
			if err != nil {
				return err
			}
			if a.mgr, err = openLedger(cmd.Context(), st, a.log); err != nil {
				return err
			}
			a.store = st
			a.log.Debug("ledger loaded",
				zap.String("store", cfg.StoreKind),
				zap.String("path", cfg.StorePath),
				zap.Int("employees", a.mgr.Employees.Len()),
				zap.Int("books", a.mgr.Catalog.Len()),
				zap.Int("sales", a.mgr.Sales.Len()))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				_ = a.log.Sync()
			}
			if a.mgr != nil {
				return a.mgr.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			sh := newShell(cmd.InOrStdin(), cmd.OutOrStdout(), a.mgr, interactive)
			return sh.run(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "bookstore.yaml", "optional YAML config file")
	pf.StringVar(&storeKind, "store", store.KindJSON, "storage backend: json or sqlite")
	pf.StringVar(&storePath, "path", "bookstore.json", "storage file path")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newReportCmd(a), newInfoCmd(a))
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
