package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/ledgerkv/account-ledger/internal/config"
	"github.com/ledgerkv/account-ledger/internal/data"
	"github.com/ledgerkv/account-ledger/internal/domain/account"
	"github.com/ledgerkv/account-ledger/internal/infrastructure/database"
	"github.com/ledgerkv/account-ledger/internal/infrastructure/filekv"
	"github.com/ledgerkv/account-ledger/internal/infrastructure/rediskv"
	"github.com/ledgerkv/account-ledger/internal/kv"
	"github.com/ledgerkv/account-ledger/internal/worker"
	"github.com/ledgerkv/account-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", err, "backend", cfg.Store.Backend)
	}
	defer cleanup()

	service := account.NewService(store)

	if err := run(context.Background(), cfg, service, store, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, service *account.Service, store kv.Store, args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "open":
		if len(rest) < 2 || len(rest) > 3 {
			return fmt.Errorf("usage: ledger open <key> <owner> [initial-balance]")
		}
		req := data.OpenRequest{Key: rest[0], Owner: rest[1]}
		if len(rest) == 3 {
			req.InitialBalance = rest[2]
		}
		if err := req.Validate(); err != nil {
			return err
		}
		initial := decimal.Zero
		if req.InitialBalance != "" {
			var err error
			initial, err = decimal.NewFromString(req.InitialBalance)
			if err != nil {
				return fmt.Errorf("invalid initial balance %q: %w", req.InitialBalance, err)
			}
		}
		a, err := service.Open(ctx, req.Key, req.Owner, initial)
		if err != nil {
			return err
		}
		fmt.Printf("opened %s for %s, balance %s\n", req.Key, a.Owner(), a.Balance())
		return nil

	case "deposit", "withdraw":
		if len(rest) != 2 {
			return fmt.Errorf("usage: ledger %s <key> <amount>", cmd)
		}
		req := data.AmountRequest{Key: rest[0], Amount: rest[1]}
		if err := req.Validate(); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", req.Amount, err)
		}
		var balance decimal.Decimal
		if cmd == "deposit" {
			balance, err = service.Deposit(ctx, req.Key, amount)
		} else {
			balance, err = service.Withdraw(ctx, req.Key, amount)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s balance %s\n", req.Key, balance)
		return nil

	case "balance":
		if len(rest) != 1 {
			return fmt.Errorf("usage: ledger balance <key>")
		}
		req := data.KeyRequest{Key: rest[0]}
		if err := req.Validate(); err != nil {
			return err
		}
		balance, err := service.BalanceOf(ctx, req.Key)
		if err != nil {
			return err
		}
		fmt.Printf("%s balance %s\n", req.Key, balance)
		return nil

	case "close":
		if len(rest) != 1 {
			return fmt.Errorf("usage: ledger close <key>")
		}
		req := data.KeyRequest{Key: rest[0]}
		if err := req.Validate(); err != nil {
			return err
		}
		if err := service.Close(ctx, req.Key); err != nil {
			return err
		}
		fmt.Printf("closed %s\n", req.Key)
		return nil

	case "mirror":
		if len(rest) != 1 {
			return fmt.Errorf("usage: ledger mirror <snapshot-path>")
		}
		return runMirror(ctx, cfg, store, rest[0])

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// runMirror copies the configured store into a file snapshot on an
// interval until interrupted.
func runMirror(ctx context.Context, cfg *config.Config, store kv.Store, path string) error {
	src, ok := store.(worker.Source)
	if !ok {
		return fmt.Errorf("backend %q does not support mirroring", cfg.Store.Backend)
	}

	dst, err := filekv.Open(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := worker.NewWorker(src, dst, cfg.Mirror.Interval)
	go w.Start(ctx)

	logger.Info("Mirroring store", "backend", cfg.Store.Backend, "path", path, "interval", cfg.Mirror.Interval)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Stopping mirror...")
	w.Stop()
	return nil
}

func openStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		return kv.NewMemoryStore(), func() {}, nil
	case "file":
		store, err := filekv.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "redis":
		store, err := rediskv.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		pool, err := database.NewPostgresDB(cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return database.NewPostgresStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: ledger <command> [args]

Commands:
  open <key> <owner> [initial-balance]   create an account
  deposit <key> <amount>                 add funds
  withdraw <key> <amount>                remove funds
  balance <key>                          show current balance
  close <key>                            remove an account
  mirror <snapshot-path>                 mirror the store into a JSON snapshot

The backend is selected via ACCOUNT_LEDGER_STORE_BACKEND
(memory|file|redis|postgres) or a .env file.`)
}
