// Command sliceinspect parses a hex-encoded Bitcoin transaction or block and prints its fields,
// in the shape of tokenized-pkg/bitcoin/cmd/convert and tokenized-pkg/merchant_api/cmd.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tokenized/config"

	"github.com/chainkit/slices/cache"
	"github.com/chainkit/slices/logger"
	"github.com/chainkit/slices/scheduler"
	"github.com/chainkit/slices/slices"
	"github.com/chainkit/slices/threads"
)

// Config configures the CLI's optional cache and logging behavior, loaded the way
// tokenized-pkg/txbuilder/cmd and merchant_api/cmd load theirs: envconfig tags over a struct,
// masked back out through the logger for diagnostics.
type Config struct {
	CacheCapacity int    `envconfig:"CACHE_CAPACITY" json:"cache_capacity" default:"1000"`
	RedisURL      string `envconfig:"REDIS_URL" json:"redis_url" masked:"true"`
	LogText       bool   `envconfig:"LOG_TEXT" json:"log_text" default:"false"`
	Development   bool   `envconfig:"DEVELOPMENT" json:"development" default:"true"`
}

const usage = `Usage:
  sliceinspect tx <hex>       Parse a transaction and print its fields
  sliceinspect block <hex>    Parse a block and sum its output values
  sliceinspect watch <dir>    Check <dir> exists, then log cache stats until interrupted`

func main() {
	cfg := &Config{}
	if err := config.LoadConfig(context.Background(), cfg); err != nil {
		fmt.Printf("Failed to load config : %s\n", err)
		os.Exit(1)
	}

	ctx := logger.ContextWithLogger(context.Background(), cfg.Development, cfg.LogText, "")
	ctx = logger.ContextWithLogFields(ctx, logger.String("run_id", uuid.New().String()))

	masked := *cfg
	if masked.RedisURL != "" {
		masked.RedisURL = "***"
	}
	logger.Info(ctx, "Config : %+v", masked)

	if len(os.Args) < 3 {
		fmt.Println(usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "tx":
		err = inspectTx(ctx, cfg, os.Args[2])
	case "block":
		err = inspectBlock(ctx, os.Args[2])
	case "watch":
		err = watch(ctx, cfg, os.Args[2])
	default:
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		logger.Error(ctx, "Failed : %s", err)
		os.Exit(1)
	}
}

func decodeArg(arg string) ([]byte, error) {
	b, err := hex.DecodeString(arg)
	if err != nil {
		return nil, errors.Wrap(err, "hex decode")
	}
	return b, nil
}

func inspectTx(ctx context.Context, cfg *Config, arg string) error {
	b, err := decodeArg(arg)
	if err != nil {
		return err
	}

	txCache := cache.NewTxCache(cfg.CacheCapacity)

	tx, rest, err := slices.ParseTransaction(b, nil)
	if err != nil {
		return errors.Wrap(err, "parse tx")
	}
	if len(rest) != 0 {
		logger.Warn(ctx, "%d trailing bytes after transaction", len(rest))
	}

	owned, err := slices.NewOwnedTransaction(tx)
	if err != nil {
		return errors.Wrap(err, "promote to owned")
	}
	txCache.Put(owned)

	fmt.Printf("Version: %d\n", tx.Version())
	fmt.Printf("SegWit: %v\n", tx.IsSegWit())
	fmt.Printf("Inputs: %d\n", len(tx.Inputs()))
	fmt.Printf("Outputs: %d\n", len(tx.Outputs()))
	fmt.Printf("LockTime: %d\n", tx.LockTime())
	fmt.Printf("TxID: %s\n", tx.TxID())
	fmt.Printf("WTxID: %s\n", tx.WTxID())

	var total uint64
	for i, out := range tx.Outputs() {
		fmt.Printf("  out[%d]: %d satoshis, %d byte script\n", i, out.Value(), len(out.Script()))
		total += out.Value()
	}
	fmt.Printf("Total output value: %d\n", total)

	if _, ok := txCache.Get(tx.TxID()); ok {
		logger.Debug(ctx, "tx cache stats: %+v", txCache.Stats())
	}

	return nil
}

func inspectBlock(ctx context.Context, arg string) error {
	b, err := decodeArg(arg)
	if err != nil {
		return err
	}

	var totalValue uint64
	var txCount int

	v := &slices.Visitor{
		OnBlockHeader: func(h *slices.BlockHeader) slices.ControlFlow {
			fmt.Printf("Block hash: %s\n", h.Hash())
			return slices.Continue
		},
		OnTransaction: func(index int, tx *slices.Transaction) slices.ControlFlow {
			txCount++
			return slices.Continue
		},
		OnTxOut: func(index int, out *slices.TxOut) slices.ControlFlow {
			totalValue += out.Value()
			return slices.Continue
		},
	}

	blk, rest, err := slices.ParseBlock(b, v)
	if err != nil {
		return errors.Wrap(err, "parse block")
	}
	if len(rest) != 0 {
		logger.Warn(ctx, "%d trailing bytes after block", len(rest))
	}

	fmt.Printf("Transactions: %d\n", len(blk.Transactions()))
	fmt.Printf("Visited transactions: %d\n", txCount)
	fmt.Printf("Total output value: %d\n", totalValue)

	return nil
}

// watch runs until interrupted, periodically logging the state of a cache that would back a
// longer-running process driven by the same files. There is no filesystem event source wired in
// here; it demonstrates the goroutine lifecycle this CLI would use for one.
func watch(ctx context.Context, cfg *Config, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return errors.Wrap(err, "watch dir")
	}

	txCache := cache.NewTxCache(cfg.CacheCapacity)

	sch := &scheduler.Scheduler{}
	statsTask := scheduler.NewPeriodicTask("cache-stats", &cache.StatsTask{Cache: txCache}, 30*time.Second)
	if err := sch.ScheduleJob(ctx, statsTask); err != nil {
		return errors.Wrap(err, "schedule stats task")
	}

	schedulerThread := threads.NewThreadWithoutStop("scheduler", func(ctx context.Context) error {
		return sch.Run(ctx)
	})
	schedulerThread.Start(ctx)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	logger.Info(ctx, "Watching %s, press ctrl-c to stop", dir)
	<-interrupt

	if err := sch.Stop(ctx); err != nil {
		logger.Warn(ctx, "Stop scheduler: %s", err)
	}

	logger.Info(ctx, "Stopped, final cache stats: %+v", txCache.Stats())
	return nil
}
