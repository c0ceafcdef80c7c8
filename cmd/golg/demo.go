package main

import (
	"context"
	"fmt"
	"hash/crc32"
	"math/rand"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/oklog/ulid/v2"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"

	"github.com/wkozlowski/golg"
	"github.com/wkozlowski/golg/golgconf"
)

type demoConfig struct {
	*rootConfig

	interval time.Duration
	duration time.Duration
	toStdout bool
}

func (cfg *demoConfig) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{
		ShortName:   'i',
		LongName:    "interval",
		Value:       ffval.NewValueDefault(&cfg.interval, 250*time.Millisecond),
		Usage:       "delay between sample requests",
		Placeholder: "DURATION",
	})
	fs.AddFlag(ff.FlagConfig{
		ShortName:   'd',
		LongName:    "duration",
		Value:       ffval.NewValueDefault(&cfg.duration, 0),
		Usage:       "stop after this long (0 = until interrupted)",
		Placeholder: "DURATION",
	})
	fs.AddFlag(ff.FlagConfig{
		LongName:  "stdout",
		Value:     ffval.NewValue(&cfg.toStdout),
		Usage:     "write trace records to stdout instead of the settings file target",
		NoDefault: true,
	})
}

func (cfg *demoConfig) Exec(ctx context.Context, args []string) error {
	conf, err := golgconf.Load(cfg.settingsPath)
	if err != nil {
		return err
	}

	// The demo exists to produce records.
	conf.Enable = true

	var sink golg.Sink
	if cfg.toStdout {
		sink = golg.NewWriterSink(cfg.stdout)
	} else {
		fs, err := golg.NewFileSink(conf.File)
		if err != nil {
			return err
		}
		defer fs.Close()
		sink = fs
		cfg.info.Printf("writing trace records to %s", conf.File)
	}

	logger := golg.New(conf, sink)

	// Sample workload: process delegates to checksum, so the nested
	// ENTRY/EXIT records demonstrate scope qualification; an occasional
	// oversized request panics to demonstrate the exception path.
	checksum := logger.MustFunc(func(data []byte) uint32 {
		return crc32.ChecksumIEEE(data)
	}, golg.WithName("checksum"), golg.WithParams("data"), golg.WithScope("demo"))

	process := logger.MustFunc(func(id string, size int) (uint32, error) {
		if size > 900 {
			panic(fmt.Errorf("payload of %d bytes exceeds demo limit", size))
		}

		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(rand.Intn(256))
		}

		sums, err := checksum.Invoke(payload)
		if err != nil {
			return 0, err
		}

		return sums[0].(uint32), nil
	}, golg.WithName("process"), golg.WithParams("id", "size"), golg.WithScope("demo"))

	var g run.Group
	{
		var (
			runCtx context.Context
			cancel context.CancelFunc
		)
		if cfg.duration > 0 {
			runCtx, cancel = context.WithTimeout(ctx, cfg.duration)
		} else {
			runCtx, cancel = context.WithCancel(ctx)
		}
		g.Add(func() error {
			return cfg.workload(runCtx, logger, process)
		}, func(error) {
			cancel()
		})
	}
	{
		g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	}

	cfg.info.Printf("running, interval %s", cfg.interval)

	err = g.Run()
	if err == context.DeadlineExceeded || err == context.Canceled {
		return nil
	}
	return err
}

func (cfg *demoConfig) workload(ctx context.Context, logger *golg.Logger, process *golg.TraceFunc) error {
	tick := time.NewTicker(cfg.interval)
	defer tick.Stop()

	logger.Trace("demo workload starting")
	defer logger.Trace("demo workload stopping")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}

		var (
			id   = ulid.Make().String()
			size = rand.Intn(1000)
		)

		// The oversized case panics inside the instrumented call; the
		// workload recovers so the demo keeps running, exactly as a
		// caller with its own error handling would.
		func() {
			defer func() {
				if r := recover(); r != nil {
					cfg.debug.Printf("request %s: recovered: %v", id, r)
				}
			}()

			results, err := process.Invoke(id, size)
			if err != nil {
				cfg.debug.Printf("request %s: %v", id, err)
				return
			}
			cfg.debug.Printf("request %s: checksum %08x", id, results[0])
		}()
	}
}
