// Package ezgolg provides an easy-to-use API around a single
// process-wide [golg.Logger], configured once from a settings file. It's
// intended for programs with one logical call chain, which is the common
// case; anything more elaborate should construct its own Loggers from
// package golg directly.
//
// The Logger is configured on first use: if a file named by
// [UserSettingsFile] exists in the working directory, it overrides the
// package defaults. Programs that keep their settings elsewhere call
// [Configure] explicitly, before any bindings are made.
package ezgolg

import (
	"fmt"
	"os"
	"sync"

	"github.com/wkozlowski/golg"
	"github.com/wkozlowski/golg/golgconf"
)

// UserSettingsFile is the conventional name of the user settings file,
// picked up automatically from the working directory.
const UserSettingsFile = "golg_settings.yml"

var (
	mtx        sync.Mutex
	configured bool
	logger     *golg.Logger
	sink       *golg.FileSink
)

// Configure loads settings — the package defaults overridden by the
// optional user settings file at userSettingsPath — and opens the log
// file. When the loaded settings disable tracing, no file is opened and
// every operation in this package is a no-op.
//
// Configure must run before any call to Func or Trace; otherwise the
// Logger is configured automatically from [UserSettingsFile].
func Configure(userSettingsPath string) error {
	cfg, err := golgconf.Load(userSettingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	mtx.Lock()
	defer mtx.Unlock()

	return configure(cfg)
}

// configure installs cfg as the process-wide configuration. mtx held.
func configure(cfg golg.Config) error {
	configured = true

	// Reconfiguring drops the previously opened log file.
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}

	if !cfg.Enable {
		logger = golg.New(cfg, nil)
		return nil
	}

	fs, err := golg.NewFileSink(cfg.File)
	if err != nil {
		return err
	}

	sink = fs
	logger = golg.New(cfg, fs)

	return nil
}

// Logger returns the process-wide Logger, configuring it from
// [UserSettingsFile] (or the package defaults) on first use. When
// automatic configuration fails, tracing is disabled and the failure is
// reported once on stderr, so the host program keeps running.
func Logger() *golg.Logger {
	mtx.Lock()
	defer mtx.Unlock()

	if !configured {
		path := ""
		if _, err := os.Stat(UserSettingsFile); err == nil {
			path = UserSettingsFile
		}

		cfg, err := golgconf.Load(path)
		if err == nil {
			err = configure(cfg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: golg disabled: %v\n", err)
			configured = true
			logger = golg.New(golg.Config{}, nil)
		}
	}

	return logger
}

// Trace writes a free-form record, capturing the caller's call site.
func Trace(message string) error {
	return Logger().TraceDepth(2, message)
}

// Func binds fn for tracing against the process-wide Logger. It panics
// on a binding error, since bindings are normally made in variable
// initializers where there is no caller to report to.
func Func(fn any, opts ...golg.FuncOption) *golg.TraceFunc {
	tf, err := Logger().Func(fn, append(opts, golg.WithCallDepth(1))...)
	if err != nil {
		panic(fmt.Sprintf("ezgolg: %v", err))
	}
	return tf
}

// Close flushes and closes the log file, if one was opened. The next use
// reconfigures from scratch.
func Close() error {
	mtx.Lock()
	defer mtx.Unlock()

	configured = false
	logger = nil

	if sink == nil {
		return nil
	}

	err := sink.Close()
	sink = nil

	return err
}
