package main

import (
	"io"
	"log"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"
)

type rootConfig struct {
	stdout io.Writer
	stderr io.Writer

	settingsPath string
	logLevel     string

	info, debug *log.Logger
}

func (cfg *rootConfig) registerFlags(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{
		ShortName:   's',
		LongName:    "settings",
		Value:       ffval.NewValue(&cfg.settingsPath),
		Usage:       "user settings file overriding the package defaults",
		Placeholder: "PATH",
	})
	fs.AddFlag(ff.FlagConfig{
		ShortName:   'l',
		LongName:    "log",
		Value:       ffval.NewEnum(&cfg.logLevel, "info", "i", "debug", "d", "none", "n"),
		Usage:       "log level: i/info, d/debug, n/none",
		Placeholder: "LEVEL",
	})
}
