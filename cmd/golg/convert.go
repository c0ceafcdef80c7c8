package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"

	"github.com/wkozlowski/golg/golgconf"
)

type convertConfig struct {
	*rootConfig

	force bool
}

func (cfg *convertConfig) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{
		ShortName: 'f',
		LongName:  "force",
		Value:     ffval.NewValue(&cfg.force),
		Usage:     "overwrite the destination if it exists",
		NoDefault: true,
	})
}

func (cfg *convertConfig) Exec(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: golg convert SRC [DST]")
	}

	src := args[0]
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".yml"
	if len(args) == 2 {
		dst = args[1]
	}

	if !cfg.force {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("%s already exists, pass --force to overwrite", dst)
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if err := golgconf.ConvertLegacy(in, out); err != nil {
		out.Close()
		return fmt.Errorf("convert: %w", err)
	}

	if err := out.Close(); err != nil {
		return err
	}

	cfg.info.Printf("converted %s to %s", src, dst)

	return nil
}
