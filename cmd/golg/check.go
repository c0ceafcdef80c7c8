package main

import (
	"context"
	"fmt"

	"github.com/wkozlowski/golg/golgconf"
)

type checkConfig struct {
	*rootConfig
}

func (cfg *checkConfig) Exec(ctx context.Context, args []string) error {
	conf, err := golgconf.Load(cfg.settingsPath)
	if err != nil {
		return err
	}

	if cfg.settingsPath != "" {
		cfg.debug.Printf("loaded %s over package defaults", cfg.settingsPath)
	} else {
		cfg.debug.Printf("loaded package defaults")
	}

	buf, err := golgconf.Marshal(conf)
	if err != nil {
		return fmt.Errorf("render settings: %w", err)
	}

	fmt.Fprintf(cfg.stdout, "%s", buf)

	return nil
}
