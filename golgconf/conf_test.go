package golgconf_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wkozlowski/golg"
	"github.com/wkozlowski/golg/golgconf"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := golgconf.Defaults()

	want := golg.Config{
		Enable:              true,
		File:                "golg.log",
		ExceptionWarning:    true,
		TraceTime:           true,
		TimeFormat:          "15:04:05.000000",
		TraceFilename:       true,
		FilenameColumnWidth: 20,
		TraceLineno:         true,
		LinenoWidth:         4,
		TraceFunction:       true,
		FunctionColumnWidth: 32,
		TraceMessage:        true,
		MessageWidth:        80,
		MessageWrap:         true,
		TraceArgs:           true,
		TraceRV:             true,
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, strings.Join([]string{
		"enable: false",
		"message_width: 0",
		"scope_name_resolution: true",
		"file: other.log",
	}, "\n"))

	cfg, err := golgconf.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	want := golgconf.Defaults()
	want.Enable = false
	want.MessageWidth = 0
	want.ScopeNameResolution = true
	want.File = "other.log"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadEmptyPathIsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := golgconf.Load("")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(golgconf.Defaults(), cfg); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadRejections(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{
			name: "bool option as int",
			body: "enable: 1",
			want: "invalid type for enable",
		},
		{
			name: "string option as bool",
			body: "time_format: true",
			want: "invalid type for time_format",
		},
		{
			name: "zero column width",
			body: "filename_column_width: 0",
			want: "invalid type/value for filename_column_width",
		},
		{
			name: "negative lineno width",
			body: "lineno_width: -1",
			want: "invalid type/value for lineno_width",
		},
		{
			name: "unknown key",
			body: "messag_width: 80",
			want: "unrecognised option",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSettings(t, tc.body)

			_, err := golgconf.Load(path)
			if err == nil {
				t.Fatal("want error, have nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, have %q", tc.want, err.Error())
			}
			// The failure names the user file, not the defaults.
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("want error naming %s, have %q", path, err.Error())
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := golgconf.Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Fatal("want error, have nil")
	}
}

func TestZeroMessageWidthAccepted(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, "message_width: 0")

	cfg, err := golgconf.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MessageWidth != 0 {
		t.Fatalf("want 0, have %d", cfg.MessageWidth)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	orig := golgconf.Defaults()
	orig.Enable = false
	orig.MessageWidth = 0
	orig.CollapseMaps = true

	buf, err := golgconf.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}

	path := writeSettings(t, string(buf))

	cfg, err := golgconf.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(orig, cfg); diff != "" {
		t.Fatal(diff)
	}
}
