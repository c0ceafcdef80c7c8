package ezgolg_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wkozlowski/golg"
	"github.com/wkozlowski/golg/ezgolg"
)

// The package holds process-wide state, so the subtests run in order and
// reset it with Close between them.
func TestEzgolg(t *testing.T) {
	t.Cleanup(func() { ezgolg.Close() })

	dir := t.TempDir()
	logPath := filepath.Join(dir, "trace.log")

	writeSettings := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "settings.yml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("configured", func(t *testing.T) {
		path := writeSettings(t, strings.Join([]string{
			"file: " + logPath,
			"trace_time: false",
			"trace_filename: false",
			"trace_lineno: false",
			"trace_function: false",
			"message_width: 0",
		}, "\n"))

		if err := ezgolg.Configure(path); err != nil {
			t.Fatal(err)
		}

		if err := ezgolg.Trace("hello"); err != nil {
			t.Fatal(err)
		}

		add := ezgolg.Func(func(a, b int) int { return a + b }, golg.WithParams("a", "b"))
		results, err := add.Invoke(2, 3)
		if err != nil {
			t.Fatal(err)
		}
		if results[0].(int) != 5 {
			t.Fatalf("want 5, have %v", results[0])
		}

		if err := ezgolg.Close(); err != nil {
			t.Fatal(err)
		}

		buf, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatal(err)
		}

		have := string(buf)
		for _, s := range []string{
			"=== Log initialised at ",
			"hello\n",
			"-> ENTRY: a = 2, b = 3\n",
			"<- EXIT : 5\n",
		} {
			if !strings.Contains(have, s) {
				t.Errorf("log missing %q:\n%s", s, have)
			}
		}
	})

	t.Run("reconfigure closes previous log", func(t *testing.T) {
		first := filepath.Join(t.TempDir(), "first.log")
		second := filepath.Join(t.TempDir(), "second.log")

		if err := ezgolg.Configure(writeSettings(t, "file: "+first)); err != nil {
			t.Fatal(err)
		}
		if err := ezgolg.Configure(writeSettings(t, strings.Join([]string{
			"file: " + second,
			"trace_time: false",
			"trace_filename: false",
			"trace_lineno: false",
			"trace_function: false",
		}, "\n"))); err != nil {
			t.Fatal(err)
		}

		if err := ezgolg.Trace("after reconfigure"); err != nil {
			t.Fatal(err)
		}
		if err := ezgolg.Close(); err != nil {
			t.Fatal(err)
		}

		// Records follow the reconfigured target; the first log keeps
		// only its header.
		buf, err := os.ReadFile(first)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(buf), "after reconfigure") {
			t.Fatalf("record written to the replaced log:\n%s", buf)
		}

		buf, err = os.ReadFile(second)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(buf), "after reconfigure") {
			t.Fatalf("record missing from the reconfigured log:\n%s", buf)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		path := writeSettings(t, "enable: false")

		if err := ezgolg.Configure(path); err != nil {
			t.Fatal(err)
		}

		if ezgolg.Logger().Enabled() {
			t.Fatal("want disabled logger")
		}
		if err := ezgolg.Trace("never written"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("bad settings", func(t *testing.T) {
		path := writeSettings(t, "enable: 1")

		if err := ezgolg.Configure(path); err == nil {
			t.Fatal("want error, have nil")
		}
	})
}
