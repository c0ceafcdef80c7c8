// Package golgconf loads golg settings files: YAML documents whose keys
// mirror the fields of [golg.Config]. Package defaults are embedded in
// the binary; a user file overrides them key by key. Every value is
// strictly type- and range-checked at load time, so the core engine
// never sees a malformed option.
package golgconf

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wkozlowski/golg"
)

//go:embed settings.yml
var defaultSettings []byte

// Option key sets, by required type. A key outside all four sets is
// unrecognised and rejected.
var (
	boolKeys = map[string]bool{
		"enable":                  true,
		"exception_warning":       true,
		"exception_trace_file":    true,
		"exception_trace_stderr":  true,
		"exception_exit":          true,
		"trace_time":              true,
		"trace_filename":          true,
		"trace_lineno":            true,
		"trace_function":          true,
		"scope_name_resolution":   true,
		"trace_message":           true,
		"message_wrap":            true,
		"message_mark_truncation": true,
		"trace_self":              true,
		"collapse_slices":         true,
		"collapse_maps":           true,
		"trace_args":              true,
		"trace_rv":                true,
		"trace_rv_type":           true,
	}

	stringKeys = map[string]bool{
		"file":        true,
		"time_format": true,
	}

	posIntKeys = map[string]bool{
		"filename_column_width": true,
		"function_column_width": true,
	}

	nonNegIntKeys = map[string]bool{
		"lineno_width":  true,
		"message_width": true,
	}
)

// Defaults returns the embedded default settings. The embedded file is
// part of the package; failing to parse it is a build defect, reported
// by panic on first use.
func Defaults() golg.Config {
	cfg, err := build(parseDefaults(), nil, "<defaults>", "")
	if err != nil {
		panic(fmt.Sprintf("golgconf: embedded defaults: %v", err))
	}
	return cfg
}

// Load returns the default settings overridden by the user settings file
// at userPath. An empty userPath loads the defaults alone. Unrecognised
// keys, wrong types (a bool option must be a YAML bool, never an int),
// and out-of-range widths are errors naming the offending file.
func Load(userPath string) (golg.Config, error) {
	defaults := parseDefaults()

	var user map[string]any
	if userPath != "" {
		buf, err := os.ReadFile(userPath)
		if err != nil {
			return golg.Config{}, fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(buf, &user); err != nil {
			return golg.Config{}, fmt.Errorf("parse %s: %w", userPath, err)
		}
	}

	return build(defaults, user, "<defaults>", userPath)
}

// Marshal renders cfg as a YAML settings document using the same keys
// Load reads, so the output round-trips.
func Marshal(cfg golg.Config) ([]byte, error) {
	return yaml.Marshal(map[string]any{
		"enable":                  cfg.Enable,
		"file":                    cfg.File,
		"exception_warning":       cfg.ExceptionWarning,
		"exception_trace_file":    cfg.ExceptionTraceFile,
		"exception_trace_stderr":  cfg.ExceptionTraceStderr,
		"exception_exit":          cfg.ExceptionExit,
		"trace_time":              cfg.TraceTime,
		"time_format":             cfg.TimeFormat,
		"trace_filename":          cfg.TraceFilename,
		"filename_column_width":   cfg.FilenameColumnWidth,
		"trace_lineno":            cfg.TraceLineno,
		"lineno_width":            cfg.LinenoWidth,
		"trace_function":          cfg.TraceFunction,
		"function_column_width":   cfg.FunctionColumnWidth,
		"scope_name_resolution":   cfg.ScopeNameResolution,
		"trace_message":           cfg.TraceMessage,
		"message_width":           cfg.MessageWidth,
		"message_wrap":            cfg.MessageWrap,
		"message_mark_truncation": cfg.MessageMarkTruncation,
		"trace_self":              cfg.TraceSelf,
		"collapse_slices":         cfg.CollapseSlices,
		"collapse_maps":           cfg.CollapseMaps,
		"trace_args":              cfg.TraceArgs,
		"trace_rv":                cfg.TraceRV,
		"trace_rv_type":           cfg.TraceRVType,
	})
}

func parseDefaults() map[string]any {
	var m map[string]any
	if err := yaml.Unmarshal(defaultSettings, &m); err != nil {
		panic(fmt.Sprintf("golgconf: embedded defaults: %v", err))
	}
	return m
}

// build merges user settings over defaults and checks every key against
// its required type and range, attributing each failure to the file the
// value came from.
func build(defaults, user map[string]any, defaultsName, userName string) (golg.Config, error) {
	merged := make(map[string]any, len(defaults))
	source := make(map[string]string, len(defaults))

	for k, v := range defaults {
		merged[k] = v
		source[k] = defaultsName
	}
	for k, v := range user {
		merged[k] = v
		source[k] = userName
	}

	var cfg golg.Config

	for key, value := range merged {
		file := source[key]

		switch {
		case boolKeys[key]:
			v, ok := value.(bool)
			if !ok {
				return golg.Config{}, fmt.Errorf(
					"invalid type for %s in %s - should be bool, is type %T", key, file, value)
			}
			applyBool(&cfg, key, v)

		case stringKeys[key]:
			v, ok := value.(string)
			if !ok {
				return golg.Config{}, fmt.Errorf(
					"invalid type for %s in %s - should be string, is type %T", key, file, value)
			}
			applyString(&cfg, key, v)

		case posIntKeys[key]:
			v, ok := value.(int)
			if !ok || v <= 0 {
				return golg.Config{}, fmt.Errorf(
					"invalid type/value for %s in %s - should be positive int, is %v", key, file, value)
			}
			applyInt(&cfg, key, v)

		case nonNegIntKeys[key]:
			v, ok := value.(int)
			if !ok || v < 0 {
				return golg.Config{}, fmt.Errorf(
					"invalid type/value for %s in %s - should be non-negative int, is %v", key, file, value)
			}
			applyInt(&cfg, key, v)

		default:
			return golg.Config{}, fmt.Errorf("unrecognised option in %s: %s", file, key)
		}
	}

	return cfg, nil
}

func applyBool(cfg *golg.Config, key string, v bool) {
	switch key {
	case "enable":
		cfg.Enable = v
	case "exception_warning":
		cfg.ExceptionWarning = v
	case "exception_trace_file":
		cfg.ExceptionTraceFile = v
	case "exception_trace_stderr":
		cfg.ExceptionTraceStderr = v
	case "exception_exit":
		cfg.ExceptionExit = v
	case "trace_time":
		cfg.TraceTime = v
	case "trace_filename":
		cfg.TraceFilename = v
	case "trace_lineno":
		cfg.TraceLineno = v
	case "trace_function":
		cfg.TraceFunction = v
	case "scope_name_resolution":
		cfg.ScopeNameResolution = v
	case "trace_message":
		cfg.TraceMessage = v
	case "message_wrap":
		cfg.MessageWrap = v
	case "message_mark_truncation":
		cfg.MessageMarkTruncation = v
	case "trace_self":
		cfg.TraceSelf = v
	case "collapse_slices":
		cfg.CollapseSlices = v
	case "collapse_maps":
		cfg.CollapseMaps = v
	case "trace_args":
		cfg.TraceArgs = v
	case "trace_rv":
		cfg.TraceRV = v
	case "trace_rv_type":
		cfg.TraceRVType = v
	}
}

func applyString(cfg *golg.Config, key, v string) {
	switch key {
	case "file":
		cfg.File = v
	case "time_format":
		cfg.TimeFormat = v
	}
}

func applyInt(cfg *golg.Config, key string, v int) {
	switch key {
	case "filename_column_width":
		cfg.FilenameColumnWidth = v
	case "lineno_width":
		cfg.LinenoWidth = v
	case "function_column_width":
		cfg.FunctionColumnWidth = v
	case "message_width":
		cfg.MessageWidth = v
	}
}
