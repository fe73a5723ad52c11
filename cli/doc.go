// Package cli contains the command line interface for tmplgen.
//
// # Usage
//
//	tmplgen [flags] [render] -t TEMPLATE | -f FILE
//	tmplgen check -f FILE
//	tmplgen types
//	tmplgen init
//	tmplgen repl
//
// Render is the default command, so a bare template flag renders it:
//
//	tmplgen -t 'Hello ${<a>name::first} ${<a>name::last}' -n 3 --seed 1
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (see [os.UserConfigDir]). Nested mappings are flattened with
// hyphens, so the file
//
//	log:
//	  level: debug
//
// is equivalent to --log-level=debug. Command-line flags override config
// file values, and "tmplgen init" writes the current values to the file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output when writing to a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tmplgen .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
package cli
