// Package log is the structured logger of tmplgen, built on [log/slog].
//
// A [Logger] is an immutable value: options are applied when it is made
// or wrapped, and the result can be shared freely between goroutines.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("render complete", slog.Int("documents", 3))
//	logger.Error("read failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Library Use
//
// The zero [Logger] discards everything, so packages accept a Logger
// through an option and log unconditionally:
//
//	r := render.New(render.WithLogger(log.Default()))
//
// # Template Records
//
// Components tag their records with [Logger.For], and describe placeholders
// with [Text], [Pos] and [Err]. Handlers shorten long [Text] excerpts, and
// the text handlers write the component name ahead of the message:
//
//	level=TRACE component=lang msg="placeholder rejected" text=${int:ten} pos=2:14
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports five log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], and [LevelError]. Messages below the configured
// level are discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. With [WithPretty] enabled, text output is colorized and
// JSON output is indented; colors are dropped automatically when the
// output is not a terminal.
package log
