// Package klog is the kernel's narrow logging surface: one line for a fatal
// configuration error that aborts the process, one for a soft anomaly that
// is reported but otherwise ignored. It exists because the kernel's error
// handling design (see SPEC_FULL.md §7) draws a hard line
// between the two, nothing here is meant to grow into general-purpose
// application logging.
package klog

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// Colorized reports whether the process's stderr is a real terminal, which
// is the only signal the kernel uses to decide whether a diagnostic is
// worth dressing up.
func Colorized() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Fatal logs a single diagnostic line and aborts the process. It is used
// exclusively for the kernel's fatal configuration error, CSA overflow,
// which is also how a coroutine count that the arena cannot hold shows up.
// There is no return from Fatal.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

// Warn logs a soft anomaly, one that is reported but does not change the
// kernel's behavior, such as a spurious read failure in the stdin probe.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}
