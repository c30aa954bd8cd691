// Package pkg provides shared utilities for the usbhost stack.
//
// This package contains common functionality used across every layer of the
// host orchestrator, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for orchestration and bus errors
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library — the same choice the rest of this
// stack makes, since a bare-metal/TinyGo target cannot assume an allocator
// is available for a heavier logging or assertion library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with USB-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentHost, "device configured", "config", 1)
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrStall) {
//	    // Handle endpoint stall
//	}
package pkg
