// Package log provides slog helpers for blogsmith.
// Its main export is SecureHandler, a handler wrapper that masks API keys
// and other credentials before log records reach the underlying handler.
package log
