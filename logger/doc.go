// Package logger provides structured logging for duoguard using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Authorization decisions are logged with the
// standard field keys defined in fields.go so denials can be queried by
// path, pattern, and reason.
package logger
