// Package logx configures the planner's structured logging.
//
// It is a small wrapper (logx.Logger) on top of zerolog that keeps console
// output readable (short timestamp + short caller) and an optional file
// sink JSON-structured.
package logx
