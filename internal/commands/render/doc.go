// Package rendercmd exposes Markdown rendering as go-command messages so the
// CLI and host applications drive the same handlers.
package rendercmd
