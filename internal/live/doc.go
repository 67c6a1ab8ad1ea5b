// Package live evaluates the source of live code blocks. Blocks are written
// in Starlark; the final bare expression of a block is its value and a block
// ending in any other statement yields whatever it printed.
package live
