// Package render turns a prepared skill set and its level tree into output:
// the Markdown document and the terminal summary.
package render
