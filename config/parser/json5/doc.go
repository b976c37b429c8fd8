// Package json5 provides the JSON5 decoder for the config package using
// github.com/titanous/json5.
package json5
