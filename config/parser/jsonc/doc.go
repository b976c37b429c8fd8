// Package jsonc provides the JSON-with-comments decoder for the config
// package.
//
// Comments and trailing commas are removed with github.com/tidwall/jsonc,
// then the result is decoded with encoding/json. Offsets in error messages
// refer to the stripped text, which keeps the byte length of the input.
package jsonc
