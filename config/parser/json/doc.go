// Package json provides the strict JSON decoder for the config package,
// built on encoding/json.
package json
