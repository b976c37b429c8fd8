// Package memory provides an in-memory config.Source.
package memory
