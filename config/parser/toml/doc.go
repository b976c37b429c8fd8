// Package toml provides the TOML decoder for the config package using
// github.com/BurntSushi/toml. Arrays of tables decode to sequences of maps and
// offset, local date-time, local date and local time values all decode to
// document timestamps.
package toml
