// Package api serves extraction over HTTP.
//
//	POST /v1/extract  {"file_name": "app.toml", "content": "...", "field": "server.port"}
//	GET  /healthz
//
// The posted content never touches the filesystem; file_name only drives
// format guessing. Successful extractions answer 200 with the value, failed
// ones 422 with the error message and the trace collected along the way.
package api
