// Package field is the application shell of hjarta-field: an fx App that
// wires logging, the extraction pipeline and, on demand, HTTP listeners
// serving the extraction API.
//
//	app := field.NewApp(
//	    field.WithLogLevel("info"),
//	    field.WithExtractAPI("http", listener.WithAddress(":8080")),
//	)
//	app.Run()
//
// The pipeline itself lives in package extract; hosts such as the CLI and the
// GitHub Actions runner use it directly.
package field
