// Package extract reads one value out of a structured data file.
//
// An Extractor runs four stages in order and stops at the first failure:
//
//  1. parse the field path (see package path)
//  2. read the file
//  3. decode the content with the first format that accepts it (see package config)
//  4. follow the path through the decoded document (see package document)
//
// Each stage reports progress through an optional Trace callback. Failures are
// returned inside the Result rather than as a Go error so hosts can render the
// message as is:
//
//	result := extract.New().Execute(ctx, "package.json", "scripts.build", nil)
//	if result.Failed() {
//	    return errors.New(result.Error)
//	}
//
// A path that runs off the data is not a failure: the Result carries an absent
// Output.
package extract
