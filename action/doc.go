// Package action runs extraction as a GitHub Actions step.
//
// Inputs come from the INPUT_FILE and INPUT_FIELD environment variables the
// runner sets for `with:` values. Progress is reported as ::debug:: workflow
// commands, failures as ::error:: with a non-zero exit code. The extracted
// value is published as two step outputs:
//
//	result       strings verbatim, other values as JSON, empty when missing
//	result_json  the value as JSON, empty when missing
package action
