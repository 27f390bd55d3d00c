/*
File    : cluefront/preprocessor/errors.go
Package : preprocessor

Shared diagnostic formatting for the directive interpreter. All fatal
preprocessor errors share the same "Error in file ... at line ..."
framing; this file keeps that framing in one place rather than
duplicated at each call site, with separate helpers for a bare message,
an "expected X but got Y" mismatch, and an "expected X before EOF"
mismatch.
*/
package preprocessor

import (
	"fmt"

	"github.com/juju/errors"
)

func diagError(filename string, line int, msg string) error {
	fmt.Printf("Error in file %q at line %d!\n", filename, line)
	return errors.New(msg)
}

func diagExpected(filename string, line int, expected, got string) error {
	return diagError(filename, line, fmt.Sprintf("Expected '%s', got '%s'", expected, got))
}

func diagExpectedBefore(filename string, line int, expected, before string) error {
	return diagError(filename, line, fmt.Sprintf("Expected '%s' before '%s'", expected, before))
}
