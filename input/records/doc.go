/*
Package records resolves tabular input into personalization records.

Input is delimited text with a header row. Column roles are found by header
name, using a fixed, case-sensitive list of accepted names per field:

	first name:  firstName, first_name, Imię
	last name:   lastName, last_name, Nazwisko
	title:       title, Tytuł

If neither a first-name nor a last-name column can be found, the columns are
taken by position instead: the first three columns of every row are read as
first name, last name and title, regardless of their headers.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 The winietki Authors

*/
package records

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'winietki.records'
func tracer() tracing.Trace {
	return tracing.Select("winietki.records")
}
