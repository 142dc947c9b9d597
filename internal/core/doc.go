// Package core provides the business logic for the alumni records system.
//
// The package holds all domain rules independent of the terminal UI and the
// command line. Both front ends call a [Service]; tests drive the import and
// export paths through the [AlumniStore] interface with an in-memory store.
//
// # Import
//
// [Importer.Import] reads a CSV file with a header row. The email and
// graduation_year columns are required; first_name, last_name and
// current_job are optional. Header names are matched case-insensitively and
// surrounding whitespace and a UTF-8 byte order mark are ignored.
//
// Every row runs through the same steps inside one transaction:
//
//  1. The email must be well formed and the graduation year must fall
//     between [MinGraduationYear] and [MaxGraduationYear].
//  2. An email already present in the table (including one inserted earlier
//     in the same file) is skipped.
//  3. The row is inserted.
//
// Skipped rows are reported in [ImportResult] and, when configured, written
// to "<name> - failed.csv" with the reason in the first column. A database
// error rolls back the whole file.
//
// # Export
//
// [Exporter.Export] writes the live column list of the alumni table followed
// by every row. NULL values become empty cells.
//
// # Updates
//
// Partial updates are expressed as a [Patch]. Absent fields are sent as
// NULL and keep their stored value, so one fixed UPDATE statement serves
// every combination of fields.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - ALM001-ALM004: file errors (missing, malformed, header, size)
//   - ALM010-ALM012: data errors (validation, duplicates, missing records)
//   - ALM020-ALM023: database errors (connection, writes, references, timeouts)
//   - ALM030-ALM031: email settings and authentication
package core
