// Package hibc parses and builds Health Industry Bar Code (HIBC LIC)
// payloads.
//
// A payload is a primary segment ("+", labeler identification code, product
// or catalog number, unit of measure) followed by optional secondary
// segments carrying quantity, expiration date, lot and serial number.
//
// Linear (1D) payloads concatenate "+" prefixed segments that each end with
// their own mod-43 check character; every secondary segment repeats the
// primary check character as a link character right before its own check
// character. Two dimensional payloads separate secondary segments with "/"
// and carry a single check character at the very end.
package hibc
