// Package ppn parses and builds Pharmacy Product Number payloads framed in
// the ANSI MH10.8.2 "06" format envelope used by IFA coded pharmacy
// packages.
//
// A payload starts with "[)>", RS, "06", GS and ends with RS, EOT. Between
// them data identifiers such as "9N" (PPN), "1T" (batch) or "D" (expiry) are
// followed by their data and separated by GS.
package ppn
