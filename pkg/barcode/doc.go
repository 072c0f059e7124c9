// Package barcode holds the format independent model shared by every
// barcode grammar: the Barcode interface and its Base implementation, typed
// fields and their collections, product codes, barcode dates, AIM symbology
// identifiers and the error taxonomy.
//
// Format packages (gs1, hibc, ppn, ean, msi, code39, code128) compose these
// pieces into their concrete barcode types. Fields are declared once per
// format with a Codec that converts between the raw wire text and the typed
// value, so validation runs identically whether a value was scanned or set
// programmatically.
package barcode
