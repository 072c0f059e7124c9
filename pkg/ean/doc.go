// Package ean parses and builds EAN-8, EAN-13 and UPC-A payloads.
//
// Thirteen digit payloads that start with "0" (except the "02" restricted
// circulation range) carry an embedded UPC-A code and are read as such. The
// first digit of a UPC-A code is its number system, which decides how the
// remaining digits split into company prefix and product number.
package ean
