// Package gs1 parses and builds GS1 element strings.
//
// Two wire forms are supported. Plain GS1 element strings separate variable
// length elements with the ASCII group separator (0x1D) and may carry a
// leading AIM symbology identifier such as "]d2". GS1-128 payloads start
// with "]C1" and repeat that prefix in place of the group separator.
//
// The known application identifiers are loaded from the embedded ai.yaml
// table at package initialisation.
package gs1
