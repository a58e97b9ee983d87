// Package attrvalue implements the binary-attribute-value detection
// policy a decoder consults when deciding whether an attribute's values
// should be treated as opaque octets (and rendered with the LDIF
// ";binary" transfer option) rather than as a string.
//
// Detector depends on no concrete schema implementation: schema
// consultation is a narrow SyntaxLookup function the caller supplies, so
// a codec that has no schema engine at all can still use the built-in
// name and syntax-OID sets.
package attrvalue
