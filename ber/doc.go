// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding and decoding
// as specified in ITU-T X.690, restricted to the subset RFC 4511 requires:
// definite lengths only, minimal integer and length encoding.
//
// BER is the wire format used by LDAP for all protocol messages. This package
// provides low-level primitives for encoding and decoding BER data structures.
//
// # Tag Classes
//
// BER uses four tag classes to identify data types:
//
//   - Universal (0x00): Standard ASN.1 types like INTEGER, BOOLEAN, SEQUENCE
//   - Application (0x40): Protocol-specific types (LDAP operations)
//   - Context-specific (0x80): Context-dependent types within a structure
//   - Private (0xC0): Organization-specific types
//
// # Encoding
//
// Asn1Buffer is a reverse (tail-append) writer: values are written content
// first, then wrapped in a length and a tag, so no length ever needs to be
// patched in after the fact. A SEQUENCE (or other multi-child constructed
// value) is built by marking a position, writing its children in REVERSE of
// their declaration order, then closing with WrapSequence:
//
//	buf := ber.NewAsn1Buffer()
//	mark := buf.Mark()
//	buf.WriteOctetString([]byte("hello")) // second field, written first
//	buf.WriteInteger(42)                  // first field, written second
//	buf.WrapSequence(mark)
//	data := buf.Bytes()
//
// # Decoding
//
// Use BERDecoder to parse BER-encoded data:
//
//	decoder := ber.NewBERDecoder(data)
//	value, err := decoder.ReadInteger()
//	if err != nil {
//	    // handle error
//	}
//
// For constructed types, use ExpectSequence to get the content length:
//
//	decoder := ber.NewBERDecoder(data)
//	length, err := decoder.ExpectSequence()
//	if err != nil {
//	    // handle error
//	}
//	// Read 'length' bytes of sequence content
//
// PeekTagAndLength supports streaming callers (the grammar package) that
// need to tell a truncated TLV (ErrIncomplete, wait for more bytes) apart
// from a malformed one (a real decode error).
//
// # Universal Tags
//
// The package defines constants for common universal tags:
//
//   - TagBoolean (0x01): Boolean values
//   - TagInteger (0x02): Integer values
//   - TagOctetString (0x04): Byte strings
//   - TagNull (0x05): Null value
//   - TagOID (0x06): Object identifiers
//   - TagEnumerated (0x0A): Enumerated values
//   - TagSequence (0x10): Ordered collection
//   - TagSet (0x11): Unordered collection
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - RFC 4511: LDAP Protocol (uses BER encoding)
package ber
