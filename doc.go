// Package ldapwire implements an LDAP v3 wire-protocol codec: BER decode/
// encode, the per-operation message grammar, the search filter
// sub-grammar, and an OID-keyed dispatch registry for controls, extended
// operations and intermediate responses.
//
// The codec performs no I/O and owns no connection state; Codec.Decode
// and Codec.Encode are the two entry points an embedding transport or
// server calls with bytes already read from (or about to be written to)
// the wire. Subpackages ber, grammar, ldap, filter, registry and
// attrvalue can also be used directly by a caller that needs finer-
// grained control than the Codec facade provides.
package ldapwire
