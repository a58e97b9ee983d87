// Package registry implements the OID-keyed dispatch table for LDAP
// controls, extended operations and intermediate responses described in
// RFC 4511 Sections 4.1.11, 4.12 and 4.13.
//
// A Registry is never a package-level singleton: callers construct one with
// New and hand it to the top-level Codec, so two codecs in the same process
// can register distinct sets of controls without interfering with each
// other. Registry itself is wire-format agnostic — it maps an OID to a
// typed Decode/Encode pair operating on raw bytes; it knows nothing about
// ldap.Control or ldap.ExtendedRequest, which are bridged to it by the
// root package.
package registry
