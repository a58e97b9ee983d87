// Package grammar implements a reusable, table-driven, streaming BER
// decoder: a grammar is a static map from (state, observed tag) to an
// action and a next state, and the Engine drives it over byte chunks that
// may arrive in arbitrary fragments.
//
// A concrete protocol builds a Table and a Container and hands both to an
// Engine. The ldap and filter packages of this module do not use it: they
// decode with their own single-pass parsers. The engine
// owns nothing protocol-specific: it tracks BER nesting with a TLVStack,
// looks up transitions, runs their actions against the caller's Container,
// and reports completion or a structured ProtocolError.
//
// # Streaming
//
// Feed may be called repeatedly with successive byte chunks. If the
// buffered bytes end mid-TLV, Feed returns (false, nil): no error, no
// progress lost, call Feed again once more bytes are available. A
// genuinely malformed TLV (bad tag, indefinite length, depth/size limits
// exceeded) returns a non-nil error and the Engine must not be reused.
package grammar
