// Package filter provides the LDAP search filter CHOICE type and its two
// encodings: the RFC 4515 string form and the RFC 4511 §4.5.1 tagged BER
// wire form.
//
// # Overview
//
// The filter package implements LDAP search filter parsing and wire
// encoding as defined in RFC 4511. It supports all standard filter types:
//
//   - AND (&): Logical conjunction of filters
//   - OR (|): Logical disjunction of filters
//   - NOT (!): Logical negation of a filter
//   - Equality (=): Exact attribute value match
//   - Substring (*): Pattern matching with wildcards
//   - Greater-or-Equal (>=): Comparison filter
//   - Less-or-Equal (<=): Comparison filter
//   - Present (=*): Attribute existence check
//   - Approximate (~=): Fuzzy matching
//
// # Filter Construction
//
// Filters can be constructed programmatically:
//
//	// Simple equality filter: (uid=alice)
//	f := filter.NewEqualityFilter("uid", []byte("alice"))
//
//	// Presence filter: (mail=*)
//	f := filter.NewPresentFilter("mail")
//
//	// AND filter: (&(objectClass=person)(uid=alice))
//	f := filter.NewAndFilter(
//	    filter.NewEqualityFilter("objectClass", []byte("person")),
//	    filter.NewEqualityFilter("uid", []byte("alice")),
//	)
//
//	// NOT filter: (!(status=disabled))
//	f := filter.NewNotFilter(
//	    filter.NewEqualityFilter("status", []byte("disabled")),
//	)
//
// # Substring Filters
//
// Substring filters support initial, any, and final components:
//
//	// (cn=John*)
//	sf := &filter.SubstringFilter{
//	    Attribute: "cn",
//	    Initial:   []byte("John"),
//	}
//	f := filter.NewSubstringFilter(sf)
//
//	// (cn=*Smith)
//	sf := &filter.SubstringFilter{
//	    Attribute: "cn",
//	    Final:     []byte("Smith"),
//	}
//
//	// (cn=*admin*)
//	sf := &filter.SubstringFilter{
//	    Attribute: "cn",
//	    Any:       [][]byte{[]byte("admin")},
//	}
//
// # Wire Encoding
//
// Decode reads the tagged-CHOICE wire form directly from a BER decoder
// (used by ldap.ParseSearchRequest to read the filter embedded in a
// SearchRequest); Encode writes it back using the same reverse Asn1Buffer
// every other ldap operation type uses:
//
//	f, err := filter.Decode(decoder)
//	...
//	buf := ber.NewAsn1Buffer()
//	err = f.Encode(buf)
//
// Decode guards against unbounded AND/OR/NOT nesting via MaxDepth.
//
// The Entry type supplies a directory-independent representation an
// embedder can use as the target of its own match evaluation; this
// package does not itself evaluate a Filter against an Entry.
package filter
