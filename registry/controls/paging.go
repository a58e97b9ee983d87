package controls

import (
	"github.com/KilimcininKorOglu/ldapwire/ber"
	"github.com/KilimcininKorOglu/ldapwire/registry"
)

// PagingOID is the Simple Paged Results control described in RFC 2696.
const PagingOID = "1.2.840.113556.1.4.319"

// PagingValue is the decoded representation of the Paging control.
// Per RFC 2696:
// realSearchControlValue ::= SEQUENCE {
//
//	size      INTEGER,
//	cookie    OCTET STRING
//
// }
type PagingValue struct {
	// Size is the requested page size (in a request) or the estimated
	// total result count (in a response); servers that do not estimate
	// set it to zero.
	Size int64
	// Cookie is opaque server state threading successive page requests
	// together; an empty cookie signals the final page.
	Cookie []byte
}

// Paging returns the ControlFactory for the Simple Paged Results control.
func Paging() registry.ControlFactory {
	return registry.ControlFactory{
		OID:    PagingOID,
		Decode: decodePaging,
		Encode: encodePaging,
	}
}

func decodePaging(value []byte) (any, error) {
	decoder := ber.NewBERDecoder(value)

	if _, err := decoder.ExpectSequence(); err != nil {
		return nil, err
	}

	size, err := decoder.ReadInteger()
	if err != nil {
		return nil, err
	}

	cookie, err := decoder.ReadOctetString()
	if err != nil {
		return nil, err
	}

	return PagingValue{Size: size, Cookie: cookie}, nil
}

func encodePaging(v any) ([]byte, error) {
	pv, ok := v.(PagingValue)
	if !ok {
		return nil, ErrUnexpectedControlValue
	}

	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	if err := buf.WriteOctetString(pv.Cookie); err != nil {
		return nil, err
	}
	if err := buf.WriteInteger(pv.Size); err != nil {
		return nil, err
	}
	if err := buf.WrapSequence(mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
