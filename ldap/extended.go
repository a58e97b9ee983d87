// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// Context-specific tags used by the extended operation family.
const (
	ContextTagRequestName    = 0  // ExtendedRequest.requestName [0]
	ContextTagRequestValue   = 1  // ExtendedRequest.requestValue [1]
	ContextTagResponseName   = 10 // ExtendedResponse.responseName [10]
	ContextTagResponseValue  = 11 // ExtendedResponse.responseValue [11]
	ContextTagIntermedName   = 0  // IntermediateResponse.responseName [0]
	ContextTagIntermedValue  = 1  // IntermediateResponse.responseValue [1]
)

// ExtendedRequest represents an LDAP Extended Request.
// Per RFC 4511 Section 4.12:
// ExtendedRequest ::= [APPLICATION 23] SEQUENCE {
//
//	requestName      [0] LDAPOID,
//	requestValue     [1] OCTET STRING OPTIONAL
//
// }
//
// A requestName that is not registered with a known decoder is carried
// opaquely: its requestValue is passed through as-is rather than rejected,
// so a codec built on this package can relay operations it does not itself
// understand.
type ExtendedRequest struct {
	// OID is the object identifier naming the extended operation.
	OID string
	// Value is the optional, operation-specific request value.
	Value []byte
}

// ParseExtendedRequest parses the content of an [APPLICATION 23] ExtendedRequest.
func ParseExtendedRequest(data []byte) (*ExtendedRequest, error) {
	decoder := ber.NewBERDecoder(data)

	if !decoder.IsContextTag(ContextTagRequestName) {
		return nil, NewParseError(decoder.Offset(), "expected context tag [0] for requestName", nil)
	}
	tagNum, _, oidBytes, err := decoder.ReadTaggedValue()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read requestName", err)
	}
	if tagNum != ContextTagRequestName {
		return nil, NewParseError(decoder.Offset(), "expected context tag [0] for requestName", nil)
	}

	req := &ExtendedRequest{OID: string(oidBytes)}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagRequestValue) {
		tagNum, _, valueBytes, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read requestValue", err)
		}
		if tagNum != ContextTagRequestValue {
			return nil, NewParseError(decoder.Offset(), "expected context tag [1] for requestValue", nil)
		}
		req.Value = valueBytes
	}

	return req, nil
}

// Encode encodes the ExtendedRequest to BER format (without the APPLICATION tag).
func (r *ExtendedRequest) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()

	if len(r.Value) > 0 {
		if err := buf.WriteTaggedValue(ContextTagRequestValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteTaggedValue(ContextTagRequestName, false, []byte(r.OID)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExtendedResponse represents an LDAP Extended Response.
// Per RFC 4511 Section 4.12:
// ExtendedResponse ::= [APPLICATION 24] SEQUENCE {
//
//	COMPONENTS OF LDAPResult,
//	responseName     [10] LDAPOID OPTIONAL,
//	responseValue    [11] OCTET STRING OPTIONAL
//
// }
type ExtendedResponse struct {
	// LDAPResult contains the common result fields.
	LDAPResult
	// OID is the optional response OID.
	OID string
	// Value is the optional response value.
	Value []byte
}

// Encode encodes the ExtendedResponse to BER format. responseName and
// responseValue are the last declared fields, so they are written first.
func (r *ExtendedResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	if len(r.Value) > 0 {
		if err := buf.WriteTaggedValue(ContextTagResponseValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	if r.OID != "" {
		if err := buf.WriteTaggedValue(ContextTagResponseName, false, []byte(r.OID)); err != nil {
			return nil, err
		}
	}

	if err := r.LDAPResult.Encode(buf); err != nil {
		return nil, err
	}

	if err := buf.WrapApplicationTag(ApplicationExtendedResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseExtendedResponse parses the content of an [APPLICATION 24] ExtendedResponse.
func ParseExtendedResponse(data []byte) (*ExtendedResponse, error) {
	decoder := ber.NewBERDecoder(data)

	result, err := parseLDAPResult(decoder)
	if err != nil {
		return nil, err
	}

	resp := &ExtendedResponse{LDAPResult: result}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagResponseName) {
		tagNum, _, oidBytes, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		if tagNum != ContextTagResponseName {
			return nil, NewParseError(decoder.Offset(), "expected context tag [10] for responseName", nil)
		}
		resp.OID = string(oidBytes)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagResponseValue) {
		tagNum, _, valueBytes, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseValue", err)
		}
		if tagNum != ContextTagResponseValue {
			return nil, NewParseError(decoder.Offset(), "expected context tag [11] for responseValue", nil)
		}
		resp.Value = valueBytes
	}

	return resp, nil
}

// IntermediateResponse represents an LDAP Intermediate Response, used by
// extended operations that need to stream partial results before the final
// ExtendedResponse.
// Per RFC 4511 Section 4.13:
// IntermediateResponse ::= [APPLICATION 25] SEQUENCE {
//
//	responseName     [0] LDAPOID OPTIONAL,
//	responseValue    [1] OCTET STRING OPTIONAL
//
// }
type IntermediateResponse struct {
	// OID is the optional response OID.
	OID string
	// Value is the optional response value.
	Value []byte
}

// Encode encodes the IntermediateResponse to BER format.
func (r *IntermediateResponse) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()

	if len(r.Value) > 0 {
		if err := buf.WriteTaggedValue(ContextTagIntermedValue, false, r.Value); err != nil {
			return nil, err
		}
	}

	if r.OID != "" {
		if err := buf.WriteTaggedValue(ContextTagIntermedName, false, []byte(r.OID)); err != nil {
			return nil, err
		}
	}

	if err := buf.WrapApplicationTag(ApplicationIntermediateResponse, true, mark); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ParseIntermediateResponse parses the content of an
// [APPLICATION 25] IntermediateResponse.
func ParseIntermediateResponse(data []byte) (*IntermediateResponse, error) {
	decoder := ber.NewBERDecoder(data)

	resp := &IntermediateResponse{}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermedName) {
		tagNum, _, oidBytes, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseName", err)
		}
		if tagNum != ContextTagIntermedName {
			return nil, NewParseError(decoder.Offset(), "expected context tag [0] for responseName", nil)
		}
		resp.OID = string(oidBytes)
	}

	if decoder.Remaining() > 0 && decoder.IsContextTag(ContextTagIntermedValue) {
		tagNum, _, valueBytes, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, NewParseError(decoder.Offset(), "failed to read responseValue", err)
		}
		if tagNum != ContextTagIntermedValue {
			return nil, NewParseError(decoder.Offset(), "expected context tag [1] for responseValue", nil)
		}
		resp.Value = valueBytes
	}

	return resp, nil
}
