// Package ldap implements LDAP protocol message parsing and encoding
// as specified in RFC 4511.
package ldap

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// Attribute represents an LDAP attribute with its values
type Attribute struct {
	// Type is the attribute type name
	Type string
	// Values contains the attribute values
	Values [][]byte
	// Binary indicates whether Values should be treated as opaque octets
	// rather than text. It is not part of the wire encoding; it is set by
	// AddRequest.ApplyBinaryDetection after decoding.
	Binary bool
}

// AddRequest represents an LDAP Add Request
// AddRequest ::= [APPLICATION 8] SEQUENCE {
//
//	entry           LDAPDN,
//	attributes      AttributeList
//
// }
// AttributeList ::= SEQUENCE OF attribute Attribute
// Attribute ::= PartialAttribute(WITH VALUES)
// PartialAttribute ::= SEQUENCE {
//
//	type       AttributeDescription,
//	vals       SET OF value AttributeValue
//
// }
type AddRequest struct {
	// Entry is the DN of the entry to add
	Entry string
	// Attributes contains the attributes for the new entry
	Attributes []Attribute
}

// Errors for AddRequest parsing
var (
	// ErrEmptyEntry is returned when the entry DN is empty
	ErrEmptyEntry = errors.New("ldap: entry DN cannot be empty")
	// ErrInvalidAttribute is returned when an attribute is malformed
	ErrInvalidAttribute = errors.New("ldap: invalid attribute")
	// ErrEmptyAttributeValues is returned when an attribute has no values
	ErrEmptyAttributeValues = errors.New("ldap: attribute must have at least one value")
)

// ParseAddRequest parses an AddRequest from raw operation data.
// The data should be the contents of the APPLICATION 8 tag (without the tag and length).
func ParseAddRequest(data []byte) (*AddRequest, error) {
	if len(data) == 0 {
		return nil, NewParseError(0, "empty add request data", nil)
	}

	decoder := ber.NewBERDecoder(data)
	req := &AddRequest{}

	// Read entry DN (LDAPDN - OCTET STRING)
	entryBytes, err := decoder.ReadOctetString()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read entry DN", err)
	}
	req.Entry = string(entryBytes)

	// Read attributes (SEQUENCE OF Attribute)
	attrListLen, err := decoder.ExpectSequence()
	if err != nil {
		return nil, NewParseError(decoder.Offset(), "failed to read attributes sequence", err)
	}

	attrListEnd := decoder.Offset() + attrListLen
	var attributes []Attribute

	for decoder.Offset() < attrListEnd && decoder.Remaining() > 0 {
		attr, err := parseAttribute(decoder)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, attr)
	}

	req.Attributes = attributes
	return req, nil
}

// ApplyBinaryDetection sets Binary on each of req's Attributes using
// detector. Callers that never consult attribute value policy may leave
// detector nil, in which case this is a no-op.
func (req *AddRequest) ApplyBinaryDetection(detector BinaryAttributeDetector) {
	if detector == nil {
		return
	}
	for i := range req.Attributes {
		req.Attributes[i].Binary = detector.IsBinary(req.Attributes[i].Type)
	}
}

// parseAttribute parses a single attribute from the decoder
// Attribute ::= PartialAttribute(WITH VALUES)
// PartialAttribute ::= SEQUENCE {
//
//	type       AttributeDescription,
//	vals       SET OF value AttributeValue
//
// }
func parseAttribute(decoder *ber.BERDecoder) (Attribute, error) {
	attr := Attribute{}

	// Read the attribute SEQUENCE
	attrDecoder, err := decoder.ReadSequenceContents()
	if err != nil {
		return attr, NewParseError(decoder.Offset(), "failed to read attribute sequence", err)
	}

	// Read attribute type (OCTET STRING)
	typeBytes, err := attrDecoder.ReadOctetString()
	if err != nil {
		return attr, NewParseError(decoder.Offset(), "failed to read attribute type", err)
	}
	attr.Type = string(typeBytes)

	// Read attribute values (SET OF OCTET STRING)
	valSetLen, err := attrDecoder.ExpectSet()
	if err != nil {
		return attr, NewParseError(decoder.Offset(), "failed to read attribute values set", err)
	}

	valSetEnd := attrDecoder.Offset() + valSetLen
	var values [][]byte

	for attrDecoder.Offset() < valSetEnd && attrDecoder.Remaining() > 0 {
		valueBytes, err := attrDecoder.ReadOctetString()
		if err != nil {
			return attr, NewParseError(decoder.Offset(), "failed to read attribute value", err)
		}
		values = append(values, valueBytes)
	}

	attr.Values = values
	return attr, nil
}

// Encode encodes the AddRequest to BER format (without the APPLICATION tag).
// Fields are written in reverse declaration order (attributes, then entry).
func (r *AddRequest) Encode() ([]byte, error) {
	buf := ber.NewAsn1Buffer()

	// Write attributes (SEQUENCE OF Attribute), last declared first
	attrListMark := buf.Mark()
	for i := len(r.Attributes) - 1; i >= 0; i-- {
		if err := encodeAttribute(buf, r.Attributes[i]); err != nil {
			return nil, err
		}
	}
	if err := buf.WrapSequence(attrListMark); err != nil {
		return nil, err
	}

	// Write entry DN (OCTET STRING)
	if err := buf.WriteOctetString([]byte(r.Entry)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// encodeAttribute encodes a single attribute, writing values then type
// (reverse of declaration order) before wrapping the SEQUENCE.
func encodeAttribute(buf *ber.Asn1Buffer, attr Attribute) error {
	attrMark := buf.Mark()

	valSetMark := buf.Mark()
	for i := len(attr.Values) - 1; i >= 0; i-- {
		if err := buf.WriteOctetString(attr.Values[i]); err != nil {
			return err
		}
	}
	if err := buf.WrapSet(valSetMark); err != nil {
		return err
	}

	if err := buf.WriteOctetString([]byte(attr.Type)); err != nil {
		return err
	}

	return buf.WrapSequence(attrMark)
}

// GetAttribute returns the first attribute with the given type name, or nil if not found.
func (r *AddRequest) GetAttribute(attrType string) *Attribute {
	for i := range r.Attributes {
		if r.Attributes[i].Type == attrType {
			return &r.Attributes[i]
		}
	}
	return nil
}

// GetAttributeValues returns all values for the given attribute type, or nil if not found.
func (r *AddRequest) GetAttributeValues(attrType string) [][]byte {
	attr := r.GetAttribute(attrType)
	if attr == nil {
		return nil
	}
	return attr.Values
}

// GetAttributeStringValues returns all values for the given attribute type as strings.
func (r *AddRequest) GetAttributeStringValues(attrType string) []string {
	values := r.GetAttributeValues(attrType)
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = string(v)
	}
	return result
}
