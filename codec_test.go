package ldapwire

import (
	"bytes"
	"testing"

	"github.com/KilimcininKorOglu/ldapwire/filter"
	"github.com/KilimcininKorOglu/ldapwire/ldap"
	"github.com/KilimcininKorOglu/ldapwire/registry/controls"
)

func buildBindRequestMessage(t *testing.T, msgID int, ctrls []ldap.Control) []byte {
	t.Helper()
	req := &ldap.BindRequest{Version: 3, Name: "cn=admin,dc=example,dc=com", AuthMethod: ldap.AuthMethodSimple, SimplePassword: []byte("secret")}
	data, err := req.Encode()
	if err != nil {
		t.Fatalf("BindRequest.Encode: %v", err)
	}
	msg := &ldap.LDAPMessage{
		MessageID: msgID,
		Operation: &ldap.RawOperation{Tag: ldap.ApplicationBindRequest, Data: data},
		Controls:  ctrls,
	}
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("LDAPMessage.Encode: %v", err)
	}
	return encoded
}

func TestCodec_DecodeEncodeRoundTrip(t *testing.T) {
	c := New(DefaultConfig())
	encoded := buildBindRequestMessage(t, 1, nil)

	msg, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Operation.Tag != ldap.ApplicationBindRequest {
		t.Fatalf("Operation.Tag = %d, want BindRequest", msg.Operation.Tag)
	}

	reencoded, err := c.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, reencoded) {
		t.Error("round trip through Codec.Decode/Encode did not reproduce the original bytes")
	}
}

func TestCodec_Decode_EnforcesMaxPDUSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPDUSize = 4
	c := New(cfg)

	encoded := buildBindRequestMessage(t, 1, nil)
	if _, err := c.Decode(encoded); err != ErrPDUTooLarge {
		t.Errorf("Decode with oversized PDU: err = %v, want ErrPDUTooLarge", err)
	}
}

func TestCodec_DecodeControl_Dispatch(t *testing.T) {
	c := New(DefaultConfig())
	if err := c.Registry.RegisterControl(controls.ManageDsaIT()); err != nil {
		t.Fatalf("RegisterControl: %v", err)
	}

	ctrl := ldap.Control{OID: controls.ManageDsaITOID, Criticality: true}
	encoded := buildBindRequestMessage(t, 1, []ldap.Control{ctrl})

	msg, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(msg.Controls) != 1 {
		t.Fatalf("Controls = %d, want 1", len(msg.Controls))
	}

	v, err := c.DecodeControl(msg.Controls[0])
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if _, ok := v.(controls.ManageDsaITValue); !ok {
		t.Errorf("DecodeControl returned %T, want controls.ManageDsaITValue", v)
	}
}

func TestCodec_DecodeControl_UnknownCritical(t *testing.T) {
	c := New(DefaultConfig())
	ctrl := ldap.Control{OID: "1.2.3.4.5", Criticality: true}
	if _, err := c.DecodeControl(ctrl); err == nil {
		t.Error("DecodeControl with an unregistered critical control should error")
	}
}

func TestCodec_DecodeSearchRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFilterDepth = 5
	c := New(cfg)

	req := &ldap.SearchRequest{
		BaseObject: "dc=example,dc=com",
		Scope:      ldap.ScopeWholeSubtree,
		Filter:     filter.NewEqualityFilter("uid", []byte("jdoe")),
	}
	data, err := req.Encode()
	if err != nil {
		t.Fatalf("SearchRequest.Encode: %v", err)
	}

	got, err := c.DecodeSearchRequest(&ldap.RawOperation{Tag: ldap.ApplicationSearchRequest, Data: data})
	if err != nil {
		t.Fatalf("DecodeSearchRequest: %v", err)
	}
	if got.BaseObject != req.BaseObject {
		t.Errorf("BaseObject = %q, want %q", got.BaseObject, req.BaseObject)
	}

	if _, err := c.DecodeSearchRequest(&ldap.RawOperation{Tag: ldap.ApplicationBindRequest, Data: data}); err != ErrNotSearchRequest {
		t.Errorf("DecodeSearchRequest on wrong tag: err = %v, want ErrNotSearchRequest", err)
	}
}

func TestCodec_DecodeAttributeValues(t *testing.T) {
	c := New(DefaultConfig())
	entry := &ldap.SearchResultEntry{
		ObjectName: "uid=jdoe,dc=example,dc=com",
		Attributes: []ldap.PartialAttribute{
			{Type: "userCertificate", Values: [][]byte{[]byte{0x01, 0x02}}},
			{Type: "cn", Values: [][]byte{[]byte("John Doe")}},
		},
	}

	c.DecodeAttributeValues(entry)

	if !entry.Attributes[0].Binary {
		t.Error("userCertificate should be detected as binary by the default attrvalue policy")
	}
	if entry.Attributes[1].Binary {
		t.Error("cn should not be detected as binary")
	}
}
