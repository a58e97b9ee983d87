package registry

import (
	"bytes"
	"testing"
)

func echoControlFactory(oid string) ControlFactory {
	return ControlFactory{
		OID: oid,
		Decode: func(value []byte) (any, error) {
			return append([]byte(nil), value...), nil
		},
		Encode: func(v any) ([]byte, error) {
			return v.([]byte), nil
		},
	}
}

func TestRegistry_DecodeControl_Registered(t *testing.T) {
	r := New()
	if err := r.RegisterControl(echoControlFactory("1.2.3.4")); err != nil {
		t.Fatalf("RegisterControl: %v", err)
	}

	v, err := r.DecodeControl("1.2.3.4", false, []byte("hello"))
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if got, ok := v.([]byte); !ok || !bytes.Equal(got, []byte("hello")) {
		t.Errorf("DecodeControl = %v, want []byte(\"hello\")", v)
	}
}

func TestRegistry_DecodeControl_UnregisteredNonCritical(t *testing.T) {
	r := New()
	v, err := r.DecodeControl("1.2.3.4", false, []byte("hello"))
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	opaque, ok := v.(OpaqueControl)
	if !ok {
		t.Fatalf("DecodeControl = %T, want OpaqueControl", v)
	}
	if opaque.OID != "1.2.3.4" || !bytes.Equal(opaque.Value, []byte("hello")) {
		t.Errorf("OpaqueControl = %+v", opaque)
	}
}

func TestRegistry_DecodeControl_UnregisteredCritical(t *testing.T) {
	r := New()
	if _, err := r.DecodeControl("1.2.3.4", true, nil); err != ErrUnknownCriticalControl {
		t.Errorf("DecodeControl = %v, want ErrUnknownCriticalControl", err)
	}
}

func TestRegistry_RegisterControl_RejectsInvalidOID(t *testing.T) {
	r := New()
	if err := r.RegisterControl(echoControlFactory("notanoid")); err != ErrUnregisteredOID {
		t.Errorf("RegisterControl = %v, want ErrUnregisteredOID", err)
	}
}

func TestRegistry_DecodeExtended_Unregistered(t *testing.T) {
	r := New()
	v, err := r.DecodeExtended("1.2.3.4", []byte("payload"))
	if err != nil {
		t.Fatalf("DecodeExtended: %v", err)
	}
	opaque, ok := v.(OpaqueExtendedRequest)
	if !ok || opaque.OID != "1.2.3.4" {
		t.Errorf("DecodeExtended = %+v, want OpaqueExtendedRequest", v)
	}
}

func TestRegistry_DecodeIntermediate_Unregistered(t *testing.T) {
	r := New()
	v, err := r.DecodeIntermediate("1.2.3.4", []byte("payload"))
	if err != nil {
		t.Fatalf("DecodeIntermediate: %v", err)
	}
	if _, ok := v.(OpaqueIntermediateResponse); !ok {
		t.Errorf("DecodeIntermediate = %T, want OpaqueIntermediateResponse", v)
	}
}
