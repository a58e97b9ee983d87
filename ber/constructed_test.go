package ber

import (
	"bytes"
	"testing"
)

// TestSequenceEncodeDecode tests basic SEQUENCE encoding and decoding.
func TestSequenceEncodeDecode(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		if err := enc.WrapSequence(mark); err != nil {
			t.Fatalf("WrapSequence failed: %v", err)
		}

		expected := []byte{0x30, 0x00}
		if !bytes.Equal(enc.Bytes(), expected) {
			t.Errorf("expected %x, got %x", expected, enc.Bytes())
		}

		dec := NewBERDecoder(enc.Bytes())
		length, err := dec.ExpectSequence()
		if err != nil {
			t.Fatalf("ExpectSequence failed: %v", err)
		}
		if length != 0 {
			t.Errorf("expected length 0, got %d", length)
		}
	})

	t.Run("sequence with one integer", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		enc.WriteInteger(42)
		if err := enc.WrapSequence(mark); err != nil {
			t.Fatalf("WrapSequence failed: %v", err)
		}

		expected := []byte{0x30, 0x03, 0x02, 0x01, 0x2A}
		if !bytes.Equal(enc.Bytes(), expected) {
			t.Errorf("expected %x, got %x", expected, enc.Bytes())
		}

		dec := NewBERDecoder(enc.Bytes())
		contents, err := dec.ReadSequenceContents()
		if err != nil {
			t.Fatalf("ReadSequenceContents failed: %v", err)
		}
		v, err := contents.ReadInteger()
		if err != nil {
			t.Fatalf("ReadInteger failed: %v", err)
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	})

	t.Run("sequence with multiple fields, written in reverse", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		enc.WriteOctetString([]byte("bob"))
		enc.WriteInteger(3)
		if err := enc.WrapSequence(mark); err != nil {
			t.Fatalf("WrapSequence failed: %v", err)
		}

		dec := NewBERDecoder(enc.Bytes())
		contents, err := dec.ReadSequenceContents()
		if err != nil {
			t.Fatalf("ReadSequenceContents failed: %v", err)
		}
		v, err := contents.ReadInteger()
		if err != nil || v != 3 {
			t.Fatalf("expected integer 3, got %d (err %v)", v, err)
		}
		s, err := contents.ReadOctetString()
		if err != nil || !bytes.Equal(s, []byte("bob")) {
			t.Fatalf("expected octet string 'bob', got %q (err %v)", s, err)
		}
	})
}

func TestSetEncodeDecode(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		if err := enc.WrapSet(mark); err != nil {
			t.Fatalf("WrapSet failed: %v", err)
		}

		expected := []byte{0x31, 0x00}
		if !bytes.Equal(enc.Bytes(), expected) {
			t.Errorf("expected %x, got %x", expected, enc.Bytes())
		}

		dec := NewBERDecoder(enc.Bytes())
		length, err := dec.ExpectSet()
		if err != nil || length != 0 {
			t.Fatalf("ExpectSet failed: length=%d err=%v", length, err)
		}
	})

	t.Run("set with booleans", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		enc.WriteBoolean(false)
		enc.WriteBoolean(true)
		if err := enc.WrapSet(mark); err != nil {
			t.Fatalf("WrapSet failed: %v", err)
		}

		dec := NewBERDecoder(enc.Bytes())
		contents, err := dec.ReadSetContents()
		if err != nil {
			t.Fatalf("ReadSetContents failed: %v", err)
		}
		first, err := contents.ReadBoolean()
		if err != nil || first != true {
			t.Fatalf("expected true, got %v (err %v)", first, err)
		}
		second, err := contents.ReadBoolean()
		if err != nil || second != false {
			t.Fatalf("expected false, got %v (err %v)", second, err)
		}
	})
}

// TestNestedSequences exercises sequences nested to several levels, each
// wrapped from the innermost outward as the reverse buffer requires.
func TestNestedSequences(t *testing.T) {
	enc := NewAsn1Buffer()

	outerMark := enc.Mark()
	innerMark := enc.Mark()
	enc.WriteInteger(7)
	if err := enc.WrapSequence(innerMark); err != nil {
		t.Fatalf("inner WrapSequence failed: %v", err)
	}
	if err := enc.WrapSequence(outerMark); err != nil {
		t.Fatalf("outer WrapSequence failed: %v", err)
	}

	dec := NewBERDecoder(enc.Bytes())
	outer, err := dec.ReadSequenceContents()
	if err != nil {
		t.Fatalf("outer ReadSequenceContents failed: %v", err)
	}
	inner, err := outer.ReadSequenceContents()
	if err != nil {
		t.Fatalf("inner ReadSequenceContents failed: %v", err)
	}
	v, err := inner.ReadInteger()
	if err != nil || v != 7 {
		t.Fatalf("expected 7, got %d (err %v)", v, err)
	}
}

func TestThreeLevelNesting(t *testing.T) {
	enc := NewAsn1Buffer()

	pos1 := enc.Mark()
	pos2 := enc.Mark()
	pos3 := enc.Mark()
	enc.WriteInteger(1)
	if err := enc.WrapSequence(pos3); err != nil {
		t.Fatalf("level 3 WrapSequence failed: %v", err)
	}
	if err := enc.WrapSequence(pos2); err != nil {
		t.Fatalf("level 2 WrapSequence failed: %v", err)
	}
	if err := enc.WrapSequence(pos1); err != nil {
		t.Fatalf("level 1 WrapSequence failed: %v", err)
	}

	dec := NewBERDecoder(enc.Bytes())
	l1, err := dec.ReadSequenceContents()
	if err != nil {
		t.Fatalf("level 1 failed: %v", err)
	}
	l2, err := l1.ReadSequenceContents()
	if err != nil {
		t.Fatalf("level 2 failed: %v", err)
	}
	l3, err := l2.ReadSequenceContents()
	if err != nil {
		t.Fatalf("level 3 failed: %v", err)
	}
	v, err := l3.ReadInteger()
	if err != nil || v != 1 {
		t.Fatalf("expected 1, got %d (err %v)", v, err)
	}
}

func TestContextTagEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		num  int
		v    int64
	}{
		{"tag 0", 0, 3},
		{"tag 3", 3, -1},
		{"tag 7", 7, 0},
		{"tag 31 long form", 31, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewAsn1Buffer()
			mark := enc.Mark()
			encoded := encodeInteger(tt.v)
			enc.WriteRaw(encoded)
			if err := enc.WrapContextTag(tt.num, mark); err != nil {
				t.Fatalf("WrapContextTag failed: %v", err)
			}

			dec := NewBERDecoder(enc.Bytes())
			length, err := dec.ExpectContextTag(tt.num)
			if err != nil {
				t.Fatalf("ExpectContextTag failed: %v", err)
			}
			if length != len(encoded) {
				t.Errorf("expected length %d, got %d", len(encoded), length)
			}
		})
	}
}

func TestApplicationTagEncodeDecode(t *testing.T) {
	tests := []struct {
		name        string
		num         int
		constructed bool
	}{
		{"primitive application tag", 2, false},
		{"constructed application tag", 0, true},
		{"application tag 24 (extended)", 24, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewAsn1Buffer()
			mark := enc.Mark()
			if tt.constructed {
				enc.WriteInteger(1)
			} else {
				enc.WriteRaw([]byte{0x01})
			}
			if err := enc.WrapApplicationTag(tt.num, tt.constructed, mark); err != nil {
				t.Fatalf("WrapApplicationTag failed: %v", err)
			}

			dec := NewBERDecoder(enc.Bytes())
			length, err := dec.ExpectApplicationTag(tt.num)
			if err != nil {
				t.Fatalf("ExpectApplicationTag failed: %v", err)
			}
			if length <= 0 {
				t.Errorf("expected non-zero length, got %d", length)
			}
		})
	}
}

// TestBindRequestShape builds something resembling an LDAP BindRequest
// (messageID SEQUENCE wrapping an APPLICATION 0 that itself wraps a
// context tag 0 for simple auth) to exercise multi-level mixed nesting.
func TestBindRequestShape(t *testing.T) {
	enc := NewAsn1Buffer()

	msgMark := enc.Mark()

	bindMark := enc.Mark()
	if err := enc.WriteTaggedValue(0, false, []byte("secret")); err != nil {
		t.Fatalf("auth WriteTaggedValue failed: %v", err)
	}
	enc.WriteOctetString([]byte("cn=admin,dc=example,dc=com"))
	enc.WriteInteger(3)
	if err := enc.WrapApplicationTag(0, true, bindMark); err != nil {
		t.Fatalf("bind WrapApplicationTag failed: %v", err)
	}
	enc.WriteInteger(1)
	if err := enc.WrapSequence(msgMark); err != nil {
		t.Fatalf("message WrapSequence failed: %v", err)
	}

	dec := NewBERDecoder(enc.Bytes())
	msg, err := dec.ReadSequenceContents()
	if err != nil {
		t.Fatalf("ReadSequenceContents failed: %v", err)
	}
	id, err := msg.ReadInteger()
	if err != nil || id != 1 {
		t.Fatalf("expected messageID 1, got %d (err %v)", id, err)
	}
	if !msg.IsApplicationTag(0) {
		t.Fatalf("expected application tag 0 next")
	}
	bind, err := msg.ReadApplicationTagContents(0)
	if err != nil {
		t.Fatalf("ReadApplicationTagContents failed: %v", err)
	}
	version, err := bind.ReadInteger()
	if err != nil || version != 3 {
		t.Fatalf("expected version 3, got %d (err %v)", version, err)
	}
	name, err := bind.ReadOctetString()
	if err != nil || !bytes.Equal(name, []byte("cn=admin,dc=example,dc=com")) {
		t.Fatalf("unexpected name %q (err %v)", name, err)
	}
	if !bind.IsContextTag(0) {
		t.Fatalf("expected context tag 0 for simple auth")
	}
	authTag, constructed, authValue, err := bind.ReadTaggedValue()
	if err != nil {
		t.Fatalf("ReadTaggedValue failed: %v", err)
	}
	if authTag != 0 || constructed {
		t.Fatalf("unexpected auth tag %d constructed=%v", authTag, constructed)
	}
	if !bytes.Equal(authValue, []byte("secret")) {
		t.Fatalf("unexpected auth value %q", authValue)
	}
}

func TestEmptyConstructedTypes(t *testing.T) {
	t.Run("empty sequence round trip", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		if err := enc.WrapSequence(mark); err != nil {
			t.Fatalf("WrapSequence failed: %v", err)
		}
		dec := NewBERDecoder(enc.Bytes())
		length, err := dec.ExpectSequence()
		if err != nil || length != 0 {
			t.Fatalf("expected empty sequence, got length=%d err=%v", length, err)
		}
	})

	t.Run("empty context tag", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		if err := enc.WrapContextTag(5, mark); err != nil {
			t.Fatalf("WrapContextTag failed: %v", err)
		}
		dec := NewBERDecoder(enc.Bytes())
		length, err := dec.ExpectContextTag(5)
		if err != nil || length != 0 {
			t.Fatalf("expected empty context tag, got length=%d err=%v", length, err)
		}
	})

	t.Run("empty application tag", func(t *testing.T) {
		enc := NewAsn1Buffer()
		mark := enc.Mark()
		if err := enc.WrapApplicationTag(2, true, mark); err != nil {
			t.Fatalf("WrapApplicationTag failed: %v", err)
		}
		dec := NewBERDecoder(enc.Bytes())
		length, err := dec.ExpectApplicationTag(2)
		if err != nil || length != 0 {
			t.Fatalf("expected empty application tag, got length=%d err=%v", length, err)
		}
	})
}
