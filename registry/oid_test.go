package registry

import "testing"

func TestParseOID_Valid(t *testing.T) {
	cases := []string{
		"1.2.840.113556.1.4.319",
		"2.16.840.1.113730.3.4.2",
		"1.3.6.1.4.1.42.2.27.8.5.1",
		"0.0",
	}
	for _, oid := range cases {
		if _, err := ParseOID(oid); err != nil {
			t.Errorf("ParseOID(%q) = %v, want nil", oid, err)
		}
	}
}

func TestParseOID_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1.",
		".1.2",
		"1.02.3",
		"1.2.abc",
		"1.-2.3",
	}
	for _, oid := range cases {
		if _, err := ParseOID(oid); err == nil {
			t.Errorf("ParseOID(%q) = nil error, want ErrInvalidOID", oid)
		}
	}
}
