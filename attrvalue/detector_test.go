package attrvalue

import "testing"

func TestDetector_IsBinary_DefaultNames(t *testing.T) {
	d := New(nil)

	cases := []struct {
		attr string
		want bool
	}{
		{"userCertificate", true},
		{"jpegPhoto", true},
		{"cn", false},
		{"mail", false},
	}
	for _, c := range cases {
		if got := d.IsBinary(c.attr); got != c.want {
			t.Errorf("IsBinary(%q) = %v, want %v", c.attr, got, c.want)
		}
	}
}

func TestDetector_IsBinary_BinaryOption(t *testing.T) {
	d := New(nil)
	if !d.IsBinary("caCertificate;binary") {
		t.Error("an explicit ;binary option should always report true")
	}
	if !d.IsBinary("caCertificate;BINARY") {
		t.Error("the ;binary option should be matched case-insensitively")
	}
}

func TestDetector_IsBinary_SyntaxLookup(t *testing.T) {
	d := New(func(attributeID string) (string, bool) {
		if attributeID == "photoURL" {
			return SyntaxJPEG, true
		}
		return "", false
	})
	if !d.IsBinary("photoURL") {
		t.Error("an attribute whose resolved syntax is in the binary-syntax set should report true")
	}
	if d.IsBinary("description") {
		t.Error("an attribute the lookup does not resolve should fall back to false")
	}
}

func TestDetector_AddRemoveBinaryAttribute(t *testing.T) {
	d := New(nil)
	if d.IsBinary("customBlob") {
		t.Fatal("customBlob should not be binary before being added")
	}

	d.AddBinaryAttribute("customBlob")
	if !d.IsBinary("customBlob") {
		t.Error("customBlob should be binary after AddBinaryAttribute")
	}

	d.RemoveBinaryAttribute("customBlob")
	if d.IsBinary("customBlob") {
		t.Error("customBlob should no longer be binary after RemoveBinaryAttribute")
	}
}

func TestDetector_AddRemoveBinarySyntax(t *testing.T) {
	const customSyntax = "1.2.3.4.5.6"
	lookup := func(attributeID string) (string, bool) {
		return customSyntax, true
	}
	d := New(lookup)

	if d.IsBinary("anything") {
		t.Fatal("a syntax not yet registered should not be treated as binary")
	}

	d.AddBinarySyntax(customSyntax)
	if !d.IsBinary("anything") {
		t.Error("an attribute resolving to a newly-registered binary syntax should report true")
	}

	d.RemoveBinarySyntax(customSyntax)
	if d.IsBinary("anything") {
		t.Error("the syntax should no longer be treated as binary after removal")
	}
}
