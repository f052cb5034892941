package identity

import "testing"

func TestSanitizeIdentifierReservedWord(t *testing.T) {
	final, sanitized := SanitizeIdentifier("default")
	if !sanitized {
		t.Fatalf("expected default to be sanitized")
	}
	if final != "default_" {
		t.Fatalf("expected default_, got %s", final)
	}
}

func TestSanitizeIdentifierFreeName(t *testing.T) {
	final, sanitized := SanitizeIdentifier("toByte")
	if sanitized {
		t.Fatalf("did not expect toByte to be sanitized")
	}
	if final != "toByte" {
		t.Fatalf("expected toByte, got %s", final)
	}
}

func TestSanitizeIdentifierInjective(t *testing.T) {
	a, _ := SanitizeIdentifier("class")
	b, _ := SanitizeIdentifier("interface")
	if a == b {
		t.Fatalf("distinct reserved words must not collide: %s == %s", a, b)
	}
}

func TestNoAssemblyGarbage(t *testing.T) {
	cases := map[string]bool{
		"System.Collections.Generic.List`1":                     true,
		"System.Collections.Generic.List`1[[System.String]]":    false,
		"System.Object, Culture=neutral":                        false,
		"System.Object, PublicKeyToken=b77a5c561934e089":         false,
	}
	for in, want := range cases {
		if got := NoAssemblyGarbage(in); got != want {
			t.Errorf("NoAssemblyGarbage(%q) = %v, want %v", in, got, want)
		}
	}
}
