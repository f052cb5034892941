package naming

import (
	"unicode"

	"github.com/tsoniclang/tsbindgen/internal/policy"
)

// CamelCase lowercases the leading run of uppercase letters in a requested
// identifier, e.g. "ToString" -> "toString", "IOStream" -> "ioStream".
func CamelCase(s string) string {
	return adjustLeadingCase(s, false)
}

// PascalCase uppercases the first letter of a requested identifier, e.g.
// "toString" -> "ToString".
func PascalCase(s string) string {
	return adjustLeadingCase(s, true)
}

func adjustLeadingCase(s string, upperFirst bool) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	if !unicode.IsLetter(runes[0]) {
		return s
	}
	if upperFirst {
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}
	// lowercase a leading acronym run, but leave the last letter of the
	// run alone if followed by a lowercase letter (IOStream -> ioStream,
	// not iOStream then oStream).
	end := 0
	for end < len(runes) && unicode.IsUpper(runes[end]) {
		end++
	}
	if end == 0 {
		return s
	}
	if end > 1 && end < len(runes) && unicode.IsLower(runes[end]) {
		end--
	}
	for i := 0; i < end; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// StyleTransformFor resolves a policy.NameTransform to the callable the
// Renamer installs via AdoptStyle.
func StyleTransformFor(t policy.NameTransform) func(string) string {
	switch t {
	case policy.TransformCamelCase:
		return CamelCase
	case policy.TransformPascalCase:
		return PascalCase
	default:
		return Preserve
	}
}
