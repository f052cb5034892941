// Package identity provides the pipeline's stable-identity and scope
// primitives: deriving a StableId from a type reference, and sanitizing a
// requested identifier against the TST's reserved words (spec §4.1).
package identity

import (
	"strconv"
	"strings"

	"github.com/tsoniclang/tsbindgen/internal/model"
)

// reservedWords is the TST's set of reserved identifiers: control-flow
// keywords, primitive type names, and modifier words. The sanitizer is the
// single owner of this set (spec §4.1) — no other component hand-rolls a
// reserved-word check.
var reservedWords = buildReservedWords()

func buildReservedWords() map[string]bool {
	words := []string{
		// control flow
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally",
		"yield", "await",
		// declarations
		"function", "class", "interface", "enum", "const", "let", "var",
		"type", "namespace", "module", "declare", "export", "import",
		"extends", "implements", "new", "delete", "instanceof", "typeof",
		"in", "of", "this", "super", "constructor", "get", "set", "static",
		"readonly", "abstract", "public", "private", "protected",
		// primitives / special types
		"string", "number", "boolean", "bigint", "symbol", "object", "any",
		"unknown", "never", "void", "null", "undefined", "true", "false",
		"Array", "Function", "Object", "Promise",
		// reserved-in-strict-mode
		"package", "arguments", "eval", "as", "from", "is", "keyof",
		"infer", "asserts", "satisfies", "override",
	}
	out := make(map[string]bool, len(words))
	for _, w := range words {
		out[w] = true
	}
	return out
}

// IsReserved reports whether name is one of the TST's reserved identifiers.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// SanitizeIdentifier applies the sanitation policy: if requested equals a
// reserved word, append exactly one trailing underscore. Idempotent on a
// request that is already sanitized (appending again would change a
// reserved word into a free one, so the second pass is a no-op) and
// injective on reserved inputs — no two distinct reserved words sanitize
// to the same output, since each keeps its own trailing underscore.
func SanitizeIdentifier(requested string) (final string, wasSanitized bool) {
	if reservedWords[requested] {
		return requested + "_", true
	}
	return requested, false
}

// StableIdForNamed derives the TypeStableId a NamedRef resolves to. Only
// the open-generic identity (assembly + CLR full name) participates —
// constructed type arguments are not part of a type's stable identity.
func StableIdForNamed(assembly string, ref model.NamedRef) model.TypeStableId {
	full := ref.SimpleName
	if ref.Namespace != "" {
		full = ref.Namespace + "." + ref.SimpleName
	}
	if ref.Arity > 0 {
		full = full + "`" + strconv.Itoa(ref.Arity)
	}
	return model.TypeStableId{Assembly: assembly, ClrFullName: full}
}

// NoAssemblyGarbage reports whether s is free of assembly-qualified text:
// no '[', no ", Culture=", no "PublicKeyToken=" (invariant 6, gate-checked
// in §4.14 and §4.8).
func NoAssemblyGarbage(s string) bool {
	if strings.ContainsRune(s, '[') {
		return false
	}
	if strings.Contains(s, ", Culture=") || strings.Contains(s, "Culture=") {
		return false
	}
	if strings.Contains(s, "PublicKeyToken=") {
		return false
	}
	return true
}
