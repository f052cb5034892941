// Package pathplan implements the Path Planner (spec §4.9): converts a
// (source namespace, target namespace) pair into a relative module
// specifier under the fixed directory scheme every emitted package uses.
package pathplan

const rootNamespace = ""

// dirFor maps a namespace name to its directory: the root namespace maps
// to "_root", everything else to "<ns>/internal/index".
func dirFor(ns string) string {
	if ns == rootNamespace {
		return "_root"
	}
	return ns + "/internal/index"
}

// Specifier computes the relative module specifier from source to target.
// Stable under the same (source, target) pair regardless of traversal
// order — it never consults anything but the two namespace names.
func Specifier(source, target string) string {
	if source == rootNamespace {
		if target == rootNamespace {
			return "./_root/index"
		}
		return "./" + dirFor(target)
	}
	if target == rootNamespace {
		return "../_root/index"
	}
	return "../" + dirFor(target)
}
