package nbox

import "strings"

// NormalizeKey canonicalizes a structured-list key: leading slashes are
// stripped and the key is lowercased. Structured input is assumed to be
// path-shaped already, so no separator substitution happens here.
// Idempotent.
func NormalizeKey(raw string) string {
	return strings.ToLower(strings.TrimLeft(raw, "/"))
}

// NormalizeEnvKey canonicalizes a dotenv variable name into a path segment:
// lowercased, with underscores replaced by dashes. Dotenv names
// conventionally use FOO_BAR while store path segments use foo-bar.
// Idempotent.
func NormalizeEnvKey(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimLeft(raw, "/")), "_", "-")
}

// LookupKey derives the probe key used to find a pre-existing entry during
// changeset construction: the key is lowercased and dashes in the final
// path segment become underscores.
//
// This is the inverse of the dotenv key substitution, applied to the leaf
// only, on the assumption that pre-existing non-secure leaf keys are
// underscore-separated. The write path always uses the unmodified draft
// key, so the key read for the diff preview and the key written can
// differ. That asymmetry is shipped behavior and is kept as-is.
func LookupKey(key string) string {
	parts := strings.Split(strings.ToLower(key), "/")
	parts[len(parts)-1] = strings.ReplaceAll(parts[len(parts)-1], "-", "_")
	return strings.Join(parts, "/")
}
