package nbox

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SecureSelector picks which of the parsed dotenv variable names should be
// stored as secure entries. It is a blocking capability (an interactive
// checkbox prompt in the CLI); tests inject a fixed answer. A nil selector
// or a nil result means no entry is secure.
type SecureSelector func(names []string) []string

// ParseEntryList parses structured JSON input: a list of objects each
// carrying "key" and "value" and an optional "secure" flag. Every element
// yields one draft with a normalized key.
//
// The root must be a list of objects and every element must carry both
// required fields; anything else fails with ErrUnsupportedFormat. A
// non-string key fails with ErrInvalidInput.
func ParseEntryList(content []byte) ([]Entry, error) {
	dec := json.NewDecoder(strings.NewReader(string(content)))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	list, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: root must be a list", ErrUnsupportedFormat)
	}

	entries := make([]Entry, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrUnsupportedFormat, i)
		}

		rawKey, ok := obj["key"]
		if !ok {
			return nil, fmt.Errorf("%w: element %d must contain 'key' and 'value' fields", ErrUnsupportedFormat, i)
		}
		value, ok := obj["value"]
		if !ok || value == nil {
			return nil, fmt.Errorf("%w: element %d must contain 'key' and 'value' fields", ErrUnsupportedFormat, i)
		}

		key, ok := rawKey.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d key must be a string", ErrInvalidInput, i)
		}

		secure, _ := obj["secure"].(bool)

		entries = append(entries, Entry{
			Key:    NormalizeKey(key),
			Value:  value,
			Secure: secure,
		})
	}

	return entries, nil
}

// ParseDotenv parses line-oriented KEY=VALUE input into drafts under
// basePath. Blank lines, comment lines, and lines without "=" are skipped;
// the split happens on the first "=" so values may contain the separator.
// One layer of matching surrounding quotes is stripped from values.
//
// After parsing, selectSecure is invoked with every variable name so the
// caller can mark a subset as secure. Callers must validate that basePath
// is non-empty before calling; the parser joins it verbatim.
func ParseDotenv(content, basePath string, selectSecure SecureSelector) []Entry {
	type envVar struct {
		name  string
		value string
	}

	var vars []envVar
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		name = NormalizeEnvKey(strings.TrimSpace(name))
		value = unquote(strings.TrimSpace(value))

		vars = append(vars, envVar{name: name, value: value})
	}

	if len(vars) == 0 {
		return nil
	}

	secure := make(map[string]bool)
	if selectSecure != nil {
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.name
		}
		for _, name := range selectSecure(names) {
			secure[name] = true
		}
	}

	prefix := strings.TrimSuffix(basePath, "/")

	entries := make([]Entry, len(vars))
	for i, v := range vars {
		entries[i] = Entry{
			Key:    prefix + "/" + v.name,
			Value:  v.value,
			Secure: secure[v.name],
		}
	}

	return entries
}

// unquote strips one layer of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
