package secret

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
)

// ErrMissingEnv indicates a referenced environment variable is not set.
var ErrMissingEnv = errors.New("secret: missing required environment variables")

// ExpandEnvStrict expands $VAR and ${VAR} references in s from the process
// environment. Every reference must resolve; the error names all unset
// variables in sorted order. $$ emits a literal $.
func ExpandEnvStrict(s string) (string, error) {
	return ExpandStrict(s, os.LookupEnv)
}

// ExpandStrict is ExpandEnvStrict with a caller-supplied lookup.
func ExpandStrict(s string, lookup func(string) (string, bool)) (string, error) {
	missing := make(map[string]struct{})

	out := os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		value, ok := lookup(name)
		if !ok {
			missing[name] = struct{}{}
		}
		return value
	})

	if len(missing) > 0 {
		names := slices.Sorted(maps.Keys(missing))
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(names, ", "))
	}
	return out, nil
}
