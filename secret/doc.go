// Package secret expands environment references in configuration text.
//
// Configuration files reference secrets such as the refresh-endpoint signing
// key as ${VAR}. ExpandEnvStrict substitutes them at load time and fails when
// any referenced variable is unset.
package secret
