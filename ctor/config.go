package ctor

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// YAML returns a [kong.ConfigurationLoader] for YAML documents.
//
// Flag values are looked up by flag name, with hyphens optionally written
// as underscores:
//
//	log-level: debug
//	list_1: [30, 15]
//
// When the document has a top-level mapping keyed by section, only that
// mapping is used. This lets several programs share one file:
//
//	foo:
//	  var2: 5
//	bar:
//	  verbose: true
func YAML(section string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		values := map[string]any{}
		if err := yaml.NewDecoder(r).Decode(&values); err != nil {
			if errors.Is(err, io.EOF) {
				return resolver{}, nil
			}

			return nil, err
		}

		if sub, ok := values[section].(map[string]any); ok && section != "" {
			values = sub
		}

		return resolver(flatten(values)), nil
	}
}

// resolver implements [kong.Resolver] over decoded configuration values.
type resolver map[string]any

// Validate implements [kong.Resolver].
func (resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := r[flag.Name]; ok {
		return v, nil
	}

	if v, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}

// flatten converts decoded values into forms kong's mappers accept.
// Numbers become strings, and sequences hold strings.
func flatten(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = native(v)
	}

	return out
}

func native(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = native(e)
		}

		return out
	case map[string]any:
		return flatten(v)
	default:
		return v
	}
}

// loader selects the configuration loader for path by its extension.
func loader(path, section string) kong.ConfigurationLoader {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return kong.JSON
	}

	return YAML(section)
}
