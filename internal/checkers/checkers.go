// Package checkers holds quicktest checkers shared by tests.
package checkers

import (
	"encoding/json"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"
	"github.com/yalp/jsonpath"
)

// JSONPathEquals returns a checker that decodes the got value as JSON
// (string or []byte), evaluates path against it and compares the result with
// the want argument. want is normalised through a JSON round-trip, so
// JSONPathEquals("$.total") accepts an int where the decoded value is a float64.
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{
		argNames: []string{"got", "want"},
		path:     path,
	}
}

type jsonPathChecker struct {
	argNames []string
	path     string
}

// ArgNames implements qt.Checker.
func (c *jsonPathChecker) ArgNames() []string { return c.argNames }

// Check implements qt.Checker.
func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var raw []byte
	switch v := got.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		note("got type", fmt.Sprintf("%T", got))
		return qt.BadCheckf("first argument is not a string or []byte")
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		note("error", err)
		return fmt.Errorf("got value is not valid JSON")
	}

	value, err := jsonpath.Read(doc, c.path)
	if err != nil {
		note("path", c.path)
		note("error", err)
		return fmt.Errorf("cannot evaluate JSON path")
	}

	want, err := normalize(args[0])
	if err != nil {
		note("error", err)
		return qt.BadCheckf("want argument cannot be encoded as JSON")
	}

	if diff := cmp.Diff(value, want); diff != "" {
		note("path", c.path)
		note("value", value)
		note("diff (-got +want)", qt.Unquoted(diff))
		return fmt.Errorf("JSON path value does not match")
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
