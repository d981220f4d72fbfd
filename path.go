package courier

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// pathPlaceholders returns the placeholder names in a template, in order.
func pathPlaceholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// compilePath substitutes every {placeholder} in the template with the
// natural string form of the referenced field's current value. Declaration
// validation guarantees each placeholder names a known field, so failures
// here are value-level: a nil field cannot parametrize a path.
func compilePath(template string, roles *roleSet, instance reflect.Value) (string, error) {
	var resolveErr error
	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		if resolveErr != nil {
			return match
		}
		name := match[1 : len(match)-1]

		f, ok := roles.lookup(name)
		if !ok {
			resolveErr = &PathResolutionError{Template: template, Placeholder: name, Reason: "no such field"}
			return match
		}

		v := instance.FieldByName(f.Name)
		if !v.IsValid() {
			resolveErr = &PathResolutionError{Template: template, Placeholder: name, Reason: "no such field"}
			return match
		}
		v, ok = deref(v)
		if !ok {
			resolveErr = &PathResolutionError{Template: template, Placeholder: name, Reason: "field is nil"}
			return match
		}
		return fmt.Sprintf("%v", v.Interface())
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return resolved, nil
}

// joinURL combines a base URL and a path fragment with exactly one
// separating slash, regardless of trailing or leading slashes on either
// side. An empty fragment returns the base unchanged.
func joinURL(base, path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + trimmed
}

// deref follows pointers and interfaces to the underlying value. The
// second return is false when a nil is encountered along the way.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, true
}
