package courier

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sentinel"
)

// Role classifies how a declared field contributes to the compiled request.
type Role string

const (
	// RoleBody fields are serialized into the structured request body.
	// This is the default for untagged fields.
	RoleBody Role = "body"

	// RoleQuery fields are encoded into the URL query string.
	RoleQuery Role = "query"

	// RoleRaw marks the singleton byte-slice field whose content becomes
	// the entire request body verbatim.
	RoleRaw Role = "raw"

	// RoleSkip fields appear in neither the query nor the body. They remain
	// readable by path placeholders.
	RoleSkip Role = "skip"
)

// roleTag is the struct tag key that assigns a Role to a field.
const roleTag = "endpoint"

// field describes one declared input field and its resolved role.
type field struct {
	Name  string // Go field name, used for reflective access.
	Param string // Wire name from the json tag, or the lowercased field name.
	Role  Role
	Type  string // Go type string from sentinel metadata.
}

// roleSet is the disjoint classification of an input type's fields,
// derived once at declaration time from sentinel metadata.
type roleSet struct {
	fields []field
	query  []field
	body   []field
	raw    *field // At most one, owns the entire body when present.
}

// scanRoles classifies the fields of the input metadata. It reports a
// reason string (empty when valid) so the caller can build a
// DeclarationError carrying the endpoint name.
func scanRoles(meta sentinel.ModelMetadata) (*roleSet, string) {
	rs := &roleSet{}

	for _, fm := range meta.Fields {
		f := field{
			Name:  fm.Name,
			Param: paramName(fm),
			Role:  RoleBody,
			Type:  fm.Type,
		}

		if tag, ok := fm.Tags[roleTag]; ok {
			role, err := parseRole(tag)
			if err != "" {
				return nil, err
			}
			f.Role = role
		} else if fm.Tags["json"] == "-" {
			// encoding/json excludes the field, so it neither serializes
			// nor queries. It stays readable by path placeholders.
			f.Role = RoleSkip
		}

		switch f.Role {
		case RoleQuery:
			rs.query = append(rs.query, f)
		case RoleRaw:
			if rs.raw != nil {
				return nil, fmt.Sprintf("fields %s and %s are both tagged raw, at most one is allowed", rs.raw.Name, f.Name)
			}
			if !isByteSlice(f.Type) {
				return nil, fmt.Sprintf("raw field %s must be []byte, got %s", f.Name, f.Type)
			}
			raw := f
			rs.raw = &raw
		case RoleBody:
			rs.body = append(rs.body, f)
		case RoleSkip:
			// Readable by path placeholders only.
		}

		rs.fields = append(rs.fields, f)
	}

	return rs, ""
}

// parseRole maps a tag value to a Role. The tag may carry future options
// after a comma; only the first element names the role.
func parseRole(tag string) (Role, string) {
	name, _, _ := strings.Cut(tag, ",")
	switch Role(name) {
	case RoleBody, RoleQuery, RoleRaw, RoleSkip:
		return Role(name), ""
	case "":
		return RoleBody, ""
	default:
		return "", fmt.Sprintf("unknown %s tag %q", roleTag, name)
	}
}

// paramName extracts the wire name for a field from its json tag,
// falling back to the lowercased Go field name.
func paramName(fm sentinel.FieldMetadata) string {
	jsonTag, exists := fm.Tags["json"]
	if !exists {
		return strings.ToLower(fm.Name)
	}

	name, _, _ := strings.Cut(jsonTag, ",")
	if name == "" || name == "-" {
		return strings.ToLower(fm.Name)
	}
	return name
}

func isByteSlice(goType string) bool {
	return goType == "[]byte" || goType == "[]uint8"
}

// lookup resolves a path placeholder against the declared fields. Wire
// names take precedence over Go field names.
func (rs *roleSet) lookup(name string) (field, bool) {
	for _, f := range rs.fields {
		if f.Param == name {
			return f, true
		}
	}
	for _, f := range rs.fields {
		if f.Name == name {
			return f, true
		}
	}
	return field{}, false
}

// queryParams returns the wire names of the query fields.
func (rs *roleSet) queryParams() []string {
	names := make([]string, 0, len(rs.query))
	for _, f := range rs.query {
		names = append(names, f.Param)
	}
	return names
}

// bodyParams returns the wire names of the body fields. Empty when a raw
// field overrides the body set.
func (rs *roleSet) bodyParams() []string {
	if rs.raw != nil {
		return nil
	}
	names := make([]string, 0, len(rs.body))
	for _, f := range rs.body {
		names = append(names, f.Param)
	}
	return names
}
