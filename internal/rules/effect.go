// Package rules holds the classification and property-transfer rules that
// turn legacy material and object metadata into target property effects.
package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scope says where an Effect lands.
type Scope uint8

const (
	ScopeObject   Scope = iota // object property
	ScopeFace                  // face property on a material's face group
	ScopeMaterial              // legacy flag overlay on the material record
)

var scopeNames = map[Scope]string{
	ScopeObject:   "object",
	ScopeFace:     "face",
	ScopeMaterial: "material",
}

// String returns the scope name.
func (s Scope) String() string {
	if n, ok := scopeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", uint8(s))
}

// ParseScope resolves a scope by name.
func ParseScope(name string) (Scope, error) {
	for s, n := range scopeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scope %q", name)
}

// MarshalYAML writes the scope by name.
func (s Scope) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML reads a scope by name.
func (s *Scope) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseScope(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Effect is one deferred property assignment.
type Effect struct {
	Scope Scope
	Key   string
	Value any
}

// String returns "scope:key=value".
func (e Effect) String() string {
	return fmt.Sprintf("%s:%s=%v", e.Scope, e.Key, e.Value)
}

func objectEffect(key string, value any) Effect {
	return Effect{Scope: ScopeObject, Key: key, Value: value}
}

func faceEffect(key string, value any) Effect {
	return Effect{Scope: ScopeFace, Key: key, Value: value}
}
