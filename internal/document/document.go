// Package document defines the scene document the migration engine reads
// legacy metadata from and writes target properties to.
package document

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Simouie/Project-Furnace/internal/partition"
	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// Document errors.
var (
	ErrUnknownObject = errors.New("unknown object")
	ErrFaceRange     = errors.New("face index out of range")
)

// ObjectID identifies an object in a document.
type ObjectID string

// MaterialID identifies a material in a document.
type MaterialID string

// ObjectType is the host object type.
type ObjectType uint8

const (
	TypeOther ObjectType = iota
	TypeMesh
)

// String returns "mesh" or "other".
func (t ObjectType) String() string {
	if t == TypeMesh {
		return "mesh"
	}
	return "other"
}

// MarshalYAML writes the type by name.
func (t ObjectType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML reads a type by name.
func (t *ObjectType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "mesh", "MESH":
		*t = TypeMesh
	case "other", "OTHER", "":
		*t = TypeOther
	default:
		return fmt.Errorf("unknown object type %q", s)
	}
	return nil
}

// Slot is one material slot of an object. Material is empty for an empty slot.
type Slot struct {
	Index    int
	Material MaterialID
}

// Empty reports whether the slot holds no material.
func (s Slot) Empty() bool {
	return s.Material == ""
}

// FaceGroup is the set of faces of one material slot.
type FaceGroup struct {
	Slot  int
	Faces []int
}

// Write is one buffered property write. A nil Group targets the object.
type Write struct {
	Group *FaceGroup
	Key   string
	Value any
}

// Document is the scene model the engine works against.
type Document interface {
	Objects() []ObjectID
	ObjectType(h ObjectID) ObjectType
	ObjectName(h ObjectID) string
	ObjectHidden(h ObjectID) bool
	MaterialSlots(h ObjectID) []Slot
	// FaceSlots returns the material slot index of every face.
	FaceSlots(h ObjectID) []int
	MaterialName(m MaterialID) string
	// LegacyFields returns a snapshot of m's legacy fields; ok is false when
	// the material carries none.
	LegacyFields(m MaterialID) (schema.MaterialRecord, bool)
	// SplitFaces splits h along the plan. The returned handles follow the
	// plan's group order; the first is h itself.
	SplitFaces(h ObjectID, plan partition.Plan) ([]ObjectID, error)
	WriteObjectProperty(h ObjectID, key string, value any) error
	WriteFaceProperty(h ObjectID, group FaceGroup, key string, value any) error
}

// BatchWriter is implemented by documents that can apply all writes for one
// object atomically.
type BatchWriter interface {
	WriteBatch(h ObjectID, writes []Write) error
}

// SceneWriter is implemented by documents with scene-level properties.
type SceneWriter interface {
	WriteSceneProperty(key string, value any) error
}

// FaceResetter is implemented by documents that can drop every face property
// of an object.
type FaceResetter interface {
	ResetFaceProperties(h ObjectID) error
}
