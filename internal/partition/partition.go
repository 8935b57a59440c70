// Package partition groups a mesh's faces by the category of their material
// so that objects mixing categories can be split into one object per category.
package partition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Simouie/Project-Furnace/internal/rules"
)

// ErrNotPartition is returned when a plan does not cover every face exactly once.
var ErrNotPartition = errors.New("plan is not a partition of the faces")

// SlotCategory is the classification of one material slot. Usable is false
// for empty slots and materials without legacy fields.
type SlotCategory struct {
	Slot     int
	Category rules.Category
	Usable   bool
}

// Group is the set of faces that share one category kind.
type Group struct {
	Kind  rules.Kind
	Slots []int // usable slots whose faces are in the group, ascending
	Faces []int // face indices, ascending
}

// Plan assigns every face of a mesh to exactly one group.
type Plan struct {
	Groups []Group
}

// Trivial reports whether the object needs no split.
func (p Plan) Trivial() bool {
	return len(p.Groups) <= 1
}

// Empty reports whether no usable material was found.
func (p Plan) Empty() bool {
	return len(p.Groups) == 0
}

// Kinds lists the group kinds in plan order.
func (p Plan) Kinds() []rules.Kind {
	out := make([]rules.Kind, len(p.Groups))
	for i, g := range p.Groups {
		out[i] = g.Kind
	}
	return out
}

// Group returns the group of kind k.
func (p Plan) Group(k rules.Kind) (Group, bool) {
	for _, g := range p.Groups {
		if g.Kind == k {
			return g, true
		}
	}
	return Group{}, false
}

// Build groups faces by the category kind of their slot. faceSlots holds the
// material slot index of each face.
//
// Groups are ordered by the first slot in which their kind appears, so the
// result is stable for a fixed slot order. Sky materials with different
// indices share one group; the index is a face property. Faces on slots
// without a usable material join the Generic group when there is one and the
// first group otherwise.
func Build(faceSlots []int, slots []SlotCategory) Plan {
	usable := make(map[int]rules.Kind, len(slots))
	for _, s := range slots {
		if s.Usable {
			usable[s.Slot] = s.Category.Kind
		}
	}
	if len(usable) == 0 {
		return Plan{}
	}

	faceCount := make(map[int]int)
	for _, s := range faceSlots {
		faceCount[s]++
	}

	var groups []Group
	index := make(map[rules.Kind]int)
	for _, s := range slots {
		if !s.Usable || faceCount[s.Slot] == 0 {
			continue
		}
		k := s.Category.Kind
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Kind: k})
		}
		groups[i].Slots = append(groups[i].Slots, s.Slot)
	}

	if len(groups) == 0 {
		// usable materials exist but own no faces
		for _, s := range slots {
			if s.Usable {
				groups = []Group{{Kind: s.Category.Kind, Slots: []int{s.Slot}}}
				index[s.Category.Kind] = 0
				break
			}
		}
	}

	orphan := 0
	if i, ok := index[rules.KindGeneric]; ok {
		orphan = i
	}

	for face, s := range faceSlots {
		i := orphan
		if k, ok := usable[s]; ok {
			if gi, ok := index[k]; ok {
				i = gi
			}
		}
		groups[i].Faces = append(groups[i].Faces, face)
	}

	for i := range groups {
		slices.Sort(groups[i].Slots)
	}
	return Plan{Groups: groups}
}

// Validate checks that the groups cover faces [0, faceCount) exactly once.
func (p Plan) Validate(faceCount int) error {
	seen := make([]bool, faceCount)
	kinds := make(map[rules.Kind]bool, len(p.Groups))
	for _, g := range p.Groups {
		if kinds[g.Kind] {
			return fmt.Errorf("%w: kind %s appears twice", ErrNotPartition, g.Kind)
		}
		kinds[g.Kind] = true
		for _, f := range g.Faces {
			if f < 0 || f >= faceCount {
				return fmt.Errorf("%w: face %d out of range", ErrNotPartition, f)
			}
			if seen[f] {
				return fmt.Errorf("%w: face %d assigned twice", ErrNotPartition, f)
			}
			seen[f] = true
		}
	}
	for f, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: face %d unassigned", ErrNotPartition, f)
		}
	}
	return nil
}
