package document

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Simouie/Project-Furnace/internal/partition"
	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// Object is a scene object held by Memory.
type Object struct {
	ID         ObjectID       `yaml:"id"`
	Name       string         `yaml:"name"`
	Type       ObjectType     `yaml:"type"`
	Hidden     bool           `yaml:"hidden,omitempty"`
	Materials  []MaterialID   `yaml:"materials,flow"` // slot order; "" is an empty slot
	Faces      []int          `yaml:"faces,flow"`     // slot index per face
	Properties map[string]any `yaml:"properties,omitempty"`
	FaceLayers []FaceLayer    `yaml:"face_layers,omitempty"`
}

// FaceLayer holds face properties assigned to a group of faces.
type FaceLayer struct {
	Slot       int            `yaml:"slot"`
	Faces      []int          `yaml:"faces,flow"`
	Properties map[string]any `yaml:"properties"`
}

// Material is a scene material held by Memory. Legacy is nil when the
// material has no legacy fields.
type Material struct {
	Name   string                 `yaml:"name"`
	Legacy *schema.MaterialRecord `yaml:"legacy,omitempty"`
}

// Memory is an in-memory Document.
type Memory struct {
	order     []ObjectID
	objects   map[ObjectID]*Object
	materials map[MaterialID]*Material
	matOrder  []MaterialID
	scene     map[string]any

	// FailWrites makes every write to the listed objects fail.
	FailWrites map[ObjectID]error
}

// NewMemory returns an empty document.
func NewMemory() *Memory {
	return &Memory{
		objects:    make(map[ObjectID]*Object),
		materials:  make(map[MaterialID]*Material),
		scene:      make(map[string]any),
		FailWrites: make(map[ObjectID]error),
	}
}

// AddMaterial adds a material. A nil legacy record marks a material without
// legacy fields.
func (d *Memory) AddMaterial(name string, legacy *schema.MaterialRecord) MaterialID {
	id := MaterialID(name)
	if legacy != nil {
		rec := *legacy
		rec.Name = name
		legacy = &rec
	}
	if _, ok := d.materials[id]; !ok {
		d.matOrder = append(d.matOrder, id)
	}
	d.materials[id] = &Material{Name: name, Legacy: legacy}
	return id
}

// AddObject appends an object and returns its handle. An empty ID is
// replaced by a fresh one.
func (d *Memory) AddObject(o Object) ObjectID {
	if o.ID == "" {
		o.ID = ObjectID(uuid.NewString())
	}
	if o.Properties == nil {
		o.Properties = make(map[string]any)
	}
	obj := o
	d.objects[obj.ID] = &obj
	d.order = append(d.order, obj.ID)
	return obj.ID
}

// Object returns the stored object for inspection.
func (d *Memory) Object(h ObjectID) (*Object, bool) {
	o, ok := d.objects[h]
	return o, ok
}

// Materials returns every material in declaration order.
func (d *Memory) Materials() []MaterialID {
	return slices.Clone(d.matOrder)
}

// Scene returns the scene properties.
func (d *Memory) Scene() map[string]any {
	return d.scene
}

// Objects implements Document.
func (d *Memory) Objects() []ObjectID {
	return slices.Clone(d.order)
}

// ObjectType implements Document.
func (d *Memory) ObjectType(h ObjectID) ObjectType {
	if o, ok := d.objects[h]; ok {
		return o.Type
	}
	return TypeOther
}

// ObjectName implements Document.
func (d *Memory) ObjectName(h ObjectID) string {
	if o, ok := d.objects[h]; ok {
		return o.Name
	}
	return ""
}

// ObjectHidden implements Document.
func (d *Memory) ObjectHidden(h ObjectID) bool {
	if o, ok := d.objects[h]; ok {
		return o.Hidden
	}
	return false
}

// MaterialSlots implements Document.
func (d *Memory) MaterialSlots(h ObjectID) []Slot {
	o, ok := d.objects[h]
	if !ok {
		return nil
	}
	slots := make([]Slot, len(o.Materials))
	for i, m := range o.Materials {
		slots[i] = Slot{Index: i, Material: m}
	}
	return slots
}

// FaceSlots implements Document.
func (d *Memory) FaceSlots(h ObjectID) []int {
	if o, ok := d.objects[h]; ok {
		return slices.Clone(o.Faces)
	}
	return nil
}

// MaterialName implements Document.
func (d *Memory) MaterialName(m MaterialID) string {
	if mat, ok := d.materials[m]; ok {
		return mat.Name
	}
	return string(m)
}

// LegacyFields implements Document.
func (d *Memory) LegacyFields(m MaterialID) (schema.MaterialRecord, bool) {
	mat, ok := d.materials[m]
	if !ok || mat.Legacy == nil {
		return schema.MaterialRecord{}, false
	}
	return *mat.Legacy, true
}

// SplitFaces implements Document. The first group stays in h; every other
// group becomes a new object placed after h, named like a host duplicate.
func (d *Memory) SplitFaces(h ObjectID, plan partition.Plan) ([]ObjectID, error) {
	src, ok := d.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, h)
	}
	if plan.Trivial() {
		return []ObjectID{h}, nil
	}
	if err := plan.Validate(len(src.Faces)); err != nil {
		return nil, fmt.Errorf("splitting %s: %w", src.Name, err)
	}

	faces := src.Faces
	layers := src.FaceLayers
	ids := make([]ObjectID, 0, len(plan.Groups))
	var created []ObjectID

	for i, g := range plan.Groups {
		remap := make(map[int]int, len(g.Faces))
		sub := make([]int, len(g.Faces))
		for j, f := range g.Faces {
			remap[f] = j
			sub[j] = faces[f]
		}

		target := src
		if i > 0 {
			target = &Object{
				ID:         ObjectID(uuid.NewString()),
				Name:       d.duplicateName(src.Name),
				Type:       src.Type,
				Hidden:     src.Hidden,
				Materials:  slices.Clone(src.Materials),
				Properties: cloneProps(src.Properties),
			}
			d.objects[target.ID] = target
			created = append(created, target.ID)
		}
		target.Faces = sub
		target.FaceLayers = remapLayers(layers, remap)
		ids = append(ids, target.ID)
	}

	at := slices.Index(d.order, h) + 1
	d.order = slices.Insert(d.order, at, created...)
	return ids, nil
}

func (d *Memory) duplicateName(base string) string {
	taken := make(map[string]bool, len(d.objects))
	for _, o := range d.objects {
		taken[o.Name] = true
	}
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s.%03d", base, n)
		if !taken[name] {
			return name
		}
	}
}

func remapLayers(layers []FaceLayer, remap map[int]int) []FaceLayer {
	var out []FaceLayer
	for _, l := range layers {
		var faces []int
		for _, f := range l.Faces {
			if nf, ok := remap[f]; ok {
				faces = append(faces, nf)
			}
		}
		if len(faces) == 0 {
			continue
		}
		out = append(out, FaceLayer{Slot: l.Slot, Faces: faces, Properties: cloneProps(l.Properties)})
	}
	return out
}

func cloneProps(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (d *Memory) writable(h ObjectID) (*Object, error) {
	if err := d.FailWrites[h]; err != nil {
		return nil, err
	}
	o, ok := d.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, h)
	}
	return o, nil
}

func checkGroup(o *Object, g *FaceGroup) error {
	for _, f := range g.Faces {
		if f < 0 || f >= len(o.Faces) {
			return fmt.Errorf("%w: face %d on %s", ErrFaceRange, f, o.Name)
		}
	}
	return nil
}

// WriteObjectProperty implements Document.
func (d *Memory) WriteObjectProperty(h ObjectID, key string, value any) error {
	o, err := d.writable(h)
	if err != nil {
		return err
	}
	o.Properties[key] = value
	return nil
}

// WriteFaceProperty implements Document. Writes to the same slot and faces
// share one layer.
func (d *Memory) WriteFaceProperty(h ObjectID, group FaceGroup, key string, value any) error {
	o, err := d.writable(h)
	if err != nil {
		return err
	}
	if err := checkGroup(o, &group); err != nil {
		return err
	}
	o.layer(group).Properties[key] = value
	return nil
}

func (o *Object) layer(g FaceGroup) *FaceLayer {
	for i := range o.FaceLayers {
		l := &o.FaceLayers[i]
		if l.Slot == g.Slot && slices.Equal(l.Faces, g.Faces) {
			return l
		}
	}
	o.FaceLayers = append(o.FaceLayers, FaceLayer{
		Slot:       g.Slot,
		Faces:      slices.Clone(g.Faces),
		Properties: make(map[string]any),
	})
	return &o.FaceLayers[len(o.FaceLayers)-1]
}

// WriteBatch implements BatchWriter. Nothing is written unless every write
// is valid.
func (d *Memory) WriteBatch(h ObjectID, writes []Write) error {
	o, err := d.writable(h)
	if err != nil {
		return err
	}
	for _, w := range writes {
		if w.Group == nil {
			continue
		}
		if err := checkGroup(o, w.Group); err != nil {
			return err
		}
	}
	for _, w := range writes {
		if w.Group == nil {
			o.Properties[w.Key] = w.Value
			continue
		}
		o.layer(*w.Group).Properties[w.Key] = w.Value
	}
	return nil
}

// WriteSceneProperty implements SceneWriter.
func (d *Memory) WriteSceneProperty(key string, value any) error {
	d.scene[key] = value
	return nil
}

// ResetFaceProperties implements FaceResetter.
func (d *Memory) ResetFaceProperties(h ObjectID) error {
	o, err := d.writable(h)
	if err != nil {
		return err
	}
	o.FaceLayers = nil
	return nil
}
