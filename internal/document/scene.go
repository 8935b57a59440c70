package document

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Simouie/Project-Furnace/pkg/schema"
)

// sceneFile is the YAML layout of a scene.
type sceneFile struct {
	Scene     map[string]any  `yaml:"scene,omitempty"`
	Materials []sceneMaterial `yaml:"materials"`
	Objects   []*Object       `yaml:"objects"`
}

type sceneMaterial struct {
	Name   string     `yaml:"name"`
	Legacy *yaml.Node `yaml:"legacy,omitempty"`
}

// ParseScene decodes a YAML scene.
func ParseScene(data []byte) (*Memory, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	d := NewMemory()
	for k, v := range f.Scene {
		d.scene[k] = v
	}
	for i, m := range f.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("material %d has no name", i)
		}
		if m.Legacy == nil {
			d.AddMaterial(m.Name, nil)
			continue
		}
		// decode over neutral defaults so omitted fields keep them
		rec := schema.NewMaterialRecord(m.Name)
		if err := m.Legacy.Decode(&rec); err != nil {
			return nil, fmt.Errorf("material %s: %w", m.Name, err)
		}
		d.AddMaterial(m.Name, &rec)
	}
	for _, o := range f.Objects {
		if o == nil {
			continue
		}
		for _, mid := range o.Materials {
			if mid == "" {
				continue
			}
			if _, ok := d.materials[mid]; !ok {
				// host materials without legacy fields need no declaration
				d.AddMaterial(string(mid), nil)
			}
		}
		d.AddObject(*o)
	}
	return d, nil
}

// LoadScene reads a YAML scene from path.
func LoadScene(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	return ParseScene(data)
}

// Marshal encodes the document as a YAML scene.
func (d *Memory) Marshal() ([]byte, error) {
	f := sceneFile{Scene: d.scene}
	for _, id := range d.matOrder {
		m := d.materials[id]
		sm := sceneMaterial{Name: m.Name}
		if m.Legacy != nil {
			var node yaml.Node
			if err := node.Encode(m.Legacy); err != nil {
				return nil, fmt.Errorf("material %s: %w", m.Name, err)
			}
			sm.Legacy = &node
		}
		f.Materials = append(f.Materials, sm)
	}
	for _, id := range d.order {
		f.Objects = append(f.Objects, d.objects[id])
	}
	return yaml.Marshal(&f)
}

// Save writes the document to path as a YAML scene.
func (d *Memory) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
