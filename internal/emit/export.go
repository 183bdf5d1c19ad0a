package emit

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Manifest is the machine-readable description of a program.
type Manifest struct {
	Name      string           `yaml:"name" json:"name"`
	Owner     string           `yaml:"owner" json:"owner"`
	Field     string           `yaml:"field" json:"field"`
	FieldType string           `yaml:"field_type" json:"field_type"`
	Sort      string           `yaml:"sort" json:"sort"`
	Static    bool             `yaml:"static,omitempty" json:"static,omitempty"`
	Offset    uintptr          `yaml:"offset,omitempty" json:"offset,omitempty"`
	Methods   []MethodManifest `yaml:"methods" json:"methods"`
}

type MethodManifest struct {
	Name   string   `yaml:"name" json:"name"`
	Kind   string   `yaml:"kind" json:"kind"`
	Access string   `yaml:"access" json:"access"`
	Live   bool     `yaml:"live" json:"live"`
	Code   []string `yaml:"code" json:"code"`
}

// Export builds the manifest of p.
func Export(p *Program) *Manifest {
	mf := &Manifest{
		Name:    p.Name,
		Field:   p.Field,
		Sort:    p.FieldSort().String(),
		Static:  p.Static,
		Offset:  p.Offset,
		Methods: make([]MethodManifest, 0, len(p.Methods)),
	}

	if p.Owner != nil {
		mf.Owner = p.Owner.String()
	}

	if p.FieldType != nil {
		mf.FieldType = p.FieldType.String()
	}

	for i := range p.Methods {
		m := &p.Methods[i]

		mm := MethodManifest{
			Name:   m.Name,
			Kind:   m.Kind.String(),
			Access: m.Access.GoType(),
			Live:   m.Live(),
			Code:   make([]string, 0, len(m.Code)),
		}

		for _, in := range m.Code {
			mm.Code = append(mm.Code, in.String())
		}

		mf.Methods = append(mf.Methods, mm)
	}

	return mf
}

// ExportYAML generates the manifest of p as YAML.
func ExportYAML(p *Program) ([]byte, error) {
	return yaml.Marshal(Export(p))
}

// ExportJSON generates the manifest of p as indented JSON.
func ExportJSON(p *Program) ([]byte, error) {
	return json.MarshalIndent(Export(p), "", "  ")
}
