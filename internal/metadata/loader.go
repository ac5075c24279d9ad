package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIdentifier is one entry of the "id" section of a Doctrine mapping.
type yamlIdentifier struct {
	Type      string `yaml:"type"`
	Generator struct {
		Strategy string `yaml:"strategy"`
	} `yaml:"generator"`
}

// yamlField is one entry of the "fields" section.
type yamlField struct {
	Type string `yaml:"type"`
}

// yamlAssociation is one entry of an association section.
type yamlAssociation struct {
	TargetEntity string `yaml:"targetEntity"`
	MappedBy     string `yaml:"mappedBy"`
	InversedBy   string `yaml:"inversedBy"`
}

// associationSections lists the Doctrine association keys in the order
// they are read.
var associationSections = []Cardinality{OneToOne, ManyToOne, OneToMany, ManyToMany}

// LoadFile reads every entity described by a mapping file. Files ending in
// .json are metadata dumps; anything else is read as a Doctrine YAML mapping.
func LoadFile(path string) ([]*EntityMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, path)
		}
		return nil, fmt.Errorf("read mapping %s: %w", path, err)
	}

	var entities []*EntityMetadata
	if strings.EqualFold(filepath.Ext(path), ".json") {
		entities, err = DecodeJSON(data)
	} else {
		entities, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, e := range entities {
		e.Source = path
	}
	return entities, nil
}

// DecodeYAML parses a Doctrine YAML mapping document. Field and association
// order follows the document.
func DecodeYAML(data []byte) ([]*EntityMetadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidMapping)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map class names to mappings", ErrInvalidMapping)
	}

	var entities []*EntityMetadata
	for i := 0; i+1 < len(root.Content); i += 2 {
		meta, err := decodeYAMLEntity(root.Content[i].Value, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		entities = append(entities, meta)
	}
	return entities, nil
}

func decodeYAMLEntity(className string, body *yaml.Node) (*EntityMetadata, error) {
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s is not a mapping", ErrInvalidMapping, className)
	}

	meta := &EntityMetadata{Name: strings.TrimPrefix(className, `\`), NaturalID: true}
	sections := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(body.Content); i += 2 {
		sections[body.Content[i].Value] = body.Content[i+1]
	}

	if n, ok := sections["repositoryClass"]; ok {
		meta.RepositoryClass = n.Value
	}

	if ids, ok := sections["id"]; ok {
		err := eachEntry(ids, func(name string, value *yaml.Node) error {
			var id yamlIdentifier
			if err := value.Decode(&id); err != nil {
				return fmt.Errorf("%w: %s.id.%s: %v", ErrInvalidMapping, className, name, err)
			}
			meta.Identifier = append(meta.Identifier, name)
			meta.Fields = append(meta.Fields, Field{Name: name, Type: defaultType(id.Type)})
			if s := strings.ToUpper(id.Generator.Strategy); s != "" && s != "NONE" {
				meta.NaturalID = false
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if fields, ok := sections["fields"]; ok {
		err := eachEntry(fields, func(name string, value *yaml.Node) error {
			var f yamlField
			if err := value.Decode(&f); err != nil {
				return fmt.Errorf("%w: %s.fields.%s: %v", ErrInvalidMapping, className, name, err)
			}
			meta.Fields = append(meta.Fields, Field{Name: name, Type: defaultType(f.Type)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, card := range associationSections {
		section, ok := sections[card.String()]
		if !ok {
			continue
		}
		err := eachEntry(section, func(name string, value *yaml.Node) error {
			var a yamlAssociation
			if err := value.Decode(&a); err != nil {
				return fmt.Errorf("%w: %s.%s.%s: %v", ErrInvalidMapping, className, card, name, err)
			}
			if a.TargetEntity == "" {
				return fmt.Errorf("%w: %s.%s has no targetEntity", ErrInvalidMapping, className, name)
			}
			meta.Associations = append(meta.Associations, Association{
				Name:         name,
				TargetEntity: qualifyTarget(meta.Namespace(), a.TargetEntity),
				Cardinality:  card,
				OwningSide:   card.OwnedByDefault() && (card == ManyToOne || a.MappedBy == ""),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(meta.Identifier) == 0 {
		meta.NaturalID = false
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return meta, nil
}

// eachEntry walks a mapping node in document order.
func eachEntry(n *yaml.Node, fn func(name string, value *yaml.Node) error) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping at line %d", ErrInvalidMapping, n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// qualifyTarget resolves a relative targetEntity against the namespace of
// the declaring entity, the way Doctrine does.
func qualifyTarget(namespace, target string) string {
	target = strings.TrimPrefix(target, `\`)
	if strings.Contains(target, `\`) || namespace == "" {
		return target
	}
	return namespace + `\` + target
}

func defaultType(t string) string {
	if t == "" {
		return TypeString
	}
	return t
}

// jsonEntity is the layout of a metadata dump. Field and association lists
// are arrays so that mapping order survives the round trip.
type jsonEntity struct {
	Name                string            `json:"name"`
	Identifier          []string          `json:"identifier"`
	IsIdentifierNatural flexBool          `json:"isIdentifierNatural"`
	RepositoryClass     string            `json:"customRepositoryClassName"`
	FieldMappings       []jsonField       `json:"fieldMappings"`
	AssociationMappings []jsonAssociation `json:"associationMappings"`
}

type jsonField struct {
	FieldName string `json:"fieldName"`
	Type      string `json:"type"`
}

type jsonAssociation struct {
	FieldName    string          `json:"fieldName"`
	TargetEntity string          `json:"targetEntity"`
	Type         json.RawMessage `json:"type"`
	IsOwningSide flexBool        `json:"isOwningSide"`
}

// flexBool accepts true/false, 0/1 and the string forms PHP dumps produce.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), `"`) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("%w: %s is not a boolean", ErrInvalidMapping, data)
	}
	return nil
}

// DecodeJSON parses a metadata dump holding one entity object or an array
// of them.
func DecodeJSON(data []byte) ([]*EntityMetadata, error) {
	trimmed := bytes.TrimSpace(data)
	var raw []jsonEntity
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("%w: empty document", ErrInvalidMapping)
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
		}
	default:
		var one jsonEntity
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
		}
		raw = append(raw, one)
	}

	entities := make([]*EntityMetadata, 0, len(raw))
	for _, r := range raw {
		meta := &EntityMetadata{
			Name:            strings.TrimPrefix(r.Name, `\`),
			Identifier:      r.Identifier,
			NaturalID:       bool(r.IsIdentifierNatural),
			RepositoryClass: r.RepositoryClass,
		}
		for _, f := range r.FieldMappings {
			meta.Fields = append(meta.Fields, Field{Name: f.FieldName, Type: defaultType(f.Type)})
		}
		for _, a := range r.AssociationMappings {
			card, err := ParseCardinality(strings.Trim(string(a.Type), `"`))
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", r.Name, a.FieldName, err)
			}
			meta.Associations = append(meta.Associations, Association{
				Name:         a.FieldName,
				TargetEntity: qualifyTarget(meta.Namespace(), a.TargetEntity),
				Cardinality:  card,
				OwningSide:   bool(a.IsOwningSide),
			})
		}
		if err := meta.Validate(); err != nil {
			return nil, err
		}
		entities = append(entities, meta)
	}
	return entities, nil
}
