package metadata

import (
	"fmt"
	"slices"
	"strings"
)

// Doctrine field types after aliasing that the generators treat specially.
const (
	TypeString   = "string"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeFloat    = "float"
	TypeDateTime = `\DateTime`
	TypeArray    = "array"
	TypeObject   = `\stdClass`
)

// typeAlias folds Doctrine DBAL types onto the PHP types used by the
// generated code.
var typeAlias = map[string]string{
	"datetimetz":   TypeDateTime,
	"datetime":     TypeDateTime,
	"date":         TypeDateTime,
	"time":         TypeDateTime,
	"object":       TypeObject,
	"bigint":       TypeInteger,
	"smallint":     TypeInteger,
	"text":         TypeString,
	"blob":         TypeString,
	"decimal":      TypeFloat,
	"json_array":   TypeArray,
	"simple_array": TypeArray,
	"json":         TypeArray,
}

// AliasType maps a Doctrine type onto its PHP alias. Unknown types are
// returned unchanged.
func AliasType(t string) string {
	if alias, ok := typeAlias[strings.ToLower(t)]; ok {
		return alias
	}
	return t
}

// Field is a column mapping.
type Field struct {
	Name string
	Type string
}

// Alias returns the aliased PHP type of the field.
func (f Field) Alias() string { return AliasType(f.Type) }

// Association is a relation to another entity.
type Association struct {
	Name         string
	TargetEntity string
	Cardinality  Cardinality
	OwningSide   bool
}

// InverseManyToMany reports whether the association is the mapped side of
// a many-to-many relation. Forms render these as unmapped collections.
func (a Association) InverseManyToMany() bool {
	return !a.OwningSide && a.Cardinality == ManyToMany
}

// ToOne reports whether the association points at a single entity.
func (a Association) ToOne() bool { return a.Cardinality.IsToOne() }

// ToMany reports whether the association holds a collection.
func (a Association) ToMany() bool { return a.Cardinality.IsToMany() }

func (a Association) Owning() bool { return a.OwningSide }

func (a Association) Inverse() bool { return !a.OwningSide }

// Linked reports whether views should render the association as a link
// to the related record.
func (a Association) Linked() bool {
	return a.OwningSide || a.Cardinality == ManyToMany
}

// TargetClass returns the short class name of the association target.
func (a Association) TargetClass() string {
	return ShortName(a.TargetEntity)
}

// EntityMetadata is the read-only description of one mapped entity.
type EntityMetadata struct {
	// Name is the fully qualified class name, e.g. Acme\BlogBundle\Entity\Post.
	Name            string
	Identifier      []string
	NaturalID       bool
	RepositoryClass string
	Fields          []Field
	Associations    []Association

	// Source is the mapping file the metadata was read from, if any.
	Source string
}

// ClassName returns the short class name.
func (m *EntityMetadata) ClassName() string { return ShortName(m.Name) }

// Namespace returns the namespace part of the class name.
func (m *EntityMetadata) Namespace() string {
	if i := strings.LastIndex(m.Name, `\`); i >= 0 {
		return m.Name[:i]
	}
	return ""
}

// FieldNames returns the mapped field names in mapping order, identifier included.
func (m *EntityMetadata) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// AssociationNames returns the association names in mapping order.
func (m *EntityMetadata) AssociationNames() []string {
	names := make([]string, len(m.Associations))
	for i, a := range m.Associations {
		names[i] = a.Name
	}
	return names
}

// Field looks up a field mapping by name.
func (m *EntityMetadata) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Association looks up an association mapping by name.
func (m *EntityMetadata) Association(name string) (Association, bool) {
	for _, a := range m.Associations {
		if a.Name == name {
			return a, true
		}
	}
	return Association{}, false
}

// AssociationsWhere returns the names of associations matching keep.
func (m *EntityMetadata) AssociationsWhere(keep func(Association) bool) []string {
	var names []string
	for _, a := range m.Associations {
		if keep(a) {
			names = append(names, a.Name)
		}
	}
	return names
}

// IsIdentifier reports whether name is part of the identifier.
func (m *EntityMetadata) IsIdentifier(name string) bool {
	return slices.Contains(m.Identifier, name)
}

// RequireSingleIdentifier fails for composite identifiers.
func (m *EntityMetadata) RequireSingleIdentifier() error {
	if len(m.Identifier) > 1 {
		return fmt.Errorf("%w: %s has identifier {%s}", ErrCompositeIdentifier, m.Name, strings.Join(m.Identifier, ", "))
	}
	return nil
}

// RequireIDNamedIdentifier fails unless the entity has exactly one
// identifier field and it is named "id".
func (m *EntityMetadata) RequireIDNamedIdentifier() error {
	if err := m.RequireSingleIdentifier(); err != nil {
		return err
	}
	if !m.IsIdentifier("id") {
		return fmt.Errorf("%w: %s has identifier {%s}", ErrIdentifierNotID, m.Name, strings.Join(m.Identifier, ", "))
	}
	return nil
}

// Validate checks the internal consistency of the metadata.
func (m *EntityMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: entity has no class name", ErrInvalidMapping)
	}
	seen := make(map[string]bool, len(m.Fields)+len(m.Associations))
	for _, f := range m.Fields {
		if seen[f.Name] {
			return fmt.Errorf("%w: %s maps %q twice", ErrInvalidMapping, m.Name, f.Name)
		}
		seen[f.Name] = true
	}
	for _, a := range m.Associations {
		if seen[a.Name] {
			return fmt.Errorf("%w: %s maps %q twice", ErrInvalidMapping, m.Name, a.Name)
		}
		if !a.Cardinality.Valid() {
			return fmt.Errorf("%w: %s.%s", ErrUnknownCardinality, m.Name, a.Name)
		}
		seen[a.Name] = true
	}
	for _, id := range m.Identifier {
		if !seen[id] {
			return fmt.Errorf("%w: %s identifier %q is not mapped", ErrInvalidMapping, m.Name, id)
		}
	}
	return nil
}
