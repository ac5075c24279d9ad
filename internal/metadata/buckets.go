package metadata

// Kind is the bucket a field is routed to.
type Kind int

const (
	KindGeneric Kind = iota
	KindAssociation
	KindBoolean
	KindDateTime
)

// String returns the bucket name.
func (k Kind) String() string {
	switch k {
	case KindAssociation:
		return "association"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	}
	return "generic"
}

// FieldKind classifies a column mapping by its aliased type.
func FieldKind(f Field) Kind {
	switch f.Alias() {
	case TypeBoolean:
		return KindBoolean
	case TypeDateTime:
		return KindDateTime
	}
	return KindGeneric
}

// Buckets partitions the eligible fields of an entity. Each eligible name
// appears in exactly one bucket, in mapping order.
type Buckets struct {
	Association []string
	Boolean     []string
	DateTime    []string
	Generic     []string
}

// All returns every bucketed name: associations, booleans, datetimes, then
// generic fields.
func (b Buckets) All() []string {
	all := make([]string, 0, len(b.Association)+len(b.Boolean)+len(b.DateTime)+len(b.Generic))
	all = append(all, b.Association...)
	all = append(all, b.Boolean...)
	all = append(all, b.DateTime...)
	return append(all, b.Generic...)
}

// Of returns the names in bucket k.
func (b Buckets) Of(k Kind) []string {
	switch k {
	case KindAssociation:
		return b.Association
	case KindBoolean:
		return b.Boolean
	case KindDateTime:
		return b.DateTime
	}
	return b.Generic
}

// EligibleFields returns the names a form or view can edit: every column
// except a generated identifier, followed by every association.
func (m *EntityMetadata) EligibleFields() []string {
	names := make([]string, 0, len(m.Fields)+len(m.Associations))
	for _, f := range m.Fields {
		if !m.NaturalID && m.IsIdentifier(f.Name) {
			continue
		}
		names = append(names, f.Name)
	}
	return append(names, m.AssociationNames()...)
}

// Partition routes every eligible field to one bucket.
func Partition(m *EntityMetadata) Buckets {
	var b Buckets
	for _, name := range m.EligibleFields() {
		switch KindOf(m, name) {
		case KindAssociation:
			b.Association = append(b.Association, name)
		case KindBoolean:
			b.Boolean = append(b.Boolean, name)
		case KindDateTime:
			b.DateTime = append(b.DateTime, name)
		default:
			b.Generic = append(b.Generic, name)
		}
	}
	return b
}

// KindOf classifies a field or association of m by name. Associations win
// over column types.
func KindOf(m *EntityMetadata, name string) Kind {
	if _, ok := m.Association(name); ok {
		return KindAssociation
	}
	if f, ok := m.Field(name); ok {
		return FieldKind(f)
	}
	return KindGeneric
}
