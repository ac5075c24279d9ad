package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// Cardinality is the association type of a mapping. The values are the
// Doctrine ClassMetadataInfo codes so that metadata dumps decode directly.
type Cardinality int

const (
	OneToOne   Cardinality = 1
	ManyToOne  Cardinality = 2
	OneToMany  Cardinality = 4
	ManyToMany Cardinality = 8

	// ToOne and ToMany are masks, never the type of a single association.
	ToOne  = OneToOne | ManyToOne
	ToMany = OneToMany | ManyToMany
)

// IsToOne reports whether the association references a single entity.
func (c Cardinality) IsToOne() bool { return c.Valid() && c&ToOne != 0 }

// IsToMany reports whether the association references a collection.
func (c Cardinality) IsToMany() bool { return c.Valid() && c&ToMany != 0 }

// Valid reports whether c is one of the four concrete association types.
func (c Cardinality) Valid() bool {
	switch c {
	case OneToOne, ManyToOne, OneToMany, ManyToMany:
		return true
	}
	return false
}

// String returns the Doctrine mapping key for the cardinality.
func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "oneToOne"
	case ManyToOne:
		return "manyToOne"
	case OneToMany:
		return "oneToMany"
	case ManyToMany:
		return "manyToMany"
	}
	return "cardinality(" + strconv.Itoa(int(c)) + ")"
}

// OwnedByDefault reports whether an association of this type is the owning
// side when the mapping does not say otherwise. Doctrine always owns
// many-to-one, never owns one-to-many, and owns the others unless mappedBy
// is set.
func (c Cardinality) OwnedByDefault() bool {
	return c != OneToMany
}

// ParseCardinality accepts the numeric Doctrine codes as well as names such
// as "manyToOne", "many-to-one", "MANY_TO_ONE" or "belongs_to".
func ParseCardinality(raw string) (Cardinality, error) {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		c := Cardinality(n)
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownCardinality, n)
		}
		return c, nil
	}

	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(trimmed))
	switch key {
	case "onetoone", "hasone":
		return OneToOne, nil
	case "manytoone", "belongsto":
		return ManyToOne, nil
	case "onetomany", "hasmany":
		return OneToMany, nil
	case "manytomany":
		return ManyToMany, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCardinality, raw)
}
