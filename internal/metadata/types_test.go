package metadata

import (
	"errors"
	"strings"
	"testing"
)

func TestRequireIDNamedIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier []string
		wantErr    error
	}{
		{name: "single_id", identifier: []string{"id"}},
		{name: "uid_identifier", identifier: []string{"uid"}, wantErr: ErrIdentifierNotID},
		{name: "composite_identifier", identifier: []string{"id", "tenantId"}, wantErr: ErrCompositeIdentifier},
		{name: "no_identifier", identifier: nil, wantErr: ErrIdentifierNotID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &EntityMetadata{Name: `App\Entity\Post`, Identifier: tt.identifier}
			err := meta.RequireIDNamedIdentifier()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("messages_name_the_rule", func(t *testing.T) {
		uid := &EntityMetadata{Name: `App\Entity\Post`, Identifier: []string{"uid"}}
		if err := uid.RequireIDNamedIdentifier(); !strings.Contains(err.Error(), `primary key field named "id"`) {
			t.Errorf("error %q does not mention the id rule", err)
		}
		composite := &EntityMetadata{Name: `App\Entity\Post`, Identifier: []string{"id", "tenantId"}}
		if err := composite.RequireSingleIdentifier(); !strings.Contains(err.Error(), "multiple primary keys") {
			t.Errorf("error %q does not mention multiple primary keys", err)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("duplicate_name", func(t *testing.T) {
		meta := &EntityMetadata{
			Name:         `App\Entity\Post`,
			Fields:       []Field{{Name: "author", Type: "string"}},
			Associations: []Association{{Name: "author", Cardinality: ManyToOne}},
		}
		if err := meta.Validate(); !errors.Is(err, ErrInvalidMapping) {
			t.Errorf("error = %v, want ErrInvalidMapping", err)
		}
	})

	t.Run("unmapped_identifier", func(t *testing.T) {
		meta := &EntityMetadata{Name: `App\Entity\Post`, Identifier: []string{"id"}}
		if err := meta.Validate(); !errors.Is(err, ErrInvalidMapping) {
			t.Errorf("error = %v, want ErrInvalidMapping", err)
		}
	})

	t.Run("bad_cardinality", func(t *testing.T) {
		meta := &EntityMetadata{
			Name:         `App\Entity\Post`,
			Associations: []Association{{Name: "x", Cardinality: ToMany}},
		}
		if err := meta.Validate(); !errors.Is(err, ErrUnknownCardinality) {
			t.Errorf("error = %v, want ErrUnknownCardinality", err)
		}
	})
}

func TestAliasType(t *testing.T) {
	tests := map[string]string{
		"datetime":     TypeDateTime,
		"DateTimeTz":   TypeDateTime,
		"bigint":       TypeInteger,
		"text":         TypeString,
		"decimal":      TypeFloat,
		"simple_array": TypeArray,
		"object":       TypeObject,
		"string":       "string",
		"uuid":         "uuid",
	}
	for in, want := range tests {
		if got := AliasType(in); got != want {
			t.Errorf("AliasType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCardinality(t *testing.T) {
	t.Run("doctrine_codes", func(t *testing.T) {
		if OneToOne != 1 || ManyToOne != 2 || OneToMany != 4 || ManyToMany != 8 {
			t.Fatal("cardinality codes drifted from Doctrine")
		}
		if ToOne != 3 || ToMany != 12 {
			t.Fatal("cardinality masks drifted from Doctrine")
		}
	})

	t.Run("predicates", func(t *testing.T) {
		if !ManyToOne.IsToOne() || ManyToOne.IsToMany() {
			t.Error("ManyToOne must be to-one")
		}
		if !OneToMany.IsToMany() || OneToMany.IsToOne() {
			t.Error("OneToMany must be to-many")
		}
		if ToMany.IsToMany() {
			t.Error("masks are not concrete cardinalities")
		}
	})

	t.Run("parse", func(t *testing.T) {
		tests := map[string]Cardinality{
			"8":            ManyToMany,
			" 2 ":          ManyToOne,
			"manyToOne":    ManyToOne,
			"many-to-many": ManyToMany,
			"ONE_TO_MANY":  OneToMany,
			"belongs_to":   ManyToOne,
			"hasOne":       OneToOne,
		}
		for in, want := range tests {
			got, err := ParseCardinality(in)
			if err != nil {
				t.Errorf("ParseCardinality(%q): %v", in, err)
				continue
			}
			if got != want {
				t.Errorf("ParseCardinality(%q) = %v, want %v", in, got, want)
			}
		}
	})

	t.Run("parse_rejects_masks_and_noise", func(t *testing.T) {
		for _, in := range []string{"3", "12", "0", "several"} {
			if _, err := ParseCardinality(in); !errors.Is(err, ErrUnknownCardinality) {
				t.Errorf("ParseCardinality(%q) error = %v, want ErrUnknownCardinality", in, err)
			}
		}
	})
}
