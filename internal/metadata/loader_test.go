package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const postMapping = `Acme\BlogBundle\Entity\Post:
    type: entity
    table: post
    repositoryClass: Acme\BlogBundle\Repository\PostRepository
    id:
        id:
            type: integer
            generator: { strategy: AUTO }
    fields:
        title:
            type: string
            length: 255
        published:
            type: boolean
        createdAt:
            type: datetime
        body: ~
    manyToOne:
        author:
            targetEntity: User
            inversedBy: posts
    oneToMany:
        comments:
            targetEntity: Comment
            mappedBy: post
    manyToMany:
        tags:
            targetEntity: Acme\TagBundle\Entity\Tag
            inversedBy: posts
        readers:
            targetEntity: User
            mappedBy: readPosts
`

func TestDecodeYAML(t *testing.T) {
	t.Run("post_mapping", func(t *testing.T) {
		entities, err := DecodeYAML([]byte(postMapping))
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}
		if len(entities) != 1 {
			t.Fatalf("got %d entities, want 1", len(entities))
		}

		want := &EntityMetadata{
			Name:            `Acme\BlogBundle\Entity\Post`,
			Identifier:      []string{"id"},
			RepositoryClass: `Acme\BlogBundle\Repository\PostRepository`,
			Fields: []Field{
				{Name: "id", Type: "integer"},
				{Name: "title", Type: "string"},
				{Name: "published", Type: "boolean"},
				{Name: "createdAt", Type: "datetime"},
				{Name: "body", Type: "string"},
			},
			Associations: []Association{
				{Name: "author", TargetEntity: `Acme\BlogBundle\Entity\User`, Cardinality: ManyToOne, OwningSide: true},
				{Name: "comments", TargetEntity: `Acme\BlogBundle\Entity\Comment`, Cardinality: OneToMany},
				{Name: "tags", TargetEntity: `Acme\TagBundle\Entity\Tag`, Cardinality: ManyToMany, OwningSide: true},
				{Name: "readers", TargetEntity: `Acme\BlogBundle\Entity\User`, Cardinality: ManyToMany},
			},
		}
		if diff := cmp.Diff(want, entities[0]); diff != "" {
			t.Errorf("metadata mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("identifier_without_generator_is_natural", func(t *testing.T) {
		doc := "App\\Entity\\Country:\n    id:\n        code:\n            type: string\n"
		entities, err := DecodeYAML([]byte(doc))
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}
		if !entities[0].NaturalID {
			t.Error("identifier without generator should be natural")
		}
	})

	t.Run("owning_one_to_one", func(t *testing.T) {
		doc := "App\\Entity\\User:\n    oneToOne:\n        profile:\n            targetEntity: Profile\n        account:\n            targetEntity: Account\n            mappedBy: user\n"
		entities, err := DecodeYAML([]byte(doc))
		if err != nil {
			t.Fatalf("DecodeYAML: %v", err)
		}
		profile, _ := entities[0].Association("profile")
		account, _ := entities[0].Association("account")
		if !profile.OwningSide || account.OwningSide {
			t.Errorf("profile owning = %v, account owning = %v", profile.OwningSide, account.OwningSide)
		}
	})

	t.Run("invalid_documents", func(t *testing.T) {
		docs := map[string]string{
			"empty":          "",
			"list_root":      "- a\n- b\n",
			"scalar_entity":  "App\\Entity\\X: 3\n",
			"missing_target": "App\\Entity\\X:\n    manyToOne:\n        owner: {}\n",
			"bad_yaml":       "App\\Entity\\X: [unclosed\n",
		}
		for name, doc := range docs {
			t.Run(name, func(t *testing.T) {
				if _, err := DecodeYAML([]byte(doc)); !errors.Is(err, ErrInvalidMapping) {
					t.Errorf("error = %v, want ErrInvalidMapping", err)
				}
			})
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	dump := `{
  "name": "Acme\\BlogBundle\\Entity\\Post",
  "identifier": ["id"],
  "isIdentifierNatural": false,
  "fieldMappings": [
    {"fieldName": "id", "type": "integer"},
    {"fieldName": "title", "type": "string"}
  ],
  "associationMappings": [
    {"fieldName": "author", "targetEntity": "Acme\\BlogBundle\\Entity\\User", "type": 2, "isOwningSide": true},
    {"fieldName": "tags", "targetEntity": "Tag", "type": "manyToMany", "isOwningSide": ""}
  ]
}`

	t.Run("single_object", func(t *testing.T) {
		entities, err := DecodeJSON([]byte(dump))
		if err != nil {
			t.Fatalf("DecodeJSON: %v", err)
		}
		want := []Association{
			{Name: "author", TargetEntity: `Acme\BlogBundle\Entity\User`, Cardinality: ManyToOne, OwningSide: true},
			{Name: "tags", TargetEntity: `Acme\BlogBundle\Entity\Tag`, Cardinality: ManyToMany},
		}
		if diff := cmp.Diff(want, entities[0].Associations); diff != "" {
			t.Errorf("associations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("array_of_objects", func(t *testing.T) {
		entities, err := DecodeJSON([]byte("[" + dump + "," + dump + "]"))
		if err != nil {
			t.Fatalf("DecodeJSON: %v", err)
		}
		if len(entities) != 2 {
			t.Errorf("got %d entities, want 2", len(entities))
		}
	})

	t.Run("unknown_cardinality", func(t *testing.T) {
		bad := `{"name":"App\\Entity\\X","associationMappings":[{"fieldName":"a","targetEntity":"Y","type":12}]}`
		if _, err := DecodeJSON([]byte(bad)); !errors.Is(err, ErrUnknownCardinality) {
			t.Errorf("error = %v, want ErrUnknownCardinality", err)
		}
	})
}

func TestLoadEntity(t *testing.T) {
	bundle := t.TempDir()
	dir := MappingDir(bundle)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Post.orm.yml"), []byte(postMapping), 0o644); err != nil {
		t.Fatal(err)
	}
	tag := "Acme\\BlogBundle\\Entity\\Blog\\Tag:\n    id:\n        id: { type: integer, generator: { strategy: AUTO } }\n"
	if err := os.WriteFile(filepath.Join(dir, "Blog.Tag.orm.yml"), []byte(tag), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("by_entity_name", func(t *testing.T) {
		meta, err := LoadEntity(bundle, `Acme\BlogBundle`, "Post")
		if err != nil {
			t.Fatalf("LoadEntity: %v", err)
		}
		if meta.Source != filepath.Join(dir, "Post.orm.yml") {
			t.Errorf("Source = %q", meta.Source)
		}
	})

	t.Run("sub_namespace", func(t *testing.T) {
		meta, err := LoadEntity(bundle, `Acme\BlogBundle`, "Blog/Tag")
		if err != nil {
			t.Fatalf("LoadEntity: %v", err)
		}
		if meta.Name != `Acme\BlogBundle\Entity\Blog\Tag` {
			t.Errorf("Name = %q", meta.Name)
		}
	})

	t.Run("missing_entity", func(t *testing.T) {
		if _, err := LoadEntity(bundle, `Acme\BlogBundle`, "Comment"); !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("error = %v, want ErrEntityNotFound", err)
		}
	})

	t.Run("whole_bundle", func(t *testing.T) {
		entities, err := LoadBundle(bundle)
		if err != nil {
			t.Fatalf("LoadBundle: %v", err)
		}
		var names []string
		for _, e := range entities {
			names = append(names, e.Name)
		}
		want := []string{`Acme\BlogBundle\Entity\Blog\Tag`, `Acme\BlogBundle\Entity\Post`}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("bundle entities mismatch (-want +got):\n%s", diff)
		}

		blog := FilterNamespace(entities, "Acme/BlogBundle/Entity/Blog")
		if len(blog) != 1 || blog[0].ClassName() != "Tag" {
			t.Errorf("FilterNamespace = %v", blog)
		}
		if got := FilterNamespace(entities, `Acme\Other`); len(got) != 0 {
			t.Errorf("FilterNamespace on foreign namespace = %v", got)
		}
	})

	t.Run("no_mapping_dir", func(t *testing.T) {
		_, err := LoadBundle(t.TempDir())
		if !errors.Is(err, ErrEntityNotFound) {
			t.Errorf("error = %v, want ErrEntityNotFound", err)
		}
	})

}
