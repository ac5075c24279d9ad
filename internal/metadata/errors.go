// Package metadata describes Doctrine entities for the generators. It holds
// field and association mappings, identifier rules, the type alias table and
// the field buckets that select widgets and test templates.
package metadata

import "errors"

// Sentinel errors for metadata operations.
var (
	// ErrCompositeIdentifier indicates an entity mapped with more than one identifier field.
	ErrCompositeIdentifier = errors.New("metadata: the generator does not support entity classes with multiple primary keys")

	// ErrIdentifierNotID indicates a single identifier that is not named "id".
	ErrIdentifierNotID = errors.New(`metadata: the generator expects the entity object has a primary key field named "id" with a getId() method`)

	// ErrInvalidShortcut indicates an entity name without the Bundle:Entity separator.
	ErrInvalidShortcut = errors.New("metadata: the entity name must contain a : (expecting something like AcmeBlogBundle:Blog/Post)")

	// ErrEntityNotFound indicates that no mapping file describes the requested entity.
	ErrEntityNotFound = errors.New("metadata: entity mapping not found")

	// ErrInvalidMapping indicates a mapping document that cannot be interpreted.
	ErrInvalidMapping = errors.New("metadata: invalid mapping")

	// ErrUnknownCardinality indicates an association type that is not a Doctrine cardinality.
	ErrUnknownCardinality = errors.New("metadata: unknown association cardinality")
)
