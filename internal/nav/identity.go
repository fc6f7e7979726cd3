package nav

import (
	"fmt"

	"github.com/google/uuid"
)

// LinkIDKind discriminates the variants of a LinkID.
type LinkIDKind uint8

const (
	LinkIDNone LinkIDKind = iota // Untagged link.
	LinkIDUUID                   // Tagged with a generated UUID.
	LinkIDName                   // Tagged with a caller-chosen name.
)

// LinkID identifies a navigable link so that a tapped link can be correlated
// with the selection recorded for its column. The zero value is the none
// variant. LinkID is comparable; equality is by variant and payload.
type LinkID struct {
	kind LinkIDKind
	uuid uuid.UUID
	name string
}

// NoLinkID returns the none variant.
func NoLinkID() LinkID {
	return LinkID{}
}

// UUIDLinkID wraps an existing UUID.
func UUIDLinkID(id uuid.UUID) LinkID {
	return LinkID{kind: LinkIDUUID, uuid: id}
}

// NewLinkID returns a LinkID carrying a fresh random UUID.
func NewLinkID() LinkID {
	return UUIDLinkID(uuid.New())
}

// NamedLinkID returns a LinkID carrying name.
func NamedLinkID(name string) LinkID {
	return LinkID{kind: LinkIDName, name: name}
}

// Kind returns the variant.
func (id LinkID) Kind() LinkIDKind { return id.kind }

// IsNone reports whether id is the none variant.
func (id LinkID) IsNone() bool { return id.kind == LinkIDNone }

// UUID returns the payload of the uuid variant.
func (id LinkID) UUID() (uuid.UUID, bool) {
	return id.uuid, id.kind == LinkIDUUID
}

// Name returns the payload of the name variant.
func (id LinkID) Name() (string, bool) {
	return id.name, id.kind == LinkIDName
}

func (id LinkID) String() string {
	switch id.kind {
	case LinkIDUUID:
		return fmt.Sprintf("uuid(%s)", id.uuid)
	case LinkIDName:
		return fmt.Sprintf("name(%q)", id.name)
	default:
		return "none"
	}
}

// Selection is an optional LinkID. The zero value is empty.
type Selection struct {
	id  LinkID
	set bool
}

// Selected returns a non-empty Selection holding id.
func Selected(id LinkID) Selection {
	return Selection{id: id, set: true}
}

// Get returns the selected id and whether the selection is set.
func (s Selection) Get() (LinkID, bool) {
	return s.id, s.set
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool { return !s.set }

// Matches reports whether s is set and holds id.
func (s Selection) Matches(id LinkID) bool {
	return s.set && s.id == id
}

func (s Selection) String() string {
	if !s.set {
		return "empty"
	}
	return s.id.String()
}
