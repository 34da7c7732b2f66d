package container

import "github.com/askiada/go-binarytrack/pkg/track/model"

// MemberKind is the kind of a named member of a group.
type MemberKind int

const (
	// GroupMember is a nested group.
	GroupMember MemberKind = iota
	// DatasetMember is a leaf dataset.
	DatasetMember
	// OtherMember is anything else (links, committed types). It is skipped.
	OtherMember
)

// Member is a named child of a group.
type Member struct {
	Name string
	Kind MemberKind
}

// NamedAttribute is an attribute attached to a group.
type NamedAttribute struct {
	Name      string
	Attribute *model.Attribute
}

// Group is a node of a hierarchical source exposing child items.
type Group interface {
	// Members lists the children of the group in storage order.
	Members() ([]Member, error)
	// OpenGroup opens a nested group. The caller closes it.
	OpenGroup(name string) (Group, error)
	// ReadDataset reads a leaf dataset fully.
	ReadDataset(name string) (*Dataset, error)
	// Attributes returns the attributes attached to the group.
	Attributes() ([]NamedAttribute, error)
	// Close releases the group handle.
	Close() error
}

// Source is an opened hierarchical file.
type Source interface {
	Root() Group
	Close() error
}

// Opener opens the file at path as a Source.
type Opener func(path string) (Source, error)

// Dataset is the raw content of a leaf dataset: Count records of RecordSize bytes.
// A non-compound dataset is described by a single field at offset 0.
type Dataset struct {
	Compound   bool
	Fields     []Field
	RecordSize int
	Count      int
	Raw        []byte
}
