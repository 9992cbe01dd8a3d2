package mapping

import (
	"fmt"

	"github.com/viant/sqlmap/dom"
)

type (
	//Fragment represents a reusable named SQL subtree
	Fragment struct {
		Id         string
		Node       *dom.Node
		DatabaseId string `json:",omitempty"`
	}

	//NamedFragments indexes fragments by namespace qualified id
	NamedFragments map[string]*Fragment
)

//Lookup returns a fragment with given id or error
func (m NamedFragments) Lookup(id string) (*Fragment, error) {
	result, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("failed to lookup sql fragment %v", id)
	}
	return result, nil
}

//Register registers a fragment, rejecting duplicate ids
func (m *NamedFragments) Register(fragment *Fragment) error {
	if len(*m) == 0 {
		*m = NamedFragments{}
	}
	if _, ok := (*m)[fragment.Id]; ok {
		return fmt.Errorf("sql fragment %v is already registered", fragment.Id)
	}
	(*m)[fragment.Id] = fragment
	return nil
}
