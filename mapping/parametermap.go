package mapping

import "fmt"

type (
	//ParameterMap represents a legacy named parameter mapping declaration
	ParameterMap struct {
		Id       string
		Type     string `json:",omitempty"`
		Mappings []*ParameterMapping
	}

	//NamedParameterMaps indexes parameter maps by namespace qualified id
	NamedParameterMaps map[string]*ParameterMap
)

//Lookup returns a parameter map with given id or error
func (m NamedParameterMaps) Lookup(id string) (*ParameterMap, error) {
	result, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("failed to lookup parameter map %v", id)
	}
	return result, nil
}

//Register registers a parameter map, rejecting duplicate ids
func (m *NamedParameterMaps) Register(parameterMap *ParameterMap) error {
	if len(*m) == 0 {
		*m = NamedParameterMaps{}
	}
	if _, ok := (*m)[parameterMap.Id]; ok {
		return fmt.Errorf("parameter map %v is already registered", parameterMap.Id)
	}
	(*m)[parameterMap.Id] = parameterMap
	return nil
}
