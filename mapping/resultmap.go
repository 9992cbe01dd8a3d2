package mapping

import (
	"fmt"
	"reflect"
)

type (
	//AutoMappingBehavior controls which columns are mapped without an explicit rule
	AutoMappingBehavior string

	//ResultMap represents resolved rules mapping result rows to a target type
	ResultMap struct {
		Id          string
		Type        string `json:",omitempty"`
		Extends     string `json:",omitempty"`
		AutoMapping *bool  `json:",omitempty"`

		Mappings            []*ResultMapping
		IdMappings          []*ResultMapping `json:",omitempty"`
		ConstructorMappings []*ResultMapping `json:",omitempty"`
		Discriminator       *Discriminator   `json:",omitempty"`

		rType reflect.Type
	}

	//NamedResultMaps indexes result maps by namespace qualified id
	NamedResultMaps map[string]*ResultMap
)

const (
	AutoMappingNone    = AutoMappingBehavior("none")
	AutoMappingPartial = AutoMappingBehavior("partial")
	AutoMappingFull    = AutoMappingBehavior("full")
)

//Validate checks auto mapping behavior value
func (b AutoMappingBehavior) Validate() error {
	switch b {
	case AutoMappingNone, AutoMappingPartial, AutoMappingFull:
		return nil
	}
	return fmt.Errorf("unsupported autoMappingBehavior: '%s', supported: %v, %v, %v", string(b), AutoMappingNone, AutoMappingPartial, AutoMappingFull)
}

//SetReflectType sets resolved target reflect type
func (r *ResultMap) SetReflectType(rType reflect.Type) {
	r.rType = rType
}

//ReflectType returns resolved target reflect type if known
func (r *ResultMap) ReflectType() reflect.Type {
	return r.rType
}

//HasNestedResultMaps returns true when any mapping references a nested result map
func (r *ResultMap) HasNestedResultMaps() bool {
	for _, item := range r.Mappings {
		if item.NestedResultMap != "" {
			return true
		}
	}
	return false
}

//Inherit merges parent mappings not overridden by this result map, parent rules first
func (r *ResultMap) Inherit(parent *ResultMap) {
	declared := map[string]bool{}
	for _, item := range r.Mappings {
		if item.Property != "" {
			declared[item.Property] = true
		}
	}
	var inherited []*ResultMapping
	for i, item := range parent.Mappings {
		if item.Property != "" && declared[item.Property] {
			continue
		}
		inherited = append(inherited, parent.Mappings[i])
	}
	if len(r.ConstructorMappings) > 0 {
		//a child declaring its own constructor discards the parent's
		trimmed := inherited[:0]
		for _, item := range inherited {
			if item.HasFlag(FlagConstructor) {
				continue
			}
			trimmed = append(trimmed, item)
		}
		inherited = trimmed
	}
	r.Mappings = append(inherited, r.Mappings...)
	r.indexMappings()
	if r.Type == "" {
		r.Type = parent.Type
	}
	if r.Discriminator == nil {
		r.Discriminator = parent.Discriminator
	}
}

//indexMappings rebuilds id and constructor views over the mapping sequence
func (r *ResultMap) indexMappings() {
	r.IdMappings = nil
	r.ConstructorMappings = nil
	for i, item := range r.Mappings {
		if item.HasFlag(FlagID) {
			r.IdMappings = append(r.IdMappings, r.Mappings[i])
		}
		if item.HasFlag(FlagConstructor) {
			r.ConstructorMappings = append(r.ConstructorMappings, r.Mappings[i])
		}
	}
}

//AddMapping appends a mapping rule maintaining id and constructor views
func (r *ResultMap) AddMapping(item *ResultMapping) {
	r.Mappings = append(r.Mappings, item)
	if item.HasFlag(FlagID) {
		r.IdMappings = append(r.IdMappings, item)
	}
	if item.HasFlag(FlagConstructor) {
		r.ConstructorMappings = append(r.ConstructorMappings, item)
	}
}

//Lookup returns a result map with given id or error
func (m NamedResultMaps) Lookup(id string) (*ResultMap, error) {
	result, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("failed to lookup result map %v", id)
	}
	return result, nil
}

//Register registers a result map, rejecting duplicate ids
func (m *NamedResultMaps) Register(resultMap *ResultMap) error {
	if len(*m) == 0 {
		*m = NamedResultMaps{}
	}
	if _, ok := (*m)[resultMap.Id]; ok {
		return fmt.Errorf("result map %v is already registered", resultMap.Id)
	}
	(*m)[resultMap.Id] = resultMap
	return nil
}
