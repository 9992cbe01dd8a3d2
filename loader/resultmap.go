package loader

import (
	"github.com/pkg/errors"

	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
	"github.com/viant/sqlmap/shared"
)

//resultMapResolver converts one resultMap shaped subtree into a resolved ResultMap.
//A retry after an unresolved extends reference replays inheritance and registration;
//nested resolvers and successful registrations survive across retries so a replayed
//parse never registers the same map twice.
type resultMapResolver struct {
	mapper        *Mapper
	node          *dom.Node
	enclosingType string

	parsed     bool
	registered bool
	id         string
	extends    string
	resultMap  *mapping.ResultMap
	nested     map[*dom.Node]*resultMapResolver
}

func newResultMapResolver(mapper *Mapper, node *dom.Node, enclosingType string) *resultMapResolver {
	return &resultMapResolver{mapper: mapper, node: node, enclosingType: enclosingType}
}

//Id returns the result map id, derived when missing
func (r *resultMapResolver) Id() string {
	if r.id != "" {
		return r.id
	}
	id := r.node.Attribute("id")
	if id == "" {
		id = r.node.Identifier()
	}
	r.id = r.mapper.qualify(id)
	return r.id
}

func (r *resultMapResolver) retry() error {
	_, err := r.Resolve()
	return err
}

//Resolve produces and registers the resolved result map. An unresolved extends
//reference yields an incomplete error, a deferral signal rather than a failure.
func (r *resultMapResolver) Resolve() (*mapping.ResultMap, error) {
	if !r.parsed {
		if err := r.parse(); err != nil {
			return nil, err
		}
		r.parsed = true
	}
	return r.register()
}

func (r *resultMapResolver) parse() error {
	targetType := shared.FirstNotEmpty(
		r.node.Attribute("type"),
		r.node.Attribute("ofType"),
		r.node.Attribute("resultType"),
		r.node.Attribute("javaType"),
		r.enclosingType,
	)
	if targetType == "" {
		return errors.Errorf("resultMap %v requires a type", r.Id())
	}
	targetType = r.mapper.registry.ResolveAlias(targetType)
	autoMapping, err := optionalBoolAttribute(r.node, "autoMapping")
	if err != nil {
		return err
	}
	result := &mapping.ResultMap{
		Id:          r.Id(),
		Type:        targetType,
		Extends:     r.mapper.qualify(r.node.Attribute("extends")),
		AutoMapping: autoMapping,
	}
	if rType, lookupErr := r.mapper.registry.Types().Lookup(targetType); lookupErr == nil && rType != nil {
		result.SetReflectType(rType)
	}
	for _, child := range r.node.Elements() {
		switch child.Name {
		case "constructor":
			if err := r.parseConstructor(result, child); err != nil {
				return err
			}
		case "discriminator":
			if err := r.parseDiscriminator(result, child); err != nil {
				return err
			}
		case "id", "result", "association", "collection":
			item, err := r.buildMapping(child, targetType)
			if err != nil {
				return err
			}
			result.AddMapping(item)
		default:
			return errors.Errorf("unsupported resultMap child: %v in %v", child.Name, result.Id)
		}
	}
	r.extends = result.Extends
	r.resultMap = result
	return nil
}

func (r *resultMapResolver) register() (*mapping.ResultMap, error) {
	if r.extends != "" {
		parent, err := r.mapper.registry.ResultMap(r.extends)
		if err != nil {
			return nil, err
		}
		r.resultMap.Inherit(parent)
		r.extends = ""
	}
	if r.registered {
		return r.resultMap, nil
	}
	if err := r.mapper.registry.RegisterResultMap(r.resultMap); err != nil {
		return nil, err
	}
	r.registered = true
	return r.resultMap, nil
}

func (r *resultMapResolver) parseConstructor(result *mapping.ResultMap, node *dom.Node) error {
	for _, child := range node.Elements() {
		switch child.Name {
		case "arg", "idArg":
			item, err := r.buildMapping(child, result.Type)
			if err != nil {
				return err
			}
			item.Flags = append(item.Flags, mapping.FlagConstructor)
			if child.Name == "idArg" {
				item.Flags = append(item.Flags, mapping.FlagID)
			}
			result.AddMapping(item)
		default:
			return errors.Errorf("unsupported constructor child: %v in %v", child.Name, result.Id)
		}
	}
	return nil
}

func (r *resultMapResolver) parseDiscriminator(result *mapping.ResultMap, node *dom.Node) error {
	column := node.Attribute("column")
	if column == "" {
		return errors.Errorf("discriminator column was empty in %v", result.Id)
	}
	discriminator := &mapping.Discriminator{
		Column:      column,
		JavaType:    r.mapper.registry.ResolveAlias(node.Attribute("javaType")),
		JdbcType:    node.Attribute("jdbcType"),
		TypeHandler: r.mapper.registry.ResolveAlias(node.Attribute("typeHandler")),
		Cases:       map[string]string{},
	}
	for _, child := range node.Elements("case") {
		value := child.Attribute("value")
		if value == "" {
			return errors.Errorf("discriminator case value was empty in %v", result.Id)
		}
		caseId := child.Attribute("resultMap")
		if caseId != "" {
			caseId = r.mapper.qualify(caseId)
		} else {
			//an inline case is itself an anonymous result map variant
			nested, err := r.resolveNested(child, result.Type)
			if err != nil {
				return err
			}
			caseId = nested
		}
		discriminator.Cases[value] = caseId
	}
	result.Discriminator = discriminator
	return nil
}

func (r *resultMapResolver) buildMapping(node *dom.Node, enclosingType string) (*mapping.ResultMapping, error) {
	item := &mapping.ResultMapping{
		Property:      shared.FirstNotEmpty(node.Attribute("property"), node.Attribute("name")),
		Column:        node.Attribute("column"),
		JavaType:      r.mapper.registry.ResolveAlias(shared.FirstNotEmpty(node.Attribute("javaType"), node.Attribute("ofType"))),
		JdbcType:      node.Attribute("jdbcType"),
		TypeHandler:   r.mapper.registry.ResolveAlias(node.Attribute("typeHandler")),
		ResultSet:     node.Attribute("resultSet"),
		ForeignColumn: node.Attribute("foreignColumn"),
	}
	if node.Name == "id" {
		item.Flags = append(item.Flags, mapping.FlagID)
	}
	if selected := node.Attribute("select"); selected != "" {
		item.NestedQuery = r.mapper.qualify(selected)
	}
	switch {
	case node.Attribute("resultMap") != "":
		item.NestedResultMap = r.mapper.qualify(node.Attribute("resultMap"))
	case (node.Name == "association" || node.Name == "collection") && item.NestedQuery == "" && item.ResultSet == "":
		nested, err := r.resolveNested(node, item.JavaType)
		if err != nil {
			return nil, err
		}
		item.NestedResultMap = nested
	}
	return item, nil
}

//resolveNested resolves an anonymous nested result map. A nested map may itself
//carry an unresolved extends reference, deferring the enclosing map; the per node
//resolver cache keeps the replayed parse idempotent.
func (r *resultMapResolver) resolveNested(node *dom.Node, fallbackType string) (string, error) {
	nested, ok := r.nested[node]
	if !ok {
		nested = newResultMapResolver(r.mapper, node, fallbackType)
		if r.nested == nil {
			r.nested = map[*dom.Node]*resultMapResolver{}
		}
		r.nested[node] = nested
	}
	resolved, err := nested.Resolve()
	if err != nil {
		return "", err
	}
	return resolved.Id, nil
}

func optionalBoolAttribute(node *dom.Node, name string) (*bool, error) {
	if !node.HasAttribute(name) {
		return nil, nil
	}
	value, err := boolAttribute(node, name, false)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
