package loader

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
)

//statementResolver converts one statement shaped subtree into a resolved
//MappedStatement. Parsing (fragment inclusion, selectKey extraction, SQL source
//construction) happens once; a retry blocked on an unresolved namespace cache
//replays only registration.
type statementResolver struct {
	mapper     *Mapper
	node       *dom.Node
	databaseId string

	parsed    bool
	id        string
	statement *mapping.MappedStatement
	selectKey *mapping.MappedStatement
}

func newStatementResolver(mapper *Mapper, node *dom.Node, databaseId string) *statementResolver {
	return &statementResolver{mapper: mapper, node: node, databaseId: databaseId}
}

//Id returns namespace qualified statement id
func (r *statementResolver) Id() string {
	if r.id != "" {
		return r.id
	}
	r.id = r.mapper.qualify(r.node.Attribute("id"))
	return r.id
}

func (r *statementResolver) retry() error {
	return r.Resolve()
}

//Resolve produces and registers the statement and its generated key sub statement
func (r *statementResolver) Resolve() error {
	if !r.parsed {
		if err := r.parse(); err != nil {
			return err
		}
		r.parsed = true
	}
	return r.register()
}

func (r *statementResolver) parse() error {
	if r.node.Attribute("id") == "" {
		return errors.Errorf("statement id is mandatory in %v", r.mapper.namespace)
	}
	command := mapping.SQLCommandType(r.node.Name)
	if err := command.Validate(); err != nil {
		return err
	}
	settings := r.mapper.registry.Settings

	expanded, err := r.expandIncludes(r.node)
	if err != nil {
		return err
	}
	keyGenerator, err := r.extractSelectKey(expanded, command)
	if err != nil {
		return err
	}

	langName := r.node.AttributeOr("lang", settings.DefaultLang)
	driver, err := r.mapper.config.drivers.Lookup(langName)
	if err != nil {
		return err
	}
	source, err := driver.NewSqlSource(expanded, r.node.Attribute("parameterType"))
	if err != nil {
		return errors.Wrapf(err, "failed to build sql source for %v", r.Id())
	}

	statementType := mapping.StatementType(r.node.AttributeOr("statementType", string(mapping.StatementPrepared)))
	if err = statementType.Validate(); err != nil {
		return err
	}
	isSelect := command == mapping.SQLCommandSelect
	flushCache, err := boolAttribute(r.node, "flushCache", !isSelect)
	if err != nil {
		return err
	}
	useCache, err := boolAttribute(r.node, "useCache", isSelect)
	if err != nil {
		return err
	}
	resultOrdered, err := boolAttribute(r.node, "resultOrdered", false)
	if err != nil {
		return err
	}
	fetchSize, err := intAttribute(r.node, "fetchSize", settings.DefaultFetchSize)
	if err != nil {
		return err
	}
	timeout, err := intAttribute(r.node, "timeout", settings.DefaultStatementTimeout)
	if err != nil {
		return err
	}

	resultType := r.node.Attribute("resultType")
	resultMap := r.node.Attribute("resultMap")
	if resultType != "" && resultMap != "" {
		return errors.Errorf("statement %v cannot use both resultType and resultMap", r.Id())
	}
	var resultMaps []string
	for _, id := range splitList(resultMap) {
		resultMaps = append(resultMaps, r.mapper.qualify(id))
	}

	statement := &mapping.MappedStatement{
		Id:            r.Id(),
		SQLCommand:    command,
		StatementType: statementType,
		SqlSource:     source,
		Lang:          langName,
		ParameterType: r.mapper.registry.ResolveAlias(r.node.Attribute("parameterType")),
		ParameterMap:  r.mapper.qualify(r.node.Attribute("parameterMap")),
		ResultType:    r.mapper.registry.ResolveAlias(resultType),
		ResultMaps:    resultMaps,
		ResultSetType: mapping.ResultSetType(r.node.AttributeOr("resultSetType", string(settings.DefaultResultSetType))),
		ResultSets:    splitList(r.node.Attribute("resultSets")),
		FetchSize:     fetchSize,
		Timeout:       timeout,
		FlushCache:    flushCache,
		UseCache:      useCache,
		ResultOrdered: resultOrdered,
		KeyProperty:   r.node.Attribute("keyProperty"),
		KeyColumn:     r.node.Attribute("keyColumn"),
		DatabaseId:    r.databaseId,
		Resource:      r.mapper.source,
	}
	if keyGenerator == nil {
		keyGenerator, err = r.defaultKeyGenerator(command)
		if err != nil {
			return err
		}
	}
	statement.KeyGenerator = keyGenerator
	r.statement = statement
	return nil
}

//register finalizes the statement. A cache bearing statement in a namespace with an
//unresolved cache-ref cannot be finalized yet and defers.
func (r *statementResolver) register() error {
	if r.statement.UseCache && r.mapper.registry.Settings.CacheEnabled {
		if _, ok := r.mapper.registry.CacheRef(r.mapper.namespace); ok {
			if _, err := r.mapper.registry.Cache(r.mapper.namespace); err != nil {
				return err
			}
		}
	}
	if r.selectKey != nil {
		if err := r.mapper.registry.RegisterStatement(r.selectKey); err != nil {
			return err
		}
		r.selectKey = nil
	}
	return r.mapper.registry.RegisterStatement(r.statement)
}

//expandIncludes replaces every fragment reference with the fragment content,
//recursively. A reference to a not yet loaded fragment is a terminal error.
func (r *statementResolver) expandIncludes(node *dom.Node) (*dom.Node, error) {
	result := node.Clone()
	if err := r.expandChildren(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statementResolver) expandChildren(node *dom.Node) error {
	var children []*dom.Node
	for _, child := range node.Children {
		if child.Name != "include" {
			if err := r.expandChildren(child); err != nil {
				return err
			}
			children = append(children, child)
			continue
		}
		refid := child.Attribute("refid")
		if refid == "" {
			return errors.Errorf("include refid was empty in %v", r.Id())
		}
		fragment, err := r.lookupFragment(refid)
		if err != nil {
			return err
		}
		content := fragment.Node.Clone()
		if err = r.expandChildren(content); err != nil {
			return err
		}
		children = append(children, content)
	}
	node.Children = children
	return nil
}

func (r *statementResolver) lookupFragment(refid string) (*mapping.Fragment, error) {
	if fragment, err := r.mapper.registry.Fragment(r.mapper.qualify(refid)); err == nil {
		return fragment, nil
	}
	fragment, err := r.mapper.registry.Fragment(refid)
	if err != nil {
		return nil, errors.Errorf("sql fragment %v referenced from %v is not loaded", refid, r.Id())
	}
	return fragment, nil
}

//extractSelectKey removes the generated key sub statement from the subtree and
//builds it as an internally named statement executed before or after its owner
func (r *statementResolver) extractSelectKey(node *dom.Node, command mapping.SQLCommandType) (mapping.KeyGenerator, error) {
	candidates := node.Elements("selectKey")
	if len(candidates) == 0 {
		return nil, nil
	}
	selected := r.selectKeyVariant(candidates)
	for _, candidate := range candidates {
		node.Remove(candidate)
	}
	if selected == nil {
		return nil, nil
	}
	settings := r.mapper.registry.Settings
	langName := selected.AttributeOr("lang", settings.DefaultLang)
	driver, err := r.mapper.config.drivers.Lookup(langName)
	if err != nil {
		return nil, err
	}
	source, err := driver.NewSqlSource(selected, selected.Attribute("parameterType"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build selectKey sql source for %v", r.Id())
	}
	statementType := mapping.StatementType(selected.AttributeOr("statementType", string(mapping.StatementPrepared)))
	if err = statementType.Validate(); err != nil {
		return nil, err
	}
	subId := r.Id() + mapping.SelectKeySuffix
	r.selectKey = &mapping.MappedStatement{
		Id:            subId,
		SQLCommand:    mapping.SQLCommandSelect,
		StatementType: statementType,
		SqlSource:     source,
		Lang:          langName,
		ParameterType: r.mapper.registry.ResolveAlias(selected.Attribute("parameterType")),
		ResultType:    r.mapper.registry.ResolveAlias(selected.Attribute("resultType")),
		KeyProperty:   selected.Attribute("keyProperty"),
		KeyColumn:     selected.Attribute("keyColumn"),
		KeyGenerator:  &mapping.NoKeyGenerator{},
		FlushCache:    false,
		UseCache:      false,
		Resource:      r.mapper.source,
	}
	before := strings.EqualFold(selected.AttributeOr("order", "AFTER"), "BEFORE")
	return &mapping.SelectKeyGenerator{StatementId: subId, Before: before}, nil
}

//selectKeyVariant prefers the vendor specific declaration over the neutral one
func (r *statementResolver) selectKeyVariant(candidates []*dom.Node) *dom.Node {
	databaseId := r.mapper.registry.DatabaseId()
	if databaseId != "" {
		for _, candidate := range candidates {
			if candidate.Attribute("databaseId") == databaseId {
				return candidate
			}
		}
	}
	for _, candidate := range candidates {
		if candidate.Attribute("databaseId") == "" {
			return candidate
		}
	}
	return nil
}

func (r *statementResolver) defaultKeyGenerator(command mapping.SQLCommandType) (mapping.KeyGenerator, error) {
	useGeneratedKeys, err := boolAttribute(r.node, "useGeneratedKeys",
		r.mapper.registry.Settings.UseGeneratedKeys && command == mapping.SQLCommandInsert)
	if err != nil {
		return nil, err
	}
	if useGeneratedKeys && command == mapping.SQLCommandInsert {
		return &mapping.VendorKeyGenerator{}, nil
	}
	return &mapping.NoKeyGenerator{}, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
