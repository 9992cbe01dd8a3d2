package loader

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/viant/sqlmap/cache"
	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/mapping"
	"github.com/viant/sqlmap/registry"
)

//Mapper resolves one mapper document into the shared registry, at most once
//per distinct source identity.
type Mapper struct {
	config    *Config
	registry  *registry.Registry
	source    string
	namespace string
}

func newMapper(config *Config, source string) *Mapper {
	return &Mapper{config: config, registry: config.registry, source: source}
}

//Parse registers document declarations. Step order matters: statements depend on
//fragments and caches, caches on cache-refs.
func (m *Mapper) Parse(ctx context.Context, root *dom.Node) error {
	if root.Name != "mapper" {
		return errors.Errorf("expected mapper element, had: %v", root.Name)
	}
	if !m.registry.RegisterSource(m.source) {
		return nil
	}
	m.namespace = strings.TrimSpace(root.Attribute("namespace"))
	if m.namespace == "" {
		return errors.New("mapper namespace is mandatory and cannot be empty")
	}
	if err := m.parseCacheRef(root.Element("cache-ref")); err != nil {
		return err
	}
	if err := m.parseCache(root.Element("cache")); err != nil {
		return err
	}
	for _, node := range root.Elements("parameterMap") {
		if err := m.parseParameterMap(node); err != nil {
			return err
		}
	}
	for _, node := range root.Elements("resultMap") {
		if err := m.parseResultMap(node); err != nil {
			return err
		}
	}
	if err := m.parseFragments(root.Elements("sql")); err != nil {
		return err
	}
	if err := m.parseStatements(root); err != nil {
		return err
	}
	//this document may have supplied dependencies earlier documents were blocked on
	return m.registry.ResolvePending()
}

//qualify applies the document namespace to an unqualified id
func (m *Mapper) qualify(id string) string {
	if id == "" || strings.Contains(id, ".") {
		return id
	}
	return m.namespace + "." + id
}

func (m *Mapper) parseCacheRef(node *dom.Node) error {
	if node == nil {
		return nil
	}
	referenced := node.Attribute("namespace")
	if referenced == "" {
		return errors.New("cache-ref namespace was empty")
	}
	m.registry.RegisterCacheRef(m.namespace, referenced)
	err := m.registry.ShareCache(m.namespace, referenced)
	if err == nil {
		return nil
	}
	if !registry.IsIncomplete(err) {
		return err
	}
	namespace, target := m.namespace, referenced
	aRegistry := m.registry
	aRegistry.AddPendingCacheRef(registry.NewPending("cacheRef", m.source, namespace, func() error {
		return aRegistry.ShareCache(namespace, target)
	}))
	return nil
}

func (m *Mapper) parseCache(node *dom.Node) error {
	if node == nil {
		return nil
	}
	builder := cache.NewBuilder(m.namespace)
	builder.Eviction(strings.ToLower(node.Attribute("eviction")))
	if value := node.Attribute("size"); value != "" {
		size, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid cache size: %v", value)
		}
		builder.Size(size)
	}
	if value := node.Attribute("flushInterval"); value != "" {
		interval, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid cache flushInterval: %v", value)
		}
		builder.FlushIntervalMs(interval)
	}
	readOnly, err := boolAttribute(node, "readOnly", false)
	if err != nil {
		return err
	}
	builder.ReadOnly(readOnly)
	builder.Properties(readProperties(node))
	built, err := builder.Build()
	if err != nil {
		return err
	}
	//a local cache takes precedence over an earlier cache-ref assignment
	if _, ok := m.registry.CacheRef(m.namespace); ok {
		m.registry.AssignCache(m.namespace, built)
		return nil
	}
	return m.registry.RegisterCache(m.namespace, built)
}

func (m *Mapper) parseParameterMap(node *dom.Node) error {
	id := node.Attribute("id")
	if id == "" {
		return errors.New("parameterMap id was empty")
	}
	result := &mapping.ParameterMap{
		Id:   m.qualify(id),
		Type: m.registry.ResolveAlias(node.Attribute("type")),
	}
	for _, child := range node.Elements("parameter") {
		result.Mappings = append(result.Mappings, &mapping.ParameterMapping{
			Property: child.Attribute("property"),
			JavaType: m.registry.ResolveAlias(child.Attribute("javaType")),
			JdbcType: child.Attribute("jdbcType"),
			Mode:     child.Attribute("mode"),
		})
	}
	return m.registry.RegisterParameterMap(result)
}

func (m *Mapper) parseResultMap(node *dom.Node) error {
	resolver := newResultMapResolver(m, node, "")
	_, err := resolver.Resolve()
	if err == nil {
		return nil
	}
	if !registry.IsIncomplete(err) {
		return err
	}
	m.registry.AddPendingResultMap(registry.NewPending("resultMap", m.source, resolver.Id(), resolver.retry))
	return nil
}

//parseFragments registers sql fragments, vendor specific variants take
//precedence over vendor neutral ones sharing the same id
func (m *Mapper) parseFragments(nodes []*dom.Node) error {
	databaseId := m.registry.DatabaseId()
	if databaseId != "" {
		for _, node := range nodes {
			if node.Attribute("databaseId") != databaseId {
				continue
			}
			if err := m.parseFragment(node, databaseId); err != nil {
				return err
			}
		}
	}
	for _, node := range nodes {
		if node.Attribute("databaseId") != "" {
			continue
		}
		if err := m.parseFragment(node, ""); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mapper) parseFragment(node *dom.Node, databaseId string) error {
	id := node.Attribute("id")
	if id == "" {
		return errors.New("sql fragment id was empty")
	}
	qualified := m.qualify(id)
	if databaseId == "" && m.registry.HasFragment(qualified) {
		//suppressed by a vendor specific variant
		return nil
	}
	return m.registry.RegisterFragment(&mapping.Fragment{Id: qualified, Node: node, DatabaseId: databaseId})
}

func (m *Mapper) parseStatements(root *dom.Node) error {
	nodes := root.Elements("select", "insert", "update", "delete")
	databaseId := m.registry.DatabaseId()
	//a vendor variant suppresses its neutral counterpart even when registration
	//is deferred, track vendor pass ids locally rather than via registry lookup
	vendored := map[string]bool{}
	if databaseId != "" {
		for _, node := range nodes {
			if node.Attribute("databaseId") != databaseId {
				continue
			}
			if err := m.parseStatement(node, databaseId); err != nil {
				return err
			}
			vendored[m.qualify(node.Attribute("id"))] = true
		}
	}
	for _, node := range nodes {
		if node.Attribute("databaseId") != "" {
			continue
		}
		if vendored[m.qualify(node.Attribute("id"))] {
			continue
		}
		if err := m.parseStatement(node, ""); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mapper) parseStatement(node *dom.Node, databaseId string) error {
	resolver := newStatementResolver(m, node, databaseId)
	err := resolver.Resolve()
	if err == nil {
		return nil
	}
	if !registry.IsIncomplete(err) {
		return err
	}
	m.registry.AddPendingStatement(registry.NewPending("statement", m.source, resolver.Id(), resolver.retry))
	return nil
}

func boolAttribute(node *dom.Node, name string, defaultValue bool) (bool, error) {
	value := node.Attribute(name)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "invalid %v attribute value: %v", name, value)
	}
	return parsed, nil
}

func intAttribute(node *dom.Node, name string, defaultValue int) (int, error) {
	value := node.Attribute(name)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %v attribute value: %v", name, value)
	}
	return parsed, nil
}
