package loader

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	rdata "github.com/viant/toolbox/data"
	"gopkg.in/yaml.v3"

	"github.com/viant/sqlmap/dom"
	"github.com/viant/sqlmap/lang"
	"github.com/viant/sqlmap/logger"
	"github.com/viant/sqlmap/registry"
)

type (
	//Config represents the root configuration resolver, it owns one registry
	//for the duration of one load and drives per mapper resolution.
	Config struct {
		fs          afs.Service
		registry    *registry.Registry
		drivers     lang.Drivers
		properties  rdata.Map
		environment string
		sourceURL   string
	}

	//Option customizes the resolver
	Option func(c *Config)
)

//WithRegistry sets the registry populated by the load
func WithRegistry(aRegistry *registry.Registry) Option {
	return func(c *Config) {
		c.registry = aRegistry
	}
}

//WithFs sets document loading service
func WithFs(fs afs.Service) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

//WithProperties sets override properties taking precedence over declared ones
func WithProperties(properties map[string]string) Option {
	return func(c *Config) {
		for k, v := range properties {
			c.properties.Put(k, v)
		}
	}
}

//WithEnvironment overrides the default environment selector
func WithEnvironment(id string) Option {
	return func(c *Config) {
		c.environment = id
	}
}

//WithDriver registers an additional language driver
func WithDriver(name string, driver lang.Driver) Option {
	return func(c *Config) {
		c.drivers.Register(name, driver)
	}
}

//New creates a root configuration resolver
func New(options ...Option) *Config {
	result := &Config{
		fs:         afs.New(),
		drivers:    lang.New(),
		properties: rdata.Map{},
	}
	for _, opt := range options {
		opt(result)
	}
	if result.registry == nil {
		result.registry = registry.New()
	}
	return result
}

//Registry returns the registry owned by this load
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

//LoadURL loads and resolves a configuration document with given URL
func (c *Config) LoadURL(ctx context.Context, URL string) (*registry.Registry, error) {
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load configuration: %v", URL)
	}
	return c.Load(ctx, data, URL)
}

//Load resolves a configuration document supplied as data. On failure the registry
//is left in an inconsistent state and has to be discarded by the caller.
func (c *Config) Load(ctx context.Context, data []byte, sourceURL string) (*registry.Registry, error) {
	root, err := dom.Parse(data)
	if err != nil {
		return nil, &registry.BuildError{Source: sourceURL, Origin: err}
	}
	if root.Name != "configuration" {
		return nil, &registry.BuildError{Source: sourceURL, Origin: errors.Errorf("expected configuration element, had: %v", root.Name)}
	}
	c.sourceURL = sourceURL
	if err = c.parseConfiguration(ctx, root); err != nil {
		if _, ok := err.(*registry.BuildError); ok {
			return nil, err
		}
		return nil, &registry.BuildError{Source: sourceURL, Origin: err}
	}
	if err = c.registry.ResolvePending(); err != nil {
		return nil, err
	}
	if err = c.registry.Complete(); err != nil {
		return nil, err
	}
	return c.registry, nil
}

//parseConfiguration processes root document sections, the order is significant:
//earlier sections influence defaults applied by later ones.
func (c *Config) parseConfiguration(ctx context.Context, root *dom.Node) error {
	if err := c.parseProperties(ctx, root.Element("properties")); err != nil {
		return err
	}
	root.Expand(&c.properties)
	if err := c.parseSettings(root.Element("settings")); err != nil {
		return err
	}
	if err := c.parseTypeAliases(root.Element("typeAliases")); err != nil {
		return err
	}
	if err := c.parsePlugins(root.Element("plugins")); err != nil {
		return err
	}
	for _, kind := range []string{"objectFactory", "objectWrapperFactory", "reflectorFactory"} {
		c.parseFactoryHook(kind, root.Element(kind))
	}
	if err := c.parseEnvironments(root.Element("environments")); err != nil {
		return err
	}
	if err := c.parseDatabaseIdProvider(root.Element("databaseIdProvider")); err != nil {
		return err
	}
	if err := c.parseTypeHandlers(root.Element("typeHandlers")); err != nil {
		return err
	}
	return c.parseMappers(ctx, root.Element("mappers"))
}

func (c *Config) parseProperties(ctx context.Context, node *dom.Node) error {
	if node == nil {
		return nil
	}
	declared := rdata.Map{}
	for _, child := range node.Elements("property") {
		name := child.Attribute("name")
		if name == "" {
			return errors.New("property name was empty")
		}
		declared.Put(name, child.Attribute("value"))
	}
	location := node.Attribute("resource")
	if location == "" {
		location = node.Attribute("url")
	} else if node.Attribute("url") != "" {
		return errors.New("properties declaration cannot use both resource and url")
	}
	if location != "" {
		loaded, err := c.loadProperties(ctx, location)
		if err != nil {
			return err
		}
		for k, v := range loaded {
			declared.Put(k, v)
		}
	}
	//override properties supplied programmatically win
	for k, v := range c.properties {
		declared.Put(k, v)
	}
	c.properties = declared
	return nil
}

//loadProperties reads an external properties resource, .yaml and key=value forms are supported
func (c *Config) loadProperties(ctx context.Context, location string) (map[string]string, error) {
	URL := c.resolveURL(location)
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load properties: %v", URL)
	}
	result := map[string]string{}
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		transient := map[string]interface{}{}
		if err := yaml.Unmarshal(data, &transient); err != nil {
			return nil, errors.Wrapf(err, "failed to parse properties: %v", URL)
		}
		for k, v := range transient {
			result[k] = asString(v)
		}
	default:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			pair := strings.SplitN(line, "=", 2)
			if len(pair) != 2 {
				return nil, errors.Errorf("invalid property line: '%v' in %v", line, URL)
			}
			result[strings.TrimSpace(pair[0])] = strings.TrimSpace(pair[1])
		}
	}
	return result, nil
}

func (c *Config) parseSettings(node *dom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Elements("setting") {
		if err := c.registry.Settings.Apply(child.Attribute("name"), child.Attribute("value")); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) parseTypeAliases(node *dom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Elements() {
		if child.Name != "typeAlias" {
			return errors.Errorf("unsupported typeAliases child: %v", child.Name)
		}
		if err := c.registry.RegisterAlias(child.Attribute("alias"), child.Attribute("type")); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) parsePlugins(node *dom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Elements("plugin") {
		interceptor := &registry.Interceptor{
			Name:       child.Attribute("interceptor"),
			Properties: readProperties(child),
		}
		if err := c.registry.RegisterInterceptor(interceptor); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) parseFactoryHook(kind string, node *dom.Node) {
	if node == nil {
		return
	}
	c.registry.RegisterFactoryHook(&registry.FactoryHook{
		Kind:       kind,
		Name:       node.Attribute("type"),
		Properties: readProperties(node),
	})
}

func (c *Config) parseEnvironments(node *dom.Node) error {
	if node == nil {
		return nil
	}
	selector := c.environment
	if selector == "" {
		selector = node.Attribute("default")
	}
	if selector == "" {
		return errors.New("environments default selector was empty")
	}
	for _, child := range node.Elements("environment") {
		environment, err := c.parseEnvironment(child)
		if err != nil {
			return err
		}
		if err = c.registry.RegisterEnvironment(environment); err != nil {
			return err
		}
	}
	return c.registry.SelectEnvironment(selector)
}

func (c *Config) parseEnvironment(node *dom.Node) (*registry.Environment, error) {
	result := &registry.Environment{Id: node.Attribute("id")}
	if manager := node.Element("transactionManager"); manager != nil {
		result.TransactionManager = manager.Attribute("type")
	}
	source := node.Element("dataSource")
	if source == nil {
		return nil, errors.Errorf("environment %v has no dataSource", result.Id)
	}
	properties := readProperties(source)
	result.DataSource = &registry.DataSource{
		Kind:   source.Attribute("type"),
		Driver: properties["driver"],
		DSN:    properties["url"],
	}
	delete(properties, "driver")
	delete(properties, "url")
	if len(properties) > 0 {
		result.DataSource.Properties = properties
	}
	return result, nil
}

func (c *Config) parseDatabaseIdProvider(node *dom.Node) error {
	if node == nil {
		return nil
	}
	provider := &registry.DatabaseIdProvider{
		Kind:       node.Attribute("type"),
		Properties: readProperties(node),
	}
	environment := c.registry.Environment()
	if environment == nil {
		return errors.New("databaseIdProvider requires an active environment")
	}
	c.registry.SetDatabaseId(provider.DatabaseId(environment.DataSource.Driver))
	return nil
}

func (c *Config) parseTypeHandlers(node *dom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Elements("typeHandler") {
		handler := &registry.TypeHandler{
			JavaType: c.registry.ResolveAlias(child.Attribute("javaType")),
			JdbcType: child.Attribute("jdbcType"),
			Handler:  child.Attribute("handler"),
		}
		if err := c.registry.RegisterTypeHandler(handler); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) parseMappers(ctx context.Context, node *dom.Node) error {
	if node == nil {
		return nil
	}
	for _, child := range node.Elements() {
		switch child.Name {
		case "mapper":
			if err := c.parseMapperSource(ctx, child); err != nil {
				return err
			}
		case "package":
			if err := c.scanMappers(ctx, child.Attribute("name")); err != nil {
				return err
			}
		default:
			return errors.Errorf("unsupported mappers child: %v", child.Name)
		}
	}
	return nil
}

//parseMapperSource dispatches one mapper declaration, exactly one addressing mode is allowed
func (c *Config) parseMapperSource(ctx context.Context, node *dom.Node) error {
	resource := node.Attribute("resource")
	address := node.Attribute("url")
	class := node.Attribute("class")
	modes := 0
	for _, mode := range []string{resource, address, class} {
		if mode != "" {
			modes++
		}
	}
	if modes != 1 {
		return errors.Errorf("mapper declaration requires exactly one of resource, url or class, had: %v", modes)
	}
	switch {
	case resource != "":
		return c.loadMapper(ctx, c.resolveURL(resource))
	case address != "":
		return c.loadMapper(ctx, address)
	default:
		return c.registry.RegisterBinding(class)
	}
}

//scanMappers loads every mapper document under given location
func (c *Config) scanMappers(ctx context.Context, location string) error {
	if location == "" {
		return errors.New("mapper package name was empty")
	}
	URL := c.resolveURL(location)
	objects, err := c.fs.List(ctx, URL, option.NewRecursive(true))
	if err != nil {
		return errors.Wrapf(err, "failed to scan mappers: %v", URL)
	}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".xml") {
			continue
		}
		if err = c.loadMapper(ctx, object.URL()); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) loadMapper(ctx context.Context, URL string) error {
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return errors.Wrapf(err, "failed to load mapper: %v", URL)
	}
	return c.LoadMapper(ctx, data, URL)
}

//LoadMapper resolves a single mapper document, idempotent per source identity
func (c *Config) LoadMapper(ctx context.Context, data []byte, sourceURL string) error {
	onDone := c.loadCounter().Begin(time.Now())
	defer onDone(time.Now())
	started := time.Now()
	root, err := dom.Parse(data)
	if err != nil {
		return &registry.BuildError{Source: sourceURL, Origin: err}
	}
	root.Expand(&c.properties)
	mapper := newMapper(c, sourceURL)
	if err = mapper.Parse(ctx, root); err != nil {
		if _, ok := err.(*registry.BuildError); ok {
			return err
		}
		return &registry.BuildError{Source: sourceURL, Origin: err}
	}
	c.registry.Logger().SourceLoaded(sourceURL, mapper.namespace, time.Since(started))
	return nil
}

func (c *Config) loadCounter() *logger.CounterAdapter {
	metrics := c.registry.Metrics()
	if metrics == nil {
		return logger.NewCounter(nil)
	}
	operation := metrics.LoadCounter("mapper.load", "mapper document load")
	if operation == nil {
		return logger.NewCounter(nil)
	}
	return logger.NewCounter(operation)
}

//resolveURL resolves location against the configuration document URL
func (c *Config) resolveURL(location string) string {
	if url.Scheme(location, "") != "" || !url.IsRelative(location) || c.sourceURL == "" {
		return location
	}
	parent, _ := url.Split(c.sourceURL, file.Scheme)
	return url.Join(parent, location)
}

//readProperties collects property child elements into a map
func readProperties(node *dom.Node) map[string]string {
	result := map[string]string{}
	for _, child := range node.Elements("property") {
		result[child.Attribute("name")] = child.Attribute("value")
	}
	return result
}

func asString(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return actual
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", actual)
	}
}
