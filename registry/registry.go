package registry

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/sqlmap/cache"
	"github.com/viant/sqlmap/logger"
	"github.com/viant/sqlmap/mapping"
	"github.com/viant/sqlmap/shared"
	"github.com/viant/xreflect"
)

type (
	//Registry represents the single mutable store of all resolved and pending metadata
	//populated by one configuration load. A Registry serves exactly one load and must
	//not be shared across concurrent loads.
	Registry struct {
		Settings *Settings

		statements    mapping.NamedStatements
		resultMaps    mapping.NamedResultMaps
		fragments     mapping.NamedFragments
		parameterMaps mapping.NamedParameterMaps

		caches    map[string]cache.Cache
		cacheRefs map[string]string

		loadedSources map[string]bool

		pendingCacheRefs  []*Pending
		pendingResultMaps []*Pending
		pendingStatements []*Pending

		types   *xreflect.Types
		aliases map[string]string

		environments Environments
		environment  *Environment
		databaseId   string

		interceptors []*Interceptor
		factoryHooks []*FactoryHook
		typeHandlers []*TypeHandler
		bindings     []string

		metrics *Metrics
		logger  *logger.Adapter
	}

	//Option customizes a registry
	Option func(r *Registry)
)

//WithMetrics sets load metrics service
func WithMetrics(metrics *Metrics) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

//WithTypes sets parent type registry
func WithTypes(types *xreflect.Types) Option {
	return func(r *Registry) {
		r.types = xreflect.NewTypes(xreflect.WithRegistry(types))
	}
}

//WithLogger sets load tracing adapter
func WithLogger(adapter *logger.Adapter) Option {
	return func(r *Registry) {
		r.logger = adapter
	}
}

//New creates a registry for one configuration load
func New(options ...Option) *Registry {
	result := &Registry{
		Settings:      NewSettings(),
		statements:    mapping.NamedStatements{},
		resultMaps:    mapping.NamedResultMaps{},
		fragments:     mapping.NamedFragments{},
		parameterMaps: mapping.NamedParameterMaps{},
		caches:        map[string]cache.Cache{},
		cacheRefs:     map[string]string{},
		loadedSources: map[string]bool{},
		aliases:       map[string]string{},
	}
	for _, option := range options {
		option(result)
	}
	if result.types == nil {
		result.types = xreflect.NewTypes()
	}
	if result.logger == nil {
		result.logger = logger.Default()
	}
	return result
}

//Logger returns load tracing adapter
func (r *Registry) Logger() *logger.Adapter {
	return r.logger
}

//Metrics returns load metrics service if set
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

//Types returns type registry
func (r *Registry) Types() *xreflect.Types {
	return r.types
}

//RegisterSource registers a source identity, returning false when already loaded.
//Callers rely on it to guarantee at most once parsing per document.
func (r *Registry) RegisterSource(id string) bool {
	if r.loadedSources[id] {
		return false
	}
	r.loadedSources[id] = true
	return true
}

//RegisterAlias registers a type alias, resolvable aliases are also
//registered with the reflect type registry
func (r *Registry) RegisterAlias(alias, typeName string) error {
	if alias == "" || typeName == "" {
		return errors.New("typeAlias requires both alias and type")
	}
	key := strings.ToLower(alias)
	if registered, ok := r.aliases[key]; ok && registered != typeName {
		return &DuplicateError{Kind: "typeAlias", Id: alias}
	}
	r.aliases[key] = typeName
	if rType, err := r.types.Lookup(typeName); err == nil && rType != nil {
		_ = r.types.Register(alias, xreflect.WithReflectType(rType))
	}
	return nil
}

//ResolveAlias returns registered type name for alias, or the input when not aliased
func (r *Registry) ResolveAlias(alias string) string {
	if alias == "" {
		return ""
	}
	if typeName, ok := r.aliases[strings.ToLower(alias)]; ok {
		return typeName
	}
	return alias
}

//RegisterResultMap registers a resolved result map
func (r *Registry) RegisterResultMap(resultMap *mapping.ResultMap) error {
	if _, ok := r.resultMaps[resultMap.Id]; ok {
		return &DuplicateError{Kind: "resultMap", Id: resultMap.Id}
	}
	return r.resultMaps.Register(resultMap)
}

//ResultMap returns resolved result map, missing id yields a deferrable incomplete error
func (r *Registry) ResultMap(id string) (*mapping.ResultMap, error) {
	result, ok := r.resultMaps[id]
	if !ok {
		return nil, NewIncompleteError("resultMap", id)
	}
	return result, nil
}

//HasResultMap returns true when result map is registered
func (r *Registry) HasResultMap(id string) bool {
	_, ok := r.resultMaps[id]
	return ok
}

//RegisterStatement registers a resolved statement
func (r *Registry) RegisterStatement(statement *mapping.MappedStatement) error {
	if _, ok := r.statements[statement.Id]; ok {
		return &DuplicateError{Kind: "statement", Id: statement.Id}
	}
	if err := r.statements.Register(statement); err != nil {
		return err
	}
	r.logger.StatementRegistered(statement.Id)
	return nil
}

//Statement returns resolved statement with given id
func (r *Registry) Statement(id string) (*mapping.MappedStatement, error) {
	return r.statements.Lookup(id)
}

//HasStatement returns true when statement is registered
func (r *Registry) HasStatement(id string) bool {
	return r.statements.Has(id)
}

//RegisterFragment registers a reusable SQL fragment
func (r *Registry) RegisterFragment(fragment *mapping.Fragment) error {
	if _, ok := r.fragments[fragment.Id]; ok {
		return &DuplicateError{Kind: "sql fragment", Id: fragment.Id}
	}
	return r.fragments.Register(fragment)
}

//Fragment returns fragment with given id
func (r *Registry) Fragment(id string) (*mapping.Fragment, error) {
	return r.fragments.Lookup(id)
}

//HasFragment returns true when fragment is registered
func (r *Registry) HasFragment(id string) bool {
	_, ok := r.fragments[id]
	return ok
}

//RegisterParameterMap registers a legacy parameter map
func (r *Registry) RegisterParameterMap(parameterMap *mapping.ParameterMap) error {
	if _, ok := r.parameterMaps[parameterMap.Id]; ok {
		return &DuplicateError{Kind: "parameterMap", Id: parameterMap.Id}
	}
	return r.parameterMaps.Register(parameterMap)
}

//ParameterMap returns parameter map with given id
func (r *Registry) ParameterMap(id string) (*mapping.ParameterMap, error) {
	return r.parameterMaps.Lookup(id)
}

//RegisterCache registers a namespace cache instance
func (r *Registry) RegisterCache(namespace string, aCache cache.Cache) error {
	if _, ok := r.caches[namespace]; ok {
		return &DuplicateError{Kind: "cache", Id: namespace}
	}
	r.caches[namespace] = aCache
	return nil
}

//AssignCache sets namespace cache unconditionally, replacing a shared assignment
func (r *Registry) AssignCache(namespace string, aCache cache.Cache) {
	r.caches[namespace] = aCache
}

//RegisterCacheRef records namespace to namespace cache sharing
func (r *Registry) RegisterCacheRef(namespace, referenced string) {
	r.cacheRefs[namespace] = referenced
}

//CacheRef returns referenced namespace for given namespace
func (r *Registry) CacheRef(namespace string) (string, bool) {
	referenced, ok := r.cacheRefs[namespace]
	return referenced, ok
}

//Cache returns namespace cache, missing yields a deferrable incomplete error
func (r *Registry) Cache(namespace string) (cache.Cache, error) {
	result, ok := r.caches[namespace]
	if !ok {
		return nil, NewIncompleteError("cache", namespace)
	}
	return result, nil
}

//ShareCache assigns referenced namespace cache to the referencing namespace.
//A cache already assigned locally wins over the shared one.
func (r *Registry) ShareCache(namespace, referenced string) error {
	source, err := r.Cache(referenced)
	if err != nil {
		return err
	}
	if _, ok := r.caches[namespace]; ok {
		return nil
	}
	r.caches[namespace] = source
	return nil
}

//RegisterEnvironment registers a declared environment
func (r *Registry) RegisterEnvironment(environment *Environment) error {
	if err := environment.Validate(); err != nil {
		return err
	}
	return r.environments.Register(environment)
}

//SelectEnvironment makes environment with given id active
func (r *Registry) SelectEnvironment(id string) error {
	environment, err := r.environments.Lookup(id)
	if err != nil {
		return err
	}
	r.environment = environment
	return nil
}

//Environment returns the active environment if selected
func (r *Registry) Environment() *Environment {
	return r.environment
}

//SetDatabaseId sets active vendor discriminator
func (r *Registry) SetDatabaseId(id string) {
	r.databaseId = id
}

//DatabaseId returns active vendor discriminator
func (r *Registry) DatabaseId() string {
	return r.databaseId
}

//RegisterInterceptor records a plugin declaration
func (r *Registry) RegisterInterceptor(interceptor *Interceptor) error {
	if err := interceptor.Validate(); err != nil {
		return err
	}
	r.interceptors = append(r.interceptors, interceptor)
	return nil
}

//Interceptors returns plugin declarations in declaration order
func (r *Registry) Interceptors() []*Interceptor {
	return r.interceptors
}

//RegisterFactoryHook records an object/wrapper/reflector factory override
func (r *Registry) RegisterFactoryHook(hook *FactoryHook) {
	r.factoryHooks = append(r.factoryHooks, hook)
}

//RegisterTypeHandler records a type handler declaration
func (r *Registry) RegisterTypeHandler(handler *TypeHandler) error {
	if err := handler.Validate(); err != nil {
		return err
	}
	r.typeHandlers = append(r.typeHandlers, handler)
	return nil
}

//RegisterBinding records a class mode mapper interface binding
func (r *Registry) RegisterBinding(name string) error {
	if name == "" {
		return errors.New("mapper class was empty")
	}
	for _, candidate := range r.bindings {
		if candidate == name {
			return nil
		}
	}
	r.bindings = append(r.bindings, name)
	return nil
}

//Bindings returns recorded mapper interface bindings
func (r *Registry) Bindings() []string {
	return r.bindings
}

//AddPendingCacheRef appends a deferred cache-ref resolution
func (r *Registry) AddPendingCacheRef(pending *Pending) {
	r.pendingCacheRefs = append(r.pendingCacheRefs, pending)
}

//AddPendingResultMap appends a deferred result map resolution
func (r *Registry) AddPendingResultMap(pending *Pending) {
	r.pendingResultMaps = append(r.pendingResultMaps, pending)
}

//AddPendingStatement appends a deferred statement resolution
func (r *Registry) AddPendingStatement(pending *Pending) {
	r.pendingStatements = append(r.pendingStatements, pending)
}

//PendingCount returns outstanding deferred resolutions
func (r *Registry) PendingCount() int {
	return len(r.pendingCacheRefs) + len(r.pendingResultMaps) + len(r.pendingStatements)
}

//ResolvePending retries deferred resolutions until a pass discharges nothing.
//Entries still blocked remain pending, a non deferrable retry failure aborts.
func (r *Registry) ResolvePending() error {
	for {
		discharged := 0
		var err error
		var count int
		if r.pendingCacheRefs, count, err = r.drainLogged(r.pendingCacheRefs); err != nil {
			return err
		}
		discharged += count
		if r.pendingResultMaps, count, err = r.drainLogged(r.pendingResultMaps); err != nil {
			return err
		}
		discharged += count
		if r.pendingStatements, count, err = r.drainLogged(r.pendingStatements); err != nil {
			return err
		}
		discharged += count
		if discharged == 0 || r.PendingCount() == 0 {
			return nil
		}
	}
}

func (r *Registry) drainLogged(pending []*Pending) ([]*Pending, int, error) {
	remaining, discharged, err := drain(pending)
	if err != nil {
		return nil, 0, err
	}
	still := map[*Pending]bool{}
	for _, item := range remaining {
		still[item] = true
	}
	for _, item := range pending {
		r.logger.PendingRetry(item.Kind, item.Element, !still[item])
	}
	return remaining, discharged, nil
}

//Complete verifies the registry is fully linked: zero pending resolutions, every
//statement result map reference registered, and every result map's nested and
//discriminator case references registered.
func (r *Registry) Complete() error {
	collected := shared.NewErrors()
	for _, pending := range r.allPending() {
		origin := pending.Err()
		if origin == nil {
			origin = errors.Errorf("%v %v was never resolved", pending.Kind, pending.Element)
		}
		collected.Append(&BuildError{Source: pending.Source, Element: pending.Element, Origin: origin})
	}
	for _, id := range r.StatementIds() {
		statement := r.statements[id]
		for _, resultMapId := range statement.ResultMaps {
			if r.HasResultMap(resultMapId) {
				continue
			}
			collected.Append(&BuildError{
				Source:  statement.Resource,
				Element: statement.Id,
				Origin:  errors.Errorf("resultMap %v is not registered", resultMapId),
			})
		}
	}
	for _, id := range r.ResultMapIds() {
		resultMap := r.resultMaps[id]
		for _, item := range resultMap.Mappings {
			if item.NestedResultMap == "" || r.HasResultMap(item.NestedResultMap) {
				continue
			}
			collected.Append(&BuildError{
				Element: resultMap.Id,
				Origin:  errors.Errorf("nested resultMap %v is not registered", item.NestedResultMap),
			})
		}
		if resultMap.Discriminator == nil {
			continue
		}
		values := make([]string, 0, len(resultMap.Discriminator.Cases))
		for value := range resultMap.Discriminator.Cases {
			values = append(values, value)
		}
		sort.Strings(values)
		for _, value := range values {
			caseId := resultMap.Discriminator.Cases[value]
			if r.HasResultMap(caseId) {
				continue
			}
			collected.Append(&BuildError{
				Element: resultMap.Id,
				Origin:  errors.Errorf("discriminator case %v resultMap %v is not registered", value, caseId),
			})
		}
	}
	return collected.Error()
}

func (r *Registry) allPending() []*Pending {
	var result []*Pending
	result = append(result, r.pendingCacheRefs...)
	result = append(result, r.pendingResultMaps...)
	result = append(result, r.pendingStatements...)
	return result
}

//StatementIds returns sorted registered statement ids
func (r *Registry) StatementIds() []string {
	result := make([]string, 0, len(r.statements))
	for id := range r.statements {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

//ResultMapIds returns sorted registered result map ids
func (r *Registry) ResultMapIds() []string {
	result := make([]string, 0, len(r.resultMaps))
	for id := range r.resultMaps {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

//CacheNamespaces returns sorted namespaces with an assigned cache
func (r *Registry) CacheNamespaces() []string {
	result := make([]string, 0, len(r.caches))
	for namespace := range r.caches {
		result = append(result, namespace)
	}
	sort.Strings(result)
	return result
}
