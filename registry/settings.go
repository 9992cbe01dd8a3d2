package registry

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/viant/sqlmap/mapping"
)

//Settings represents an immutable snapshot of load wide defaults, captured from the
//root document before any mapper is resolved and passed to every resolver.
type Settings struct {
	CacheEnabled             bool
	LazyLoading              bool
	AggressiveLazyLoading    bool
	UseGeneratedKeys         bool
	MapUnderscoreToCamelCase bool
	SafeRowBoundsEnabled     bool
	MultipleResultSets       bool
	UseColumnLabel           bool

	AutoMapping          mapping.AutoMappingBehavior
	DefaultResultSetType mapping.ResultSetType
	DefaultExecutorType  string
	DefaultLang          string

	DefaultStatementTimeout int
	DefaultFetchSize        int

	LogPrefix string
}

//NewSettings creates settings with defaults
func NewSettings() *Settings {
	return &Settings{
		CacheEnabled:         true,
		UseColumnLabel:       true,
		MultipleResultSets:   true,
		AutoMapping:          mapping.AutoMappingPartial,
		DefaultResultSetType: mapping.ResultSetDefault,
		DefaultExecutorType:  "simple",
		DefaultLang:          "raw",
	}
}

//Apply applies a single named setting, unknown names are rejected
func (s *Settings) Apply(name, value string) error {
	switch name {
	case "cacheEnabled":
		return s.applyBool(name, value, &s.CacheEnabled)
	case "lazyLoadingEnabled":
		return s.applyBool(name, value, &s.LazyLoading)
	case "aggressiveLazyLoading":
		return s.applyBool(name, value, &s.AggressiveLazyLoading)
	case "useGeneratedKeys":
		return s.applyBool(name, value, &s.UseGeneratedKeys)
	case "mapUnderscoreToCamelCase":
		return s.applyBool(name, value, &s.MapUnderscoreToCamelCase)
	case "safeRowBoundsEnabled":
		return s.applyBool(name, value, &s.SafeRowBoundsEnabled)
	case "multipleResultSetsEnabled":
		return s.applyBool(name, value, &s.MultipleResultSets)
	case "useColumnLabel":
		return s.applyBool(name, value, &s.UseColumnLabel)
	case "autoMappingBehavior":
		behavior := mapping.AutoMappingBehavior(value)
		if err := behavior.Validate(); err != nil {
			return err
		}
		s.AutoMapping = behavior
	case "defaultResultSetType":
		s.DefaultResultSetType = mapping.ResultSetType(value)
	case "defaultExecutorType":
		s.DefaultExecutorType = value
	case "defaultScriptingLanguage":
		s.DefaultLang = value
	case "defaultStatementTimeout":
		return s.applyInt(name, value, &s.DefaultStatementTimeout)
	case "defaultFetchSize":
		return s.applyInt(name, value, &s.DefaultFetchSize)
	case "logPrefix":
		s.LogPrefix = value
	default:
		return errors.Errorf("setting %v is not known, make sure it is spelled correctly", name)
	}
	return nil
}

func (s *Settings) applyBool(name, value string, target *bool) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return errors.Wrapf(err, "invalid %v setting value: %v", name, value)
	}
	*target = parsed
	return nil
}

func (s *Settings) applyInt(name, value string, target *int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(err, "invalid %v setting value: %v", name, value)
	}
	*target = parsed
	return nil
}
