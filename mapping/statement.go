package mapping

import (
	"fmt"
	"strings"
)

type (
	//SQLCommandType represents statement command kind
	SQLCommandType string

	//StatementType represents statement execution kind
	StatementType string

	//ResultSetType represents result set scroll mode
	ResultSetType string

	//MappedStatement represents a fully resolved executable statement descriptor
	MappedStatement struct {
		Id            string
		SQLCommand    SQLCommandType
		StatementType StatementType
		SqlSource     SqlSource
		Lang          string `json:",omitempty"`

		ParameterType string `json:",omitempty"`
		ParameterMap  string `json:",omitempty"`
		ResultType    string `json:",omitempty"`
		ResultMaps    []string
		ResultSetType ResultSetType `json:",omitempty"`
		ResultSets    []string      `json:",omitempty"`

		FetchSize     int `json:",omitempty"`
		Timeout       int `json:",omitempty"`
		FlushCache    bool
		UseCache      bool
		ResultOrdered bool

		KeyGenerator KeyGenerator
		KeyProperty  string `json:",omitempty"`
		KeyColumn    string `json:",omitempty"`

		DatabaseId string `json:",omitempty"`
		Resource   string `json:",omitempty"`
	}

	//SqlSource represents a parameterized SQL template produced by a language driver
	SqlSource interface {
		SQL() string
		ParameterMappings() []*ParameterMapping
	}

	//ParameterMapping represents a single statement parameter slot
	ParameterMapping struct {
		Property string
		JavaType string `json:",omitempty"`
		JdbcType string `json:",omitempty"`
		Mode     string `json:",omitempty"`
	}

	//NamedStatements indexes mapped statements by namespace qualified id
	NamedStatements map[string]*MappedStatement
)

const (
	SQLCommandSelect = SQLCommandType("select")
	SQLCommandInsert = SQLCommandType("insert")
	SQLCommandUpdate = SQLCommandType("update")
	SQLCommandDelete = SQLCommandType("delete")

	StatementPrepared = StatementType("prepared")
	StatementCallable = StatementType("callable")
	StatementDirect   = StatementType("statement")

	ResultSetForwardOnly       = ResultSetType("forward_only")
	ResultSetScrollInsensitive = ResultSetType("scroll_insensitive")
	ResultSetScrollSensitive   = ResultSetType("scroll_sensitive")
	ResultSetDefault           = ResultSetType("default")
)

//Validate checks command kind value
func (t SQLCommandType) Validate() error {
	switch t {
	case SQLCommandSelect, SQLCommandInsert, SQLCommandUpdate, SQLCommandDelete:
		return nil
	}
	return fmt.Errorf("unsupported command type: '%s'", string(t))
}

//Validate checks statement execution kind value
func (t StatementType) Validate() error {
	switch t {
	case StatementPrepared, StatementCallable, StatementDirect:
		return nil
	}
	return fmt.Errorf("unsupported statement type: '%s', supported: %v, %v, %v", string(t), StatementPrepared, StatementCallable, StatementDirect)
}

//IsSelect returns true for a read statement
func (s *MappedStatement) IsSelect() bool {
	return s.SQLCommand == SQLCommandSelect
}

//HasResultMap returns true when statement outcome binds to a declared result map
func (s *MappedStatement) HasResultMap() bool {
	return len(s.ResultMaps) > 0
}

//Namespace returns statement id namespace part
func (s *MappedStatement) Namespace() string {
	if index := strings.LastIndex(s.Id, "."); index != -1 {
		return s.Id[:index]
	}
	return ""
}

//Lookup returns a statement with given id or error
func (m NamedStatements) Lookup(id string) (*MappedStatement, error) {
	result, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("failed to lookup statement %v", id)
	}
	return result, nil
}

//Register registers a statement, rejecting duplicate ids
func (m *NamedStatements) Register(statement *MappedStatement) error {
	if len(*m) == 0 {
		*m = NamedStatements{}
	}
	if _, ok := (*m)[statement.Id]; ok {
		return fmt.Errorf("statement %v is already registered", statement.Id)
	}
	(*m)[statement.Id] = statement
	return nil
}

//Has returns true when statement with given id is registered
func (m NamedStatements) Has(id string) bool {
	_, ok := m[id]
	return ok
}
