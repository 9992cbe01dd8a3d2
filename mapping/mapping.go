package mapping

type (
	//MappingFlag qualifies the role of a single result mapping
	MappingFlag string

	//ResultMapping represents a single column to property mapping rule
	ResultMapping struct {
		Property        string `json:",omitempty"`
		Column          string `json:",omitempty"`
		JavaType        string `json:",omitempty"`
		JdbcType        string `json:",omitempty"`
		TypeHandler     string `json:",omitempty"`
		NestedResultMap string `json:",omitempty"`
		NestedQuery     string `json:",omitempty"`
		ResultSet       string `json:",omitempty"`
		ForeignColumn   string `json:",omitempty"`
		Flags           []MappingFlag
	}
)

const (
	//FlagID marks an identity column mapping
	FlagID = MappingFlag("id")
	//FlagConstructor marks a constructor argument mapping
	FlagConstructor = MappingFlag("constructor")
)

//HasFlag returns true if mapping carries given flag
func (m *ResultMapping) HasFlag(flag MappingFlag) bool {
	for _, candidate := range m.Flags {
		if candidate == flag {
			return true
		}
	}
	return false
}
