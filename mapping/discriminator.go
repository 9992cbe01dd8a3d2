package mapping

//Discriminator represents a column driven variant dispatch over result maps
type Discriminator struct {
	Column      string
	JavaType    string `json:",omitempty"`
	JdbcType    string `json:",omitempty"`
	TypeHandler string `json:",omitempty"`
	//Cases maps a column value to a result map id
	Cases map[string]string
}

//ResultMapId returns result map id matching given column value
func (d *Discriminator) ResultMapId(value string) (string, bool) {
	id, ok := d.Cases[value]
	return id, ok
}
