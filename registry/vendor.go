package registry

//DatabaseIdProvider maps the active datasource driver onto a vendor id used to
//select among vendor specific statement variants.
type DatabaseIdProvider struct {
	Kind       string
	Properties map[string]string
}

//wellKnownVendors translates common driver names when no explicit property overrides them
var wellKnownVendors = map[string]string{
	"mysql":     "mysql",
	"postgres":  "postgres",
	"sqlite3":   "sqlite",
	"oci8":      "oracle",
	"sqlserver": "mssql",
}

//DatabaseId returns vendor id for given driver, declared properties take precedence
func (p *DatabaseIdProvider) DatabaseId(driver string) string {
	if p == nil {
		return ""
	}
	if len(p.Properties) > 0 {
		if id, ok := p.Properties[driver]; ok {
			return id
		}
	}
	return wellKnownVendors[driver]
}
