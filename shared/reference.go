package shared

//Reference represents a reference to another named declaration
type Reference struct {
	Ref string `json:",omitempty" yaml:",omitempty"`
}
