package registry

import "fmt"

type (
	//Interceptor represents a declared plugin hook, chaining is an external concern
	Interceptor struct {
		Name       string
		Properties map[string]string `json:",omitempty"`
	}

	//FactoryHook represents a declared object/wrapper/reflector factory override
	FactoryHook struct {
		Kind       string
		Name       string
		Properties map[string]string `json:",omitempty"`
	}

	//TypeHandler represents a declared column value conversion binding
	TypeHandler struct {
		JavaType string `json:",omitempty"`
		JdbcType string `json:",omitempty"`
		Handler  string
	}
)

//Validate checks mandatory interceptor parts
func (i *Interceptor) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("plugin interceptor was empty")
	}
	return nil
}

//Validate checks mandatory type handler parts
func (t *TypeHandler) Validate() error {
	if t.Handler == "" {
		return fmt.Errorf("typeHandler handler was empty")
	}
	return nil
}
