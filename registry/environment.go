package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/sqlmap/shared"
)

type (
	//Environment represents a named datasource and transaction manager selection
	Environment struct {
		Id                 string
		TransactionManager string
		DataSource         *DataSource
	}

	//DataSource represents declared connection settings, opened lazily via database/sql
	DataSource struct {
		shared.Reference
		Kind       string `json:",omitempty"`
		Driver     string
		DSN        string
		Properties map[string]string `json:",omitempty"`
	}

	//Environments indexes environment declarations by id
	Environments map[string]*Environment
)

//Open opens the declared datasource, connectivity is verified by the caller when needed
func (d *DataSource) Open(ctx context.Context) (*sql.DB, error) {
	if d.Driver == "" || d.DSN == "" {
		return nil, fmt.Errorf("dataSource requires driver and url, had driver: '%v'", d.Driver)
	}
	return sql.Open(d.Driver, d.DSN)
}

//Validate checks mandatory environment parts
func (e *Environment) Validate() error {
	if e.Id == "" {
		return fmt.Errorf("environment id was empty")
	}
	if e.DataSource == nil {
		return fmt.Errorf("environment %v has no dataSource", e.Id)
	}
	return nil
}

//Lookup returns environment with given id or error
func (e Environments) Lookup(id string) (*Environment, error) {
	result, ok := e[id]
	if !ok {
		return nil, fmt.Errorf("failed to lookup environment %v", id)
	}
	return result, nil
}

//Register registers an environment, rejecting duplicate ids
func (e *Environments) Register(environment *Environment) error {
	if len(*e) == 0 {
		*e = Environments{}
	}
	if _, ok := (*e)[environment.Id]; ok {
		return &DuplicateError{Kind: "environment", Id: environment.Id}
	}
	(*e)[environment.Id] = environment
	return nil
}
