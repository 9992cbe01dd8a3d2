package cmd

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"

	"github.com/viant/sqlmap/loader"
	"github.com/viant/sqlmap/registry"
)

//New runs the sqlmap command with given arguments
func New(version string, args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	if options.Version {
		fmt.Printf("sqlmap: version: %v\n", version)
		return nil
	}
	if err := options.Init(); err != nil {
		return err
	}
	properties, err := options.PropertyMap()
	if err != nil {
		return err
	}
	var loaderOptions = []loader.Option{
		loader.WithProperties(properties),
		loader.WithRegistry(registry.New(registry.WithMetrics(registry.NewMetrics()))),
	}
	if options.Environment != "" {
		loaderOptions = append(loaderOptions, loader.WithEnvironment(options.Environment))
	}
	aLoader := loader.New(loaderOptions...)
	aRegistry, err := aLoader.LoadURL(context.Background(), options.ConfigURL)
	if err != nil {
		return err
	}
	if options.Validate {
		fmt.Printf("sqlmap: %v is valid\n", options.ConfigURL)
		return nil
	}
	printSummary(aRegistry)
	return nil
}

func printSummary(aRegistry *registry.Registry) {
	if environment := aRegistry.Environment(); environment != nil {
		fmt.Printf("environment: %v (driver: %v)\n", environment.Id, environment.DataSource.Driver)
	}
	if databaseId := aRegistry.DatabaseId(); databaseId != "" {
		fmt.Printf("databaseId: %v\n", databaseId)
	}
	statements := aRegistry.StatementIds()
	fmt.Printf("statements: %v\n", len(statements))
	for _, id := range statements {
		statement, _ := aRegistry.Statement(id)
		fmt.Printf("  %v [%v]\n", id, statement.SQLCommand)
	}
	resultMaps := aRegistry.ResultMapIds()
	fmt.Printf("result maps: %v\n", len(resultMaps))
	for _, id := range resultMaps {
		fmt.Printf("  %v\n", id)
	}
	caches := aRegistry.CacheNamespaces()
	fmt.Printf("caches: %v\n", len(caches))
	for _, namespace := range caches {
		fmt.Printf("  %v\n", namespace)
	}
}
