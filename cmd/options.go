package cmd

import (
	"strings"

	"github.com/pkg/errors"
)

//Options represents command line options
type Options struct {
	ConfigURL   string   `short:"c" long:"config" description:"configuration document URL"`
	Properties  []string `short:"p" long:"property" description:"override property in name=value form"`
	Environment string   `short:"e" long:"env" description:"environment id overriding the configured default"`
	Validate    bool     `long:"validate" description:"validate only, suppress the registry summary"`
	Version     bool     `short:"v" long:"version" description:"print version"`
}

//PropertyMap converts name=value pairs into a map
func (o *Options) PropertyMap() (map[string]string, error) {
	result := map[string]string{}
	for _, item := range o.Properties {
		pair := strings.SplitN(item, "=", 2)
		if len(pair) != 2 {
			return nil, errors.Errorf("invalid property: '%v', expected name=value", item)
		}
		result[pair[0]] = pair[1]
	}
	return result, nil
}

//Validate checks mandatory options
func (o *Options) Init() error {
	if o.Version {
		return nil
	}
	if o.ConfigURL == "" {
		return errors.New("config URL was empty, use -c switch")
	}
	return nil
}
