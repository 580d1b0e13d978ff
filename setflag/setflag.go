// Package setflag is a flag.Value holding a set of strings drawn from a
// fixed list of options, like -status ok,partial.
package setflag

import (
	"fmt"
	"slices"
	"strings"
)

func New(options ...string) *SetFlag {
	sf := &SetFlag{
		values:  make(map[string]struct{}, len(options)),
		options: make(map[string]struct{}, len(options)),
	}
	for _, opt := range options {
		sf.options[opt] = struct{}{}
	}
	return sf
}

type SetFlag struct {
	options map[string]struct{}
	values  map[string]struct{}
}

// List returns the chosen values, sorted. It's empty if the flag was never
// set.
func (sf *SetFlag) List() []string {
	var values []string
	for k := range sf.values {
		values = append(values, k)
	}
	slices.Sort(values)
	return values
}

func (sf *SetFlag) String() string {
	return strings.Join(sf.List(), ", ")
}

// Set accepts one value or a comma-separated list. It can be called more
// than once; values accumulate.
func (sf *SetFlag) Set(value string) error {
	values := strings.Split(value, ",")
	for i, str := range values {
		values[i] = strings.TrimSpace(str)
	}
	for _, value := range values {
		if _, exists := sf.options[value]; !exists {
			return fmt.Errorf("unsupported value '%s'", value)
		}
		sf.values[value] = struct{}{}
	}
	return nil
}
