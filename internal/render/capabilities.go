package render

import (
	"math/bits"
	"strings"
)

// Capability is a single dialect feature flag.
type Capability uint16

const (
	NumberedPlaceholders     Capability = 1 << iota // $1, $2, ...
	QuestionMarkPlaceholders                        // ?, ?, ...
	Returning                                       // RETURNING clause
	CommonTableExpressions                          // WITH ... AS
	Inheritance                                     // table inheritance
	SchemaQualification                             // schema.table names
	ResultMetadata                                  // result sets report column names

	lastCapability = ResultMetadata
)

var capabilityNames = map[Capability]string{
	NumberedPlaceholders:     "numbered-placeholders",
	QuestionMarkPlaceholders: "question-mark-placeholders",
	Returning:                "returning",
	CommonTableExpressions:   "common-table-expressions",
	Inheritance:              "inheritance",
	SchemaQualification:      "schema-qualification",
	ResultMetadata:           "result-metadata",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return "unknown"
}

// AllCapabilities lists every known flag in declaration order.
func AllCapabilities() []Capability {
	var all []Capability
	for c := Capability(1); c <= lastCapability; c <<= 1 {
		all = append(all, c)
	}
	return all
}

// Capabilities describes the SQL features supported by a dialect.
// A zero Capabilities supports nothing and binds with "?".
type Capabilities struct {
	Dialect string
	set     Capability
}

// NewCapabilities builds a profile from a list of flags.
func NewCapabilities(dialect string, caps ...Capability) Capabilities {
	c := Capabilities{Dialect: dialect}
	for _, f := range caps {
		c.set |= f
	}
	return c
}

// Has reports whether the flag is set.
func (c Capabilities) Has(f Capability) bool {
	return c.set&f == f && f != 0
}

// List returns the set flags in declaration order.
func (c Capabilities) List() []Capability {
	list := make([]Capability, 0, bits.OnesCount16(uint16(c.set)))
	for _, f := range AllCapabilities() {
		if c.Has(f) {
			list = append(list, f)
		}
	}
	return list
}

func (c Capabilities) String() string {
	names := make([]string, 0, len(c.List()))
	for _, f := range c.List() {
		names = append(names, f.String())
	}
	return c.Dialect + "[" + strings.Join(names, ",") + "]"
}
