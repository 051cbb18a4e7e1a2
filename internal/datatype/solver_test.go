package datatype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericIntervalClash(t *testing.T) {
	r := Restriction{Base: XSDInteger, Facets: []Facet{
		{Kind: MinInclusive, Value: "10"},
		{Kind: MaxInclusive, Value: "5"},
	}}
	sat, c := Satisfiable(r)
	assert.False(t, sat)
	assert.True(t, c.Exact)
}

func TestNumericIntervalSatisfiable(t *testing.T) {
	r := Restriction{Base: XSDDecimal, Facets: []Facet{
		{Kind: MinInclusive, Value: "1.5"},
		{Kind: MaxExclusive, Value: "10"},
	}}
	sat, c := Satisfiable(r)
	assert.True(t, sat)
	assert.True(t, c.Exact)
}

func TestStringLengthClash(t *testing.T) {
	r := Restriction{Base: XSDString, Facets: []Facet{
		{Kind: MinLength, Value: "5"},
		{Kind: MaxLength, Value: "2"},
	}}
	sat, _ := Satisfiable(r)
	assert.False(t, sat)
}

func TestFloatWidensToApproximate(t *testing.T) {
	r := Restriction{Base: XSDFloat, Facets: []Facet{{Kind: MinInclusive, Value: "0"}}}
	sat, c := Satisfiable(r)
	assert.True(t, sat)
	assert.False(t, c.Exact)
}

func TestOneOfEmptyUnsatisfiable(t *testing.T) {
	sat, c := Satisfiable(OneOf{})
	assert.False(t, sat)
	assert.True(t, c.Exact)
}

func TestTemporalIntervalClash(t *testing.T) {
	r := Restriction{Base: XSDDateTime, Facets: []Facet{
		{Kind: MinExclusive, Value: "2026-01-01T00:00:00Z"},
		{Kind: MaxInclusive, Value: "2026-01-01T00:00:00Z"},
	}}
	sat, _ := Satisfiable(r)
	assert.False(t, sat)
}
