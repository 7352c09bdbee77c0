package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultCategory(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   Symbol
		ok     bool
	}{
		{"no match", Result{}, 0, false},
		{"no match with symbol", Result{Kind: NoMatch, Symbol: Bar}, 0, false},
		{"circle", Result{Kind: CircleMatch}, Circle, true},
		{"corner", Result{Kind: CornerMatch}, Vee, true},
		{"template", Result{Kind: TemplateMatch, Symbol: Triangle}, Triangle, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.result.Category()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, tt.result.Matched())
		})
	}
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "no match", Result{}.String())
	assert.Equal(t, "template bar score=0.900", Result{Kind: TemplateMatch, Symbol: Bar, Score: 0.9}.String())
}
