package models

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Price
	}{
		{"string", `{"price":"12.50"}`, "12.50"},
		{"number", `{"price":12.5}`, "12.5"},
		{"integer", `{"price":3}`, "3"},
		{"null", `{"price":null}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p.Price)
		})
	}

	var p Product
	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &p))
}

func TestProductFromItem(t *testing.T) {
	p := ProductFromItem(Item{
		AttrID:    "p1",
		AttrName:  "Lamp",
		AttrPrice: float64(1999),
		"color":   "red",
	})
	assert.Equal(t, Product{ID: "p1", Name: "Lamp", Price: "1999"}, p)

	assert.Equal(t, Price("0.25"), ProductFromItem(Item{AttrPrice: 0.25}).Price)
	assert.Equal(t, Price("7"), ProductFromItem(Item{AttrPrice: int64(7)}).Price)
	assert.Equal(t, Product{}, ProductFromItem(nil))
}

func TestItemHelpers(t *testing.T) {
	item := Item{AttrID: "x", AttrName: "Mug"}
	assert.Equal(t, "x", item.ID())
	assert.Equal(t, Item{AttrName: "Mug"}, item.Settable())
	assert.Equal(t, "x", item.ID(), "settable must not modify the source")

	clone := item.Clone()
	clone[AttrName] = "Cup"
	assert.Equal(t, "Mug", item[AttrName])
	assert.Nil(t, Item(nil).Clone())
	assert.Empty(t, Item{}.ID())

	assert.Equal(t, Item{AttrName: "Mug", AttrPrice: "4", AttrCategory: ""},
		Product{ID: "ignored", Name: "Mug", Price: "4"}.Item())
}

func TestNewErrorEnvelope(t *testing.T) {
	env := NewErrorEnvelope(errors.New("boom"))
	assert.Equal(t, FailureMessage, env.Message)
	assert.Equal(t, "boom", env.ErrorMsg)
	assert.Contains(t, env.ErrorStack, "TestNewErrorEnvelope")

	plain := NewErrorEnvelope(ErrNotFound)
	assert.Equal(t, ErrNotFound.Error(), plain.ErrorMsg)
	assert.Empty(t, plain.ErrorStack)

	assert.Equal(t, ErrorEnvelope{Message: FailureMessage}, NewErrorEnvelope(nil))

	ok := NewEnvelope("GET", []Item{})
	assert.Equal(t, `Successfully finished operation: "GET"`, ok.Message)
}
