package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Attribute names shared by every store driver.
const (
	AttrID       = "id"
	AttrName     = "name"
	AttrPrice    = "price"
	AttrCategory = "category"
)

// Item is a schemaless product record as the store sees it.
// Arbitrary attributes written by clients are preserved.
type Item map[string]any

// ID returns the item id or an empty string.
func (i Item) ID() string {
	id, _ := i[AttrID].(string)
	return id
}

// Clone returns a shallow copy; nil stays nil.
func (i Item) Clone() Item {
	if i == nil {
		return nil
	}
	return maps.Clone(i)
}

// Settable returns the attributes an update may set: everything except the key.
func (i Item) Settable() Item {
	out := make(Item, len(i))
	for k, v := range i {
		if k == AttrID {
			continue
		}
		out[k] = v
	}
	return out
}

// Price keeps whatever the user typed. It decodes from JSON strings and numbers.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) String() string {
	return string(p)
}

type Product struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Price    Price  `json:"price"`
	Category string `json:"category,omitempty"`
}

// Item converts the product into a create payload. The id is left to the server.
func (p Product) Item() Item {
	return Item{
		AttrName:     p.Name,
		AttrPrice:    string(p.Price),
		AttrCategory: p.Category,
	}
}

// ProductFromItem reads the well-known attributes of an item.
// Numeric prices are rendered without exponent.
func ProductFromItem(item Item) Product {
	p := Product{}
	p.ID, _ = item[AttrID].(string)
	p.Name, _ = item[AttrName].(string)
	p.Category, _ = item[AttrCategory].(string)
	switch v := item[AttrPrice].(type) {
	case string:
		p.Price = Price(v)
	case float64:
		p.Price = Price(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		p.Price = Price(strconv.Itoa(v))
	case int32:
		p.Price = Price(strconv.FormatInt(int64(v), 10))
	case int64:
		p.Price = Price(strconv.FormatInt(v, 10))
	case json.Number:
		p.Price = Price(v.String())
	}
	return p
}

// WriteAck acknowledges a write. Attributes carries what the store returned:
// the new attribute values on update, the removed item on delete.
type WriteAck struct {
	ID         string `json:"id"`
	Attributes Item   `json:"attributes,omitempty"`
}
