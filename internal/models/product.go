package models

import "encoding/json"

// Product is a catalog record as served by the products API
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      Rating  `json:"rating,omitempty"`
}

// ProductInput is the body sent on create and update. The API assigns the id.
type ProductInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      Rating  `json:"rating"`
}

// Rating is passed through untouched; its shape belongs to the API.
type Rating json.RawMessage

// EmptyRating is what a blank rating field submits
var EmptyRating = Rating("{}")

// MarshalJSON writes the raw document, or {} when empty
func (r Rating) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("{}"), nil
	}
	return json.RawMessage(r).MarshalJSON()
}

// UnmarshalJSON keeps a copy of the raw document. A JSON null becomes empty.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}
	*r = append((*r)[0:0], data...)
	return nil
}

// String returns the rating as JSON text
func (r Rating) String() string {
	if len(r) == 0 {
		return "{}"
	}
	return string(r)
}
