package catalog

import (
	"fmt"
	"strings"
)

// Record is a raw catalog row as supplied by a record source.
// Empty strings mean missing values.
type Record struct {
	ID          string
	Name        string
	Image       string
	Brand       string
	Description string
	Color       string
	Attributes  Attributes
	Price       Price
}

// Item is a catalog entry (immutable value object).
type Item struct {
	id          string
	name        string
	image       string
	brand       string
	description string
	color       string
	attributes  Attributes
	price       Price
}

// New validates a record and creates an Item.
// ID, name and image reference are required; everything else is nullable.
func New(r Record) (Item, error) {
	var missing []string
	if strings.TrimSpace(r.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Image) == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return Item{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}

	return Item{
		id:          r.ID,
		name:        r.Name,
		image:       r.Image,
		brand:       r.Brand,
		description: r.Description,
		color:       r.Color,
		attributes:  r.Attributes,
		price:       r.Price,
	}, nil
}

// ID returns the item identifier.
func (it *Item) ID() string { return it.id }

// Name returns the display name.
func (it *Item) Name() string { return it.name }

// Image returns the image reference.
func (it *Item) Image() string { return it.image }

// Brand returns the brand (empty when missing).
func (it *Item) Brand() string { return it.brand }

// Description returns the free-text description, possibly containing markup.
func (it *Item) Description() string { return it.description }

// Color returns the color (empty when missing).
func (it *Item) Color() string { return it.color }

// Attributes returns the attribute payload.
func (it *Item) Attributes() Attributes { return it.attributes }

// Price returns the price.
func (it *Item) Price() Price { return it.price }
