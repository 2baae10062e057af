package document

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/normalize"
)

func item(t *testing.T, r catalog.Record) catalog.Item {
	t.Helper()
	r.ID, r.Name, r.Image = "1", "Name", "img.jpg"
	it, err := catalog.New(r)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return it
}

func TestAssemble_FieldOrder(t *testing.T) {
	it := item(t, catalog.Record{Brand: "Zara", Color: "Red"})
	f := normalize.Fields{
		Description: []string{"red", "cotton", "dress"},
		Attributes:  []string{"cottonblend", "casual"},
		Price:       []string{"priceaffordable"},
	}

	got := Assemble(&it, f)
	want := "Zara red cotton dress Red cottonblend casual priceaffordable"
	if got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}

func TestAssemble_MissingScalarsUseMarker(t *testing.T) {
	it := item(t, catalog.Record{})
	got := Assemble(&it, normalize.Fields{Description: []string{"kurta"}})

	fields := strings.Fields(got)
	want := []string{MissingValue, "kurta", MissingValue}
	if strings.Join(fields, "|") != strings.Join(want, "|") {
		t.Errorf("Assemble() tokens = %q, want %q", fields, want)
	}
}

func TestAssemble_EndToEnd(t *testing.T) {
	it := item(t, catalog.Record{
		Brand:       "Tokyo Talkies",
		Description: "<p>Floral <b>maxi</b> dress</p>",
		Color:       "Blue",
		Attributes:  catalog.SerializedAttributes(`{'Top Fabric': 'Georgette', 'Occasion': 'Party'}`),
		Price:       catalog.NumericPrice(1000),
	})

	got := Assemble(&it, normalize.ItemFields(&it))
	want := "Tokyo Talkies floral maxi dress Blue georgette party priceveryaffordable"
	if got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}
