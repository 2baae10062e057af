package recommend

import (
	"context"
	"sync"

	"github.com/kailas-cloud/stylematch/internal/domain/catalog"
	"github.com/kailas-cloud/stylematch/internal/domain/search/result"
)

// --- Mocks ---

type mockSource struct {
	mu      sync.Mutex
	records []catalog.Record
	err     error
	calls   int
}

func (m *mockSource) Load(_ context.Context) ([]catalog.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockSource) set(records []catalog.Record, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	m.err = err
}

type mockCache struct {
	mu   sync.Mutex
	data map[string][]result.Result
	gets int
	puts int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]result.Result{}}
}

func (m *mockCache) Get(_ context.Context, key string) ([]result.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	r, ok := m.data[key]
	return r, ok
}

func (m *mockCache) Put(_ context.Context, key string, results []result.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.data[key] = results
}

// --- Fixtures ---

func fashionRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID: "1", Name: "Zara Red Cotton Dress", Image: "img/1.jpg",
			Brand: "Zara", Color: "Red",
			Description: "<p>A <b>red</b> cotton dress for summer</p>",
			Attributes:  catalog.SerializedAttributes(`{'Top Fabric': 'Cotton', 'Occasion': 'Casual'}`),
			Price:       catalog.NumericPrice(2500),
		},
		{
			ID: "2", Name: "Blue Denim Jeans", Image: "img/2.jpg",
			Brand: "Levis", Color: "Blue",
			Description: "Slim fit denim jeans",
			Attributes:  catalog.SerializedAttributes(`{"Bottom Type": "Jeans", "Bottom Closure": "Button"}`),
			Price:       catalog.NumericPrice(3200),
		},
		{
			ID: "3", Name: "Black Leather Jacket", Image: "img/3.jpg",
			Brand: "Mango", Color: "Black",
			Description: "Biker jacket in genuine leather",
			Attributes:  catalog.StructuredAttributes(map[string]any{"Top Type": "Jacket"}),
			Price:       catalog.RawPrice("9500"),
		},
		{
			ID: "4", Name: "Green Silk Scarf", Image: "img/4.jpg",
			Color:       "Green",
			Description: "Printed silk scarf",
			Attributes:  catalog.SerializedAttributes("{not valid"),
			Price:       catalog.RawPrice("n/a"),
		},
		{
			ID: "5", Name: "White Linen Shirt", Image: "img/5.jpg",
			Brand: "Uniqlo", Color: "White",
			Description: "Breathable linen shirt",
			Attributes:  catalog.NoAttributes(),
			Price:       catalog.NumericPrice(1500),
		},
		{
			ID: "6", Name: "Floral Maxi Dress", Image: "img/6.jpg",
			Brand: "Tokyo Talkies", Color: "Blue",
			Description: "floral maxi dress",
			Attributes:  catalog.SerializedAttributes(`{'Top Fabric': 'Georgette', 'Occasion': 'Party'}`),
			Price:       catalog.NumericPrice(999),
		},
		{
			ID: "7", Name: "Grey Wool Sweater", Image: "img/7.jpg",
			Brand: "H&M", Color: "Grey",
			Description: "Chunky knit wool sweater",
			Price:       catalog.NoPrice(),
		},
	}
}
