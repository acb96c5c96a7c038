package barcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/737628064502.json", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "calai")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": " Rice Noodles ",
				"brands": "Thai Kitchen",
				"image_url": "https://images.example/rice.jpg",
				"nutriments": {
					"energy-kcal_serving": 190,
					"energy-kcal_100g": 355,
					"proteins_100g": 6.7,
					"carbohydrates_100g": 80,
					"fat": 1.2
				}
			}
		}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	product, err := client.Lookup(context.Background(), "737628064502")

	assert.NoError(t, err)
	assert.Equal(t, "Rice Noodles", product.Name)
	assert.Equal(t, "Thai Kitchen", product.Brand)
	assert.Equal(t, float64(190), product.Calories, "per-serving figure wins over per-100g")
	assert.Equal(t, 6.7, product.Protein)
	assert.Equal(t, float64(80), product.Carbs)
	assert.Equal(t, 1.2, product.Fats)
	assert.Equal(t, "https://images.example/rice.jpg", product.ImageURL)
}

func TestLookup_UnknownProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	_, err := client.Lookup(context.Background(), "000000000000")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_HTTPNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	_, err := client.Lookup(context.Background(), "123")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	_, err := client.Lookup(context.Background(), "123")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLookup_MissingNameIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {"nutriments": {"energy-kcal": 100}}}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	_, err := client.Lookup(context.Background(), "456")

	assert.ErrorIs(t, err, ErrNotFound)
}
