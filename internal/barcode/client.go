package barcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// ErrNotFound signals that no product matches the scanned code.
var ErrNotFound = errors.New("product not found")

// Product is the nutrition snapshot resolved from a barcode.
type Product struct {
	Name     string
	Brand    string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	ImageURL string
}

// Client looks up scanned barcodes against the Open Food Facts product
// database.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string             `json:"product_name"`
		Brands      string             `json:"brands"`
		ImageURL    string             `json:"image_url"`
		Nutriments  map[string]float64 `json:"nutriments"`
	} `json:"product"`
}

// Lookup resolves one barcode. ErrNotFound is returned when the database
// has no matching product.
func (c *Client) Lookup(ctx context.Context, code string) (Product, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	url := fmt.Sprintf("%s/api/v2/product/%s.json", base, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Product{}, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "calai/1.0 (+https://github.com/calai-app/calai)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return Product{}, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Product{}, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return Product{}, fmt.Errorf("barcode %q: %w", code, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Product{}, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Product{}, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || parsed.Product.ProductName == "" {
		return Product{}, fmt.Errorf("barcode %q: %w", code, ErrNotFound)
	}

	return Product{
		Name:     strings.TrimSpace(parsed.Product.ProductName),
		Brand:    strings.TrimSpace(parsed.Product.Brands),
		Calories: nutrient(parsed.Product.Nutriments, "energy-kcal"),
		Protein:  nutrient(parsed.Product.Nutriments, "proteins"),
		Carbs:    nutrient(parsed.Product.Nutriments, "carbohydrates"),
		Fats:     nutrient(parsed.Product.Nutriments, "fat"),
		ImageURL: parsed.Product.ImageURL,
	}, nil
}

// nutrient prefers the per-serving figure and falls back to per-100g.
func nutrient(nutriments map[string]float64, key string) float64 {
	if v, ok := nutriments[key+"_serving"]; ok {
		return v
	}
	if v, ok := nutriments[key+"_100g"]; ok {
		return v
	}
	return nutriments[key]
}
