package transport

import (
	"fmt"
	"net/http"
	"testing"

	"terra-form/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCreateThenGetProduct(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/products", map[string]string{
		"name":     "Kubek",
		"price":    "50 zł",
		"category": "Kubki",
	}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var created IDResponse
	decode(t, w, &created)
	if created.ID <= 0 {
		t.Fatalf("expected positive id, got %d", created.ID)
	}

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var product domain.Product
	decode(t, w, &product)
	if product.Name != "Kubek" || product.Price == nil || *product.Price != "50 zł" || product.Category == nil || *product.Category != "Kubki" {
		t.Errorf("unexpected product %+v", product)
	}
	if product.Description != nil || product.ImageURL != nil {
		t.Errorf("expected absent fields to be null, got %+v", product)
	}
}

func TestProperty_CreatedProductHeadsListing(t *testing.T) {
	env := newTestEnv(t, true)

	properties := gopter.NewProperties(nil)

	properties.Property("a created product is first in GET /api/products", prop.ForAll(
		func(name string, category string) bool {
			w := env.do(t, http.MethodPost, "/api/products", map[string]string{"name": name, "category": category}, true)
			if w.Code != http.StatusOK {
				t.Logf("FAIL: create returned %d", w.Code)
				return false
			}
			var created IDResponse
			decode(t, w, &created)

			w = env.do(t, http.MethodGet, "/api/products", nil, false)
			var products []domain.Product
			decode(t, w, &products)

			return len(products) > 0 && products[0].ID == created.ID && products[0].Name == name
		},
		gen.RegexMatch(`[A-Za-z ]{1,30}`),
		gen.OneConstOf("Wazy", "Misy", "Kubki"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestListProductsFiltersByCategory(t *testing.T) {
	env := newTestEnv(t, false)

	env.do(t, http.MethodPost, "/api/products", map[string]string{"name": "Waza", "category": "Wazy"}, false)
	env.do(t, http.MethodPost, "/api/products", map[string]string{"name": "Kubek", "category": "Kubki"}, false)

	w := env.do(t, http.MethodGet, "/api/products?category=Wazy", nil, false)
	var products []domain.Product
	decode(t, w, &products)

	if len(products) != 1 || products[0].Name != "Waza" {
		t.Errorf("expected only the vase, got %+v", products)
	}
}

func TestListProductsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodGet, "/api/products", nil, false)
	if w.Code != http.StatusOK || w.Body.String() != "[]\n" {
		t.Errorf("expected empty JSON array, got %d %q", w.Code, w.Body.String())
	}
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t, true)

	for _, id := range []string{"424242", "abc", "-1"} {
		w := env.do(t, http.MethodGet, "/api/products/"+id, nil, false)
		if w.Code != http.StatusNotFound {
			t.Errorf("id %s: expected 404, got %d", id, w.Code)
		}

		var body map[string]interface{}
		decode(t, w, &body)
		if body["error"] != "Product not found" {
			t.Errorf("id %s: unexpected body %v", id, body)
		}
	}
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	env := newTestEnv(t, true)

	for _, id := range []string{"999", "abc"} {
		w := env.do(t, http.MethodDelete, "/api/products/"+id, nil, true)
		if w.Code != http.StatusOK {
			t.Fatalf("id %s: expected 200, got %d", id, w.Code)
		}

		var body SuccessResponse
		decode(t, w, &body)
		if !body.Success {
			t.Errorf("id %s: expected success", id)
		}
	}
}

func TestDeleteProductRemovesRow(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodPost, "/api/products", map[string]string{"name": "Misa"}, false)
	var created IDResponse
	decode(t, w, &created)

	path := fmt.Sprintf("/api/products/%d", created.ID)
	if w := env.do(t, http.MethodDelete, path, nil, false); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, path, nil, false); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestCreateProductWithoutNameIsServerError(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/products", map[string]string{"price": "10 zł"}, true)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 from store constraint, got %d", w.Code)
	}
}

func TestCreateProductMalformedBody(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/products", "{oops", true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestProductMutationsRequireToken(t *testing.T) {
	env := newTestEnv(t, true)

	if w := env.do(t, http.MethodPost, "/api/products", map[string]string{"name": "Kubek"}, false); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for create without token, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/products/1", nil, false); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for delete without token, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/products", nil, false); w.Code != http.StatusOK {
		t.Errorf("expected public listing, got %d", w.Code)
	}
}

func TestProductMutationsOpenWhenNotEnforced(t *testing.T) {
	env := newTestEnv(t, false)

	if w := env.do(t, http.MethodPost, "/api/products", map[string]string{"name": "Kubek"}, false); w.Code != http.StatusOK {
		t.Errorf("expected 200 without enforcement, got %d", w.Code)
	}
}
