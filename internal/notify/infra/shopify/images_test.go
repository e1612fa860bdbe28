package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dwikikusuma/order-notify/pkg/metrics"
)

func TestProductImage(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts image src from product response", func(t *testing.T) {
		var gotPath, gotToken string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotToken = r.Header.Get("X-Shopify-Access-Token")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"product":{"id":555,"title":"Mug","image":{"src":"https://cdn.example.com/mug.png"}}}`))
		}))
		defer srv.Close()

		client := NewImageClient(srv.URL, "shpat_test", metrics.NewRegistry())

		url, err := client.ProductImage(ctx, 555)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://cdn.example.com/mug.png" {
			t.Fatalf("wrong url: %q", url)
		}
		if gotPath != "/admin/api/2024-01/products/555.json" {
			t.Fatalf("wrong path: %q", gotPath)
		}
		if gotToken != "shpat_test" {
			t.Fatalf("token header missing: %q", gotToken)
		}
	})

	t.Run("product without image yields empty url, no error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"product":{"id":777,"title":"Gift Card","image":null}}`))
		}))
		defer srv.Close()

		client := NewImageClient(srv.URL, "t", metrics.NewRegistry())

		url, err := client.ProductImage(ctx, 777)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "" {
			t.Fatalf("expected empty url, got %q", url)
		}
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewImageClient(srv.URL, "t", metrics.NewRegistry())

		if _, err := client.ProductImage(ctx, 404404); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("malformed response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := NewImageClient(srv.URL, "t", metrics.NewRegistry())

		if _, err := client.ProductImage(ctx, 1); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unreachable api is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := NewImageClient(srv.URL, "t", metrics.NewRegistry())

		if _, err := client.ProductImage(ctx, 1); err == nil {
			t.Fatal("expected error")
		}
	})
}
