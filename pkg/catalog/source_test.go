package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProductKey(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "product_1"},
		{999, "product_999"},
		{-3, "product_-3"},
	}

	for _, tt := range tests {
		if got := ProductKey(tt.id); got != tt.want {
			t.Errorf("ProductKey(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}

	if AllProductsKey != "all_products" {
		t.Errorf("AllProductsKey = %q", AllProductsKey)
	}
}

func TestDefaultProducts(t *testing.T) {
	got := DefaultProducts()
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}

	want := Product{ID: 1, Name: "Laptop", Price: 999.99, Category: "Electronics"}
	if got[0] != want {
		t.Errorf("first product = %+v, want %+v", got[0], want)
	}
	if got[4].Category != "Furniture" {
		t.Errorf("Desk Chair category = %q", got[4].Category)
	}

	// Returned slice is a copy.
	got[0].Name = "mutated"
	if DefaultProducts()[0].Name != "Laptop" {
		t.Error("DefaultProducts exposed the shared catalog")
	}
}

func TestStatic_Product(t *testing.T) {
	s := NewStatic(StaticConfig{})
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int
		want    string
		wantErr error
	}{
		{"laptop", 1, "Laptop", nil},
		{"chair", 5, "Desk Chair", nil},
		{"missing", 999, "", ErrProductNotFound},
		{"zero", 0, "", ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := s.Product(ctx, tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Product(%d) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			if p.Name != tt.want {
				t.Errorf("Product(%d).Name = %q, want %q", tt.id, p.Name, tt.want)
			}
		})
	}
}

func TestStatic_Products(t *testing.T) {
	s := NewStatic(StaticConfig{})

	got, err := s.Products(context.Background())
	if err != nil {
		t.Fatalf("Products error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}

	got[0].Price = 0
	again, _ := s.Products(context.Background())
	if again[0].Price != 999.99 {
		t.Error("Products exposed internal state")
	}
}

func TestStatic_CustomCatalog(t *testing.T) {
	s := NewStatic(StaticConfig{Products: []Product{{ID: 7, Name: "Lamp"}}})

	if _, err := s.Product(context.Background(), 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Product(1) error = %v, want ErrProductNotFound", err)
	}
	p, err := s.Product(context.Background(), 7)
	if err != nil || p.Name != "Lamp" {
		t.Errorf("Product(7) = %+v, %v", p, err)
	}
}

func TestStatic_Delay(t *testing.T) {
	s := NewStatic(StaticConfig{ProductDelay: 30 * time.Millisecond, ListDelay: 60 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	if _, err := s.Product(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Product returned after %v, want >= 30ms", elapsed)
	}

	start = time.Now()
	if _, err := s.Products(ctx); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("Products returned after %v, want >= 60ms", elapsed)
	}
}

func TestStatic_ContextCancelled(t *testing.T) {
	s := NewStatic(StaticConfig{ProductDelay: time.Hour, ListDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := s.Product(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Product error = %v, want DeadlineExceeded", err)
	}
	if _, err := s.Products(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Products error = %v, want DeadlineExceeded", err)
	}
}

func TestDefaultStaticConfig(t *testing.T) {
	cfg := DefaultStaticConfig()
	if cfg.ProductDelay != time.Second {
		t.Errorf("ProductDelay = %v, want 1s", cfg.ProductDelay)
	}
	if cfg.ListDelay != 2*time.Second {
		t.Errorf("ListDelay = %v, want 2s", cfg.ListDelay)
	}
}
