package rahkaran

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildURL(t *testing.T) {
	cases := map[string][2]string{
		"https://erp.example.com/sg/Services/x": {"https://erp.example.com/sg", "Services/x"},
		"https://erp.example.com/sg/Services/y": {"https://erp.example.com/sg/", "/Services/y"},
	}
	for want, in := range cases {
		if got := BuildURL(in[0], in[1]); got != want {
			t.Fatalf("BuildURL(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}

func TestLoadEndpointsYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.yaml")
	content := `
endpoints:
  retail_products: Services/Retail/ProductService.svc/GetProducts
  retail_price: " Services/Retail/PricingService.svc/GetPrice "
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	eps, err := LoadEndpoints(file)
	if err != nil {
		t.Fatalf("LoadEndpoints: %v", err)
	}
	if eps.RetailProducts != "Services/Retail/ProductService.svc/GetProducts" {
		t.Fatalf("retail_products = %s", eps.RetailProducts)
	}
	if eps.RetailPrice != "Services/Retail/PricingService.svc/GetPrice" {
		t.Fatalf("retail_price not trimmed: %q", eps.RetailPrice)
	}
	if eps.RegisterVoucher != DefaultEndpoints().RegisterVoucher {
		t.Fatalf("missing entries should keep defaults, got %s", eps.RegisterVoucher)
	}
}

func TestLoadEndpointsJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "endpoints.json")
	if err := os.WriteFile(file, []byte(`{"endpoints": {"retail_shops": "Services/Retail/Shops"}}`), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}

	eps, err := LoadEndpoints(file)
	if err != nil {
		t.Fatalf("LoadEndpoints: %v", err)
	}
	if eps.RetailShops != "Services/Retail/Shops" {
		t.Fatalf("retail_shops = %s", eps.RetailShops)
	}
}

func TestLoadEndpointsErrors(t *testing.T) {
	if _, err := LoadEndpoints(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadEndpoints(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	file := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(file, []byte(`{"endpoints": [`), 0o644); err != nil {
		t.Fatalf("write endpoints file: %v", err)
	}
	if _, err := LoadEndpoints(file); err == nil {
		t.Fatalf("expected decode error")
	}
}
