package rahkaran

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	serviceBase   = "Services"
	logisticsBase = serviceBase + "/Logistics"
	retailBase    = serviceBase + "/Retail"

	voucherService  = logisticsBase + "/VoucherProcessingService.svc"
	materialService = logisticsBase + "/MaterialManagementService.svc"
	eSalesService   = retailBase + "/ESales.svc"
)

// Endpoints holds the service paths, relative to the client base URL.
type Endpoints struct {
	VoucherSpecification string `json:"voucher_specification" yaml:"voucher_specification"`
	VoucherExists        string `json:"voucher_exists" yaml:"voucher_exists"`
	VouchersByReference  string `json:"vouchers_by_reference" yaml:"vouchers_by_reference"`
	RegisterVoucher      string `json:"register_voucher" yaml:"register_voucher"`
	TrackingFactors      string `json:"tracking_factors" yaml:"tracking_factors"`
	RetailShops          string `json:"retail_shops" yaml:"retail_shops"`
	RetailProducts       string `json:"retail_products" yaml:"retail_products"`
	RetailRemaining      string `json:"retail_remaining" yaml:"retail_remaining"`
	RetailPrice          string `json:"retail_price" yaml:"retail_price"`
}

// DefaultEndpoints returns the stock Rahkaran service paths.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		VoucherSpecification: voucherService + "/GetVoucherSpecificationByCode",
		VoucherExists:        voucherService + "/IsVoucherExists",
		VouchersByReference:  voucherService + "/InventoryVouchersByReferenceOrReturnable",
		RegisterVoucher:      voucherService + "/RegisterVoucher",
		TrackingFactors:      materialService + "/GetTrackingFactors",
		RetailShops:          eSalesService + "/shops",
		RetailProducts:       eSalesService + "/products",
		RetailRemaining:      retailBase + "/InventoryService.svc/GetRemaining",
		RetailPrice:          retailBase + "/PriceService.svc/GetPrice",
	}
}

// withDefaults fills blank paths from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	def := DefaultEndpoints()
	fill := func(dst *string, fallback string) {
		if *dst = strings.TrimSpace(*dst); *dst == "" {
			*dst = fallback
		}
	}
	fill(&e.VoucherSpecification, def.VoucherSpecification)
	fill(&e.VoucherExists, def.VoucherExists)
	fill(&e.VouchersByReference, def.VouchersByReference)
	fill(&e.RegisterVoucher, def.RegisterVoucher)
	fill(&e.TrackingFactors, def.TrackingFactors)
	fill(&e.RetailShops, def.RetailShops)
	fill(&e.RetailProducts, def.RetailProducts)
	fill(&e.RetailRemaining, def.RetailRemaining)
	fill(&e.RetailPrice, def.RetailPrice)
	return e
}

// BuildURL joins base and endpoint with exactly one slash.
func BuildURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// LoadEndpoints reads endpoint overrides from a YAML or JSON file. Paths left
// out of the file keep their defaults.
func LoadEndpoints(path string) (Endpoints, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Endpoints{}, errors.New("endpoints file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Endpoints{}, fmt.Errorf("read endpoints file: %w", err)
	}

	eps, err := parseEndpoints(raw, filepath.Ext(path))
	if err != nil {
		return Endpoints{}, err
	}
	return eps.withDefaults(), nil
}

type endpointsFile struct {
	Endpoints Endpoints `json:"endpoints" yaml:"endpoints"`
}

func parseEndpoints(data []byte, ext string) (Endpoints, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file endpointsFile
		if err := d.fn(data, &file); err != nil {
			lastErr = fmt.Errorf("decode %s endpoints: %w", d.name, err)
			continue
		}
		return file.Endpoints, nil
	}
	if lastErr != nil {
		return Endpoints{}, lastErr
	}
	return Endpoints{}, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}
