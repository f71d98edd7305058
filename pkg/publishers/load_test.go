package publishers

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: off
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: vouchers
    type: HTTP
    operations: [" Register-Voucher ", "register-voucher", ""]
    http:
      url: https://example.com/2
      headers:
        X-Token: " abc "
        " ": dropped
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "vouchers" {
		t.Fatalf("expected only vouchers enabled, got %#v", enabled)
	}
	cfg := enabled[0]
	if cfg.Type != TypeHTTP || cfg.HTTP.Method != "POST" || cfg.HTTP.TimeoutSeconds != defaultHTTPTimeoutSeconds {
		t.Fatalf("expected normalized http sink, got %#v %#v", cfg, cfg.HTTP)
	}
	if !reflect.DeepEqual(cfg.Operations, []string{"register-voucher"}) {
		t.Fatalf("operations not normalized: %#v", cfg.Operations)
	}
	if !reflect.DeepEqual(cfg.HTTP.Headers, map[string]string{"X-Token": "abc"}) {
		t.Fatalf("headers not normalized: %#v", cfg.HTTP.Headers)
	}
}

func TestLoadRegistryCloudSinks(t *testing.T) {
	path := writeFile(t, "publishers.json", `{"publishers": [
  {"id": " sns-main ", "type": "SNS", "sns": {"topic_arn": "arn:aws:sns:eu-west-1:1:vouchers", "region": "eu-west-1"}},
  {"id": "ps", "type": "pubsub", "pubsub": {"project_id": "erp", "topic": "vouchers"}}
]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("sns-main")
	if !ok || cfg.Type != TypeSNS {
		t.Fatalf("expected normalized sns publisher, got %#v", cfg)
	}
	if all := reg.All(); len(all) != 2 || all[1].ID != "ps" {
		t.Fatalf("expected file order, got %#v", all)
	}
	if _, ok := reg.ByID("missing"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

func TestLoadRegistryRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"empty.yaml": "publishers: []\n",
		"dup.yaml": `
publishers:
  - id: dup
    type: http
    http: {url: https://example.com}
  - id: dup
    type: http
    http: {url: https://example.com/2}
`,
		"broken.json": `{"publishers": [`,
		"invalid.yaml": `
publishers:
  - id: q
    type: sqs
    sqs: {uri: https://sqs.eu-west-1.amazonaws.com/1/q}
`,
	}
	for name, raw := range cases {
		if _, err := LoadRegistry(writeFile(t, name, raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadRegistry(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestValidateRequiresSinkFields(t *testing.T) {
	cases := []PublisherConfig{
		{Type: TypeHTTP},
		{ID: "x"},
		{ID: "h", Type: TypeHTTP},
		{ID: "h", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{}},
		{ID: "s", Type: TypeSNS},
		{ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "eu-west-1"}},
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://sqs"}},
		{ID: "p", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "erp"}},
	}
	for _, cfg := range cases {
		if err := cfg.normalized().validate(); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}
}
