package rahkaran

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeRecordSetShapes(t *testing.T) {
	set, err := decodeRecordSet([]byte(`{"id": 1}`))
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if !reflect.DeepEqual(set, RecordSet{{"id": json.Number("1")}}) {
		t.Fatalf("object not wrapped: %#v", set)
	}

	if _, err := decodeRecordSet([]byte(`[1, 2]`)); err == nil {
		t.Fatalf("expected error for array of numbers")
	}
	if _, err := decodeRecordSet([]byte(`"text"`)); err == nil {
		t.Fatalf("expected error for string body")
	}
}

func TestDecodeRecordRejectsTrailingData(t *testing.T) {
	if _, err := decodeRecord([]byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Fatalf("expected error for trailing data")
	}
	if _, err := decodeRecord([]byte(`[{"a": 1}]`)); err == nil {
		t.Fatalf("expected error for array where object expected")
	}
}

func TestDecodeRecordKeepsLargeIDs(t *testing.T) {
	rec, err := decodeRecord([]byte(`{"id": 9007199254740993}`))
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if rec["id"] != json.Number("9007199254740993") {
		t.Fatalf("id lost precision: %#v", rec["id"])
	}
}

func TestDecodeRecordNull(t *testing.T) {
	rec, err := decodeRecord([]byte("null"))
	if err != nil || rec == nil || len(rec) != 0 {
		t.Fatalf("expected empty record for null, got %#v err=%v", rec, err)
	}
}
