package rahkaran

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ReferenceType selects how InventoryVouchersByReference interprets its id.
type ReferenceType int

const (
	// ReferenceReturnable looks vouchers up by the returnable voucher they reference.
	ReferenceReturnable ReferenceType = 1
	// ReferenceSource looks vouchers up by their source document.
	ReferenceSource ReferenceType = 2
)

func (t ReferenceType) String() string {
	switch t {
	case ReferenceReturnable:
		return "returnable"
	case ReferenceSource:
		return "source"
	default:
		return fmt.Sprintf("ReferenceType(%d)", int(t))
	}
}

// GetVoucherSpecification fetches the voucher specification with the given code.
func (c *Client) GetVoucherSpecification(ctx context.Context, code int64) (Record, error) {
	q := url.Values{}
	q.Set("code", strconv.FormatInt(code, 10))
	return c.Call(ctx, http.MethodGet, c.endpoints.VoucherSpecification, q, nil)
}

// IsVoucherExists asks the server whether a voucher with voucherID exists.
func (c *Client) IsVoucherExists(ctx context.Context, voucherID int64) (Record, error) {
	return c.Call(ctx, http.MethodPost, c.endpoints.VoucherExists, nil, map[string]any{
		"voucherID": voucherID,
	})
}

// InventoryVouchersByReference lists inventory vouchers tied to a reference
// document. Returnable references are sent as ReturnableVoucherRef, every
// other type as ReferenceRef.
func (c *Client) InventoryVouchersByReference(ctx context.Context, refType ReferenceType, refID int64) (RecordSet, error) {
	payload := map[string]any{"ReferenceType": int(refType)}
	if refType == ReferenceReturnable {
		payload["ReturnableVoucherRef"] = refID
	} else {
		payload["ReferenceRef"] = refID
	}
	return c.CallList(ctx, http.MethodPost, c.endpoints.VouchersByReference, nil, payload)
}

// RegisterVoucher submits a voucher. The payload is wrapped as
// {"voucher": payload} unless it already carries a "voucher" key. It is not
// validated locally.
func (c *Client) RegisterVoucher(ctx context.Context, payload Record) (Record, error) {
	if payload == nil {
		payload = Record{}
	}
	body := payload
	if _, ok := payload["voucher"]; !ok {
		body = Record{"voucher": payload}
	}
	return c.Call(ctx, http.MethodPost, c.endpoints.RegisterVoucher, nil, body)
}
