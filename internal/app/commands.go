package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/samvad-hq/rahkaran-client/pkg/rahkaran"
)

// command is one named Rahkaran operation reachable from the command line.
type command struct {
	usage string
	args  int
	run   func(ctx context.Context, c *rahkaran.Client, args []int64, raw []string) (any, error)
}

var commands = map[string]command{
	"voucher-spec": {
		usage: "voucher-spec <code>",
		args:  1,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.GetVoucherSpecification(ctx, a[0])
		},
	},
	"voucher-exists": {
		usage: "voucher-exists <voucher-id>",
		args:  1,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.IsVoucherExists(ctx, a[0])
		},
	},
	"vouchers-by-ref": {
		usage: "vouchers-by-ref <reference-type> <reference-id>",
		args:  2,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.InventoryVouchersByReference(ctx, rahkaran.ReferenceType(a[0]), a[1])
		},
	},
	"register-voucher": {
		usage: "register-voucher <voucher.json>",
		args:  1,
		run: func(ctx context.Context, c *rahkaran.Client, _ []int64, raw []string) (any, error) {
			payload, err := readVoucherFile(raw[0])
			if err != nil {
				return nil, err
			}
			return c.RegisterVoucher(ctx, payload)
		},
	},
	"tracking-factors": {
		usage: "tracking-factors",
		run: func(ctx context.Context, c *rahkaran.Client, _ []int64, _ []string) (any, error) {
			return c.GetTrackingFactors(ctx)
		},
	},
	"shops": {
		usage: "shops",
		run: func(ctx context.Context, c *rahkaran.Client, _ []int64, _ []string) (any, error) {
			return c.GetRetailShops(ctx)
		},
	},
	"products": {
		usage: "products <store-id>",
		args:  1,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.GetRetailProducts(ctx, a[0])
		},
	},
	"remaining": {
		usage: "remaining <store-id> <product-id>",
		args:  2,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.GetRetailRemaining(ctx, a[0], a[1])
		},
	},
	"price": {
		usage: "price <store-id> <item-id>",
		args:  2,
		run: func(ctx context.Context, c *rahkaran.Client, a []int64, _ []string) (any, error) {
			return c.GetRetailPrice(ctx, a[0], a[1])
		},
	},
}

// Operation describes a command-line operation.
type Operation struct {
	Name  string
	Usage string
	Args  int
}

// Operations lists the supported operations sorted by name.
func Operations() []Operation {
	out := make([]Operation, 0, len(commands))
	for name, cmd := range commands {
		out = append(out, Operation{Name: name, Usage: cmd.usage, Args: cmd.args})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// parseArgs validates the argument count and converts numeric arguments.
func parseArgs(name string, cmd command, args []string) ([]int64, error) {
	if len(args) != cmd.args {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d (usage: %s)", name, cmd.args, len(args), cmd.usage)
	}
	if name == "register-voucher" {
		return nil, nil
	}
	out := make([]int64, len(args))
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d must be an integer: %w", name, i+1, err)
		}
		out[i] = n
	}
	return out, nil
}

func readVoucherFile(path string) (rahkaran.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open voucher file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var payload rahkaran.Record
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode voucher file: %w", err)
	}
	return payload, nil
}
