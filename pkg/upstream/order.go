package upstream

import (
	"fmt"
	"strings"
)

// Order is the address-family preference applied when a lookup returns more
// than one address family.
type Order string

const (
	OrderIPv4First Order = "ipv4-first"
	OrderIPv6First Order = "ipv6-first"
	OrderVerbatim  Order = "verbatim"
)

// ParseOrder normalizes s into an Order. An empty string maps to
// OrderIPv4First.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch Order(s) {
	case "":
		return OrderIPv4First, nil
	case OrderIPv4First:
		return OrderIPv4First, nil
	case OrderIPv6First:
		return OrderIPv6First, nil
	case OrderVerbatim:
		return OrderVerbatim, nil
	default:
		return "", fmt.Errorf("upstream: unknown result order '%s'", s)
	}
}
