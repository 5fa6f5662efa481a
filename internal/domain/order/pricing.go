package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CartLine is one client-submitted cart entry
type CartLine struct {
	ItemID uuid.UUID
	Size   string
}

// PricedLine is a cart line with its authoritative catalog price
type PricedLine struct {
	ItemID    uuid.UUID
	Size      string
	UnitPrice int64
}

// ValidatedTotal is the server-computed total of a cart
type ValidatedTotal struct {
	Amount   int64 // gateway sub-units
	Currency string
	Lines    []PricedLine
}

// CurrencyFactors maps an ISO currency code to the multiplier that converts
// catalog prices into the gateway's sub-unit convention (INR → 100 paise).
type CurrencyFactors map[string]int64

// Factor returns the conversion factor for currency.
func (f CurrencyFactors) Factor(currency string) (int64, error) {
	factor, ok := f[NormalizeCurrency(currency)]
	if !ok || factor <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, currency)
	}
	return factor, nil
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// PriceValidator recomputes cart totals from the catalog and rejects any
// client-declared amount that disagrees. It never writes.
type PriceValidator struct {
	catalog CatalogStore
	factors CurrencyFactors
}

// NewPriceValidator creates a PriceValidator over the given catalog and factors
func NewPriceValidator(catalog CatalogStore, factors CurrencyFactors) *PriceValidator {
	return &PriceValidator{
		catalog: catalog,
		factors: factors,
	}
}

// Validate prices lines against the catalog and compares the result with the
// declared amount. Integer equality only, no tolerance.
func (v *PriceValidator) Validate(ctx context.Context, lines []CartLine, declaredAmount int64, currency string) (*ValidatedTotal, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	factor, err := v.factors.Factor(currency)
	if err != nil {
		return nil, err
	}

	ids := uniqueItemIDs(lines)
	prices, err := v.catalog.LookupPrices(ctx, ids)
	if err != nil {
		return nil, err
	}

	total := &ValidatedTotal{
		Currency: NormalizeCurrency(currency),
		Lines:    make([]PricedLine, 0, len(lines)),
	}
	var sum int64
	for _, l := range lines {
		price, ok := prices[l.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, l.ItemID)
		}
		sum += price
		total.Lines = append(total.Lines, PricedLine{
			ItemID:    l.ItemID,
			Size:      l.Size,
			UnitPrice: price,
		})
	}
	total.Amount = sum * factor

	if declaredAmount != total.Amount {
		return nil, fmt.Errorf("%w: declared %d, expected %d", ErrAmountMismatch, declaredAmount, total.Amount)
	}
	return total, nil
}

func uniqueItemIDs(lines []CartLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	return ids
}
