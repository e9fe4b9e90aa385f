package checkout

import (
	"context"
	"errors"

	"vastra/apperr"
	"vastra/models"
)

// ErrStockNotFound is returned by a StockFinder when no stock matches the
// (stockID, productID) pair.
var ErrStockNotFound = errors.New("stock not found")

// StockFinder answers authoritative point lookups for the validator. The stock
// must belong to the given product or the lookup fails.
type StockFinder interface {
	FindStock(ctx context.Context, stockID, productID string) (*models.Stock, error)
}

// CartLine is one client-submitted line item. Price and TotalPrice are the
// client's claims; the validator never trusts them.
type CartLine struct {
	ProductID  string `json:"prod_id"`
	StockID    string `json:"stock_id"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
	TotalPrice int64  `json:"totalPrice"`
}

// LineError is one entry of the accumulated rejection list. Product is empty
// for the order-level total mismatch.
type LineError struct {
	Product string `json:"product,omitempty"`
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

const (
	msgInvalidProduct     = "Invalid Product"
	msgOutOfStock         = "Product is out of stock"
	msgPriceMismatch      = "Product's price mismatched"
	msgNetPriceMismatch   = "Product's net price mismatched"
	msgOrderPriceMismatch = "Order's net price mismatched"
)

// ValidateCart recomputes the cart's pricing from authoritative stock records
// and compares it against the client's claims. Every line is evaluated
// independently so the caller gets the complete correction list in one round
// trip; a non-nil error is returned only for the upfront shape rejection
// (empty cart, zero quantity, non-positive total), in which case no lookups
// have run. A lookup failure other than "not found" aborts with ServerError,
// since a partial verdict could wrongly reject valid lines.
func ValidateCart(ctx context.Context, finder StockFinder, lines []CartLine, orderTotal int64) ([]LineError, error) {
	if len(lines) == 0 || orderTotal <= 0 {
		return nil, apperr.MissingFields()
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.MissingFields()
		}
	}

	var errs []LineError
	var netOrderAmount int64

	for _, line := range lines {
		stock, err := finder.FindStock(ctx, line.StockID, line.ProductID)
		if errors.Is(err, ErrStockNotFound) {
			errs = append(errs, LineError{Product: line.ProductID, Message: msgInvalidProduct})
			continue
		}
		if err != nil {
			return nil, apperr.ServerError(err)
		}

		if stock.Quantity < line.Quantity {
			errs = append(errs, LineError{Product: line.ProductID, Message: msgOutOfStock})
			continue
		}

		unitPrice := stock.UnitPrice()
		if line.Price != unitPrice {
			errs = append(errs, LineError{Product: line.ProductID, Message: msgPriceMismatch})
			continue
		}

		if unitPrice*int64(line.Quantity) != line.TotalPrice {
			errs = append(errs, LineError{Product: line.ProductID, Message: msgNetPriceMismatch})
			continue
		}

		netOrderAmount += line.TotalPrice
	}

	if netOrderAmount != orderTotal {
		errs = append(errs, LineError{Message: msgOrderPriceMismatch})
	}

	return errs, nil
}
