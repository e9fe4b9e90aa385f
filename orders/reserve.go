package orders

import (
	"context"
	"fmt"
	"log"

	"vastra/checkout"
)

// Inventory is the conditional-decrement surface order placement needs.
type Inventory interface {
	Reserve(ctx context.Context, stockID string, qty int) (bool, error)
	Release(ctx context.Context, stockID string, qty int) error
}

// errSoldOut reports which product lost the inventory race.
type errSoldOut struct{ productID string }

func (e *errSoldOut) Error() string {
	return fmt.Sprintf("product %s sold out during checkout", e.productID)
}

// reserveAll decrements every line's stock with decrement-if-sufficient. If
// any line fails, every decrement already taken is released again so a
// rejected checkout leaves no partial state behind.
func reserveAll(ctx context.Context, inv Inventory, lines []checkout.CartLine) error {
	done := make([]checkout.CartLine, 0, len(lines))
	for _, line := range lines {
		ok, err := inv.Reserve(ctx, line.StockID, line.Quantity)
		if err == nil && !ok {
			err = &errSoldOut{productID: line.ProductID}
		}
		if err != nil {
			releaseAll(ctx, inv, done)
			return err
		}
		done = append(done, line)
	}
	return nil
}

func releaseAll(ctx context.Context, inv Inventory, lines []checkout.CartLine) {
	for _, line := range lines {
		if err := inv.Release(ctx, line.StockID, line.Quantity); err != nil {
			log.Printf("release of stock %s (%d) failed: %v", line.StockID, line.Quantity, err)
		}
	}
}
