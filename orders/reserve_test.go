package orders

import (
	"context"
	"errors"
	"testing"

	"vastra/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventory struct {
	quantities map[string]int
	failOn     string
	errOn      string
}

func (f *fakeInventory) Reserve(_ context.Context, stockID string, qty int) (bool, error) {
	if stockID == f.errOn {
		return false, errors.New("write conflict")
	}
	if stockID == f.failOn || f.quantities[stockID] < qty {
		return false, nil
	}
	f.quantities[stockID] -= qty
	return true, nil
}

func (f *fakeInventory) Release(_ context.Context, stockID string, qty int) error {
	f.quantities[stockID] += qty
	return nil
}

func TestReserveAllDecrementsEveryLine(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{"s1": 5, "s2": 3}}
	lines := []checkout.CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2},
		{ProductID: "p2", StockID: "s2", Quantity: 3},
	}

	require.NoError(t, reserveAll(context.Background(), inv, lines))
	assert.Equal(t, 3, inv.quantities["s1"])
	assert.Equal(t, 0, inv.quantities["s2"])
}

func TestReserveAllCompensatesOnSoldOut(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{"s1": 5, "s2": 1}}
	lines := []checkout.CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2},
		{ProductID: "p2", StockID: "s2", Quantity: 3},
	}

	err := reserveAll(context.Background(), inv, lines)
	var soldOut *errSoldOut
	require.ErrorAs(t, err, &soldOut)
	assert.Equal(t, "p2", soldOut.productID)

	// The first line's decrement must have been rolled back.
	assert.Equal(t, 5, inv.quantities["s1"])
	assert.Equal(t, 1, inv.quantities["s2"])
}

func TestReserveAllCompensatesOnError(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{"s1": 5, "s2": 3}, errOn: "s2"}
	lines := []checkout.CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 4},
		{ProductID: "p2", StockID: "s2", Quantity: 1},
	}

	err := reserveAll(context.Background(), inv, lines)
	require.Error(t, err)
	var soldOut *errSoldOut
	assert.False(t, errors.As(err, &soldOut))
	assert.Equal(t, 5, inv.quantities["s1"])
}

func TestReserveAllEmptyCart(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{}}
	require.NoError(t, reserveAll(context.Background(), inv, nil))
}
