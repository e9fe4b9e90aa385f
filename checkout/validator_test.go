package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"vastra/apperr"
	"vastra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	stocks map[string]*models.Stock
	err    error
}

func (f *fakeFinder) FindStock(_ context.Context, stockID, productID string) (*models.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	stock, ok := f.stocks[stockID]
	if !ok || stock.ProductID != productID {
		return nil, ErrStockNotFound
	}
	return stock, nil
}

func intPtr(v int64) *int64 { return &v }

func newFinder() *fakeFinder {
	return &fakeFinder{stocks: map[string]*models.Stock{
		"s1": {StockID: "s1", ProductID: "p1", Amount: 50, Quantity: 10},
		"s2": {StockID: "s2", ProductID: "p2", Amount: 200, Quantity: 3},
		"s3": {StockID: "s3", ProductID: "p3", Amount: 100, OfferPrice: intPtr(80), Quantity: 5},
	}}
}

func TestValidateCartAccepts(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 50, TotalPrice: 100},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 100)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateCartUsesOfferPrice(t *testing.T) {
	// The discounted price is authoritative while an offer is active.
	lines := []CartLine{
		{ProductID: "p3", StockID: "s3", Quantity: 2, Price: 80, TotalPrice: 160},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 160)
	require.NoError(t, err)
	assert.Empty(t, errs)

	// The base price is a mismatch for the same stock.
	lines[0].Price = 100
	lines[0].TotalPrice = 200
	errs, err = ValidateCart(context.Background(), newFinder(), lines, 200)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Product's price mismatched", errs[0].Message)
}

func TestValidateCartUnknownStock(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "nope", Quantity: 1, Price: 50, TotalPrice: 50},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 50)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Invalid Product", errs[0].Message)
	assert.Equal(t, "p1", errs[0].Product)
}

func TestValidateCartWrongProductForStock(t *testing.T) {
	// The stock exists but belongs to a different product.
	lines := []CartLine{
		{ProductID: "p2", StockID: "s1", Quantity: 1, Price: 50, TotalPrice: 50},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 50)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, "Invalid Product", errs[0].Message)
}

func TestValidateCartOutOfStock(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p2", StockID: "s2", Quantity: 4, Price: 200, TotalPrice: 800},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 800)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Product is out of stock", errs[0].Message)
}

func TestValidateCartPriceMismatch(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 45, TotalPrice: 90},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 90)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Product's price mismatched", errs[0].Message)
	assert.Equal(t, "Order's net price mismatched", errs[1].Message)
}

func TestValidateCartNetPriceMismatch(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 50, TotalPrice: 90},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 100)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Product's net price mismatched", errs[0].Message)
}

func TestValidateCartOrderTotalMismatch(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 50, TotalPrice: 100},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 120)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "Order's net price mismatched", errs[0].Message)
	assert.Empty(t, errs[0].Product)
}

func TestValidateCartAccumulatesAllLineErrors(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", StockID: "missing", Quantity: 1, Price: 50, TotalPrice: 50},
		{ProductID: "p2", StockID: "s2", Quantity: 9, Price: 200, TotalPrice: 1800},
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 50, TotalPrice: 100},
	}
	errs, err := ValidateCart(context.Background(), newFinder(), lines, 100)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "Invalid Product", errs[0].Message)
	assert.Equal(t, "Product is out of stock", errs[1].Message)
}

func TestValidateCartRejectsShape(t *testing.T) {
	cases := []struct {
		name  string
		lines []CartLine
		total int64
	}{
		{"empty cart", nil, 100},
		{"zero quantity", []CartLine{{ProductID: "p1", StockID: "s1", Quantity: 0}}, 100},
		{"negative quantity", []CartLine{{ProductID: "p1", StockID: "s1", Quantity: -1}}, 100},
		{"zero total", []CartLine{{ProductID: "p1", StockID: "s1", Quantity: 1}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCart(context.Background(), newFinder(), tc.lines, tc.total)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
		})
	}
}

func TestValidateCartLookupFailureAborts(t *testing.T) {
	finder := &fakeFinder{err: errors.New("connection reset")}
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 1, Price: 50, TotalPrice: 50},
	}
	_, err := ValidateCart(context.Background(), finder, lines, 50)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestValidateCartIsReadOnly(t *testing.T) {
	finder := newFinder()
	lines := []CartLine{
		{ProductID: "p1", StockID: "s1", Quantity: 2, Price: 50, TotalPrice: 100},
	}
	first, err := ValidateCart(context.Background(), finder, lines, 100)
	require.NoError(t, err)
	second, err := ValidateCart(context.Background(), finder, lines, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 10, finder.stocks["s1"].Quantity)
}
