package offers

import (
	"errors"
	"net/http"
	"testing"

	"vastra/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		name     string
		amount   int64
		discount int64
		want     int64
	}{
		{"20 percent", 100, 20, 80},
		{"full discount", 100, 100, 0},
		{"no discount", 100, 0, 100},
		{"truncates toward customer paying more", 99, 33, 67},
		{"small amount", 1, 50, 1},
		{"minor units", 4999, 10, 4500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DiscountedPrice(tc.amount, tc.discount))
		})
	}
}

func TestLookupFailure(t *testing.T) {
	var appErr *apperr.Error

	err := lookupFailure(mongo.ErrNoDocuments, "Product or offer not found")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Product or offer not found", appErr.Message)

	err = lookupFailure(errors.New("connection reset"), "Product or offer not found")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestLockProductReturnsSameMutex(t *testing.T) {
	a := lockProduct("p1")
	b := lockProduct("p1")
	c := lockProduct("p2")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
