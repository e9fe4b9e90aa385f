package orders

import (
	"testing"

	"vastra/models"

	"github.com/stretchr/testify/assert"
)

func TestAlreadySettled(t *testing.T) {
	assert.True(t, alreadySettled(&models.Order{Status: models.OrderPlaced, ReqType: models.ReqApproved}))

	// Approval survives fulfillment transitions.
	assert.True(t, alreadySettled(&models.Order{Status: models.OrderShipped, ReqType: models.ReqApproved}))
	assert.True(t, alreadySettled(&models.Order{Status: models.OrderDelivered, ReqType: models.ReqApproved}))

	assert.False(t, alreadySettled(&models.Order{Status: models.OrderProcessing, ReqType: models.ReqPending}))
	assert.False(t, alreadySettled(&models.Order{Status: models.OrderFailed, ReqType: models.ReqRejected}))
	assert.False(t, alreadySettled(&models.Order{Status: models.OrderPlaced, ReqType: models.ReqPending}))
}
