package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversionEventWireFormat(t *testing.T) {
	owner := int64(3)
	approver := int64(9)
	event := ConversionEvent{
		EventID:     "6f1d9e0c-1111-2222-3333-444455556666",
		LeadID:      12,
		CustomerID:  4,
		Company:     "Globex",
		Contact:     "Hank Scorpio",
		Email:       "hank@globex.example",
		Phone:       "5553004000",
		Score:       82,
		OwnerID:     &owner,
		ApproverID:  &approver,
		Origin:      "API",
		ConvertedAt: time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(event)
	assert.NoError(t, err)

	// Consumers are written against these keys; renaming any of them is a
	// breaking change.
	var data map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &data))
	for _, key := range []string{
		"event_id", "lead_id", "customer_id", "company", "contact",
		"email", "phone", "score", "owner_id", "approver_id",
		"origin", "converted_at",
	} {
		assert.Contains(t, data, key, "key %s is missing", key)
	}

	var received ConversionEvent
	assert.NoError(t, json.Unmarshal(body, &received))
	assert.Equal(t, int64(12), received.LeadID)
	assert.Equal(t, int64(4), received.CustomerID)
	assert.Equal(t, int64(3), *received.OwnerID)
	assert.Equal(t, int64(9), *received.ApproverID)
	assert.True(t, event.ConvertedAt.Equal(received.ConvertedAt))
}

func TestConversionEventOmitsAbsentOptionals(t *testing.T) {
	event := ConversionEvent{
		EventID:    "evt-1",
		LeadID:     1,
		CustomerID: 1,
		Company:    "Initech",
		Contact:    "Bill Lumbergh",
		Origin:     "CONSOLE",
	}

	body, err := json.Marshal(event)
	assert.NoError(t, err)

	var data map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &data))

	// The welcome worker keys off a missing email, and unassigned leads must
	// not invent owner or approver ids on the wire.
	assert.NotContains(t, data, "email")
	assert.NotContains(t, data, "phone")
	assert.NotContains(t, data, "owner_id")
	assert.NotContains(t, data, "approver_id")
}
