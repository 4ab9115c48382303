package generator

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRowMatchesColumns(t *testing.T) {
	gen := New(3)

	row := gen.NextRow()
	require.Len(t, row, len(Columns()))
}

func TestNextRowShape(t *testing.T) {
	gen := New(7)

	row := gen.NextRow()

	assert.Equal(t, 7, row[0], "channel_id is the worker id")

	uid, ok := row[1].(string)
	require.True(t, ok)
	_, err := uuid.Parse(uid)
	assert.NoError(t, err, "unique_id is a uuid")

	assert.Equal(t, "ARCC0007", row[2], "loc_detail is derived from the worker id")

	ts, ok := row[3].(int64)
	require.True(t, ok)
	assert.Positive(t, ts)

	assert.Equal(t, 10, row[5], "action")

	txnID, ok := row[6].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, txnID, 7000)
	assert.LessOrEqual(t, txnID, 999999)

	assert.Equal(t, 12, row[7], "nil_action")
	assert.Nil(t, row[8], "nil_id")
}

func TestMessagePayload(t *testing.T) {
	gen := New(1)
	row := gen.NextRow()

	raw, ok := row[4].(string)
	require.True(t, ok)

	var msg map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, false, msg["entity"])
	assert.Equal(t, "US", msg["countryCode"])
	assert.Equal(t, "US", msg["tinIssuerCountry"])
	assert.Equal(t, row[1], msg["uid"], "uid matches the row's unique_id")
	assert.Equal(t, "ARCC0001", msg["location"])
	assert.NotEmpty(t, msg["individualFirstName"])
	assert.NotEmpty(t, msg["entityIndividualLastName"])
	assert.NotEmpty(t, msg["phoneNumber"])

	amount, ok := msg["amount"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, amount, 1000.0)
	assert.LessOrEqual(t, amount, 99999.99)

	dob, ok := msg["dob"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, int(dob), 19600101)
	assert.LessOrEqual(t, int(dob), 20051231)
}

func TestRowsAreDistinct(t *testing.T) {
	gen := New(1)

	seen := make(map[string]bool)
	for range 100 {
		row := gen.NextRow()
		uid := row[1].(string)
		assert.False(t, seen[uid], "unique_id repeats")
		seen[uid] = true
	}
}
