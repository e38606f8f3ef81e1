package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.October, 28)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-10-28"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))
	assert.True(t, back.Valid())
}

func TestDateUnmarshalRejectsMalformed(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"28/10/2025"`), &d)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	err = json.Unmarshal([]byte(`20251028`), &d)
	assert.True(t, IsValidationError(err))
}

func TestDateNullIsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestLenientDateKeepsRawText(t *testing.T) {
	d := LenientDate("not-a-date")
	assert.False(t, d.Valid())
	assert.False(t, d.IsZero())
	assert.Equal(t, "not-a-date", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"not-a-date"`, string(b))

	assert.True(t, LenientDate("2024-10-01").Valid())
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.October, 1)
	b := a.AddDays(1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, "2024-10-02", b.String())
}

func TestTradeUpdateFieldsOnlySetValues(t *testing.T) {
	notes := "moved stop"
	emotions := []string{}
	u := TradeUpdate{Notes: &notes, Emotions: &emotions}
	f := u.Fields()
	assert.Equal(t, map[string]any{"notes": "moved stop", "emotions": []string{}}, f)
}

func TestTradeInputFieldsSkipsUnsetOptionals(t *testing.T) {
	rate := 2.5
	in := TradeInput{Symbol: "NQ", Side: SideBuy, Date: NewDate(2025, time.October, 28), Rate: &rate}
	f := in.Fields()
	assert.Equal(t, "NQ", f["symbol"])
	assert.Equal(t, 2.5, f["rate"])
	assert.NotContains(t, f, "risk")
	assert.NotContains(t, f, "status")
	assert.Equal(t, []string{}, f["emotions"])
}

func TestValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError("symbol", "symbol is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed for symbol: symbol is required", err.Error())
	assert.False(t, IsNotFound(err))
}
