package stockkeeper

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.5", "12.5"},
		{" 1,234.5 ", "1234.5"},
		{"-3", "-3"},
		{"", "0"},
		{"abc", "0"},
		{"NaN", "0"},
		{"1e3", "1000"},
	}
	for _, tt := range tests {
		got := ParseDecimal(tt.in)
		assert.True(t, got.Equal(dec(tt.want)), "ParseDecimal(%q) = %s, want %s", tt.in, got, tt.want)
	}
	assert.True(t, D(15).Equal(dec("15")))
	assert.True(t, D(0.25).Equal(dec("0.25")))
	assert.Equal(t, int64(15), ParseInt("15.9"))
	assert.Equal(t, int64(0), ParseInt("fifteen"))
}

func TestID_UnmarshalJSON(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`["abc", 1731234567890, "42"]`), &ids))
	assert.Equal(t, []ID{"abc", "1731234567890", "42"}, ids)

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestPosition_Values(t *testing.T) {
	pos := Position{Price: dec("27.8"), Quantity: 15000, CostBasis: dec("24.5")}
	assert.True(t, pos.MarketValue().Equal(dec("417000")))
	assert.True(t, pos.CostValue().Equal(dec("367500")))
}

func TestDecodePositions(t *testing.T) {
	list, err := DecodePositions(strings.NewReader(`[{"id":"x","code":"2330","name":"TSMC","price":"-1","quantity":10,"epsAsOfMonth":0}]`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Price.IsZero())
	assert.Equal(t, 12, list[0].EPSAsOfMonth)

	_, err = DecodePositions(strings.NewReader(`{}`))
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	m := M(dec("1234.6"), "TWD")
	assert.Equal(t, "TWD", m.Currency())
	assert.Contains(t, m.String(), "1,235")
	assert.NotContains(t, m.String(), ".")
	assert.True(t, strings.HasPrefix(m.SignedString(), "+"))
	assert.False(t, strings.HasPrefix(M(dec("-5"), "TWD").SignedString(), "+"))
	assert.False(t, strings.HasPrefix(M(dec("0.2"), "TWD").SignedString(), "+"))

	data, err := json.Marshal(M(dec("10.5"), "TWD"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"TWD","amount":"10.5"}`, string(data))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.5%", Percent(12.5).String())
	assert.Equal(t, "+3.0%", Percent(3).SignedString())
	assert.Equal(t, "-3.0%", Percent(-3).SignedString())
	assert.Equal(t, "0.0%", Percent(-0.01).SignedString())
	assert.True(t, Percent(1.00001).Equal(1))
}

func TestMaintenanceStatus_Text(t *testing.T) {
	data, err := json.Marshal(map[string]MaintenanceStatus{"s": MaintenanceWarning})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"warning"}`, string(data))
	assert.Equal(t, "margin call", MaintenanceDanger.Label())
	assert.Equal(t, "no loan", MaintenanceNone.Label())
}
