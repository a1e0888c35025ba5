package stockkeeper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testListing = Listing{
	{Code: "2330", Name: "台積電"},
	{Code: "2880", Name: "華南金"},
	{Code: "2892", Name: "第一金"},
	{Code: "5880", Name: "合庫金"},
}

func TestListing_Search(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"金", []string{"2880", "2892", "5880"}},
		{"28", []string{"2880", "2892"}},
		{" 2330 ", []string{"2330"}},
		{"台積", []string{"2330"}},
		{"nothing", nil},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		var got []string
		for _, s := range testListing.Search(tt.term) {
			got = append(got, s.Code)
		}
		assert.Equal(t, tt.want, got, "term %q", tt.term)
	}
}

func TestListing_Lookup(t *testing.T) {
	s, ok := testListing.Lookup("2892")
	require.True(t, ok)
	assert.Equal(t, "第一金", s.Name)

	_, ok = testListing.Lookup("289")
	assert.False(t, ok)
	assert.Equal(t, []string{"2330", "2880", "2892", "5880"}, testListing.Codes())
}

func TestDecodeReference(t *testing.T) {
	ref, err := DecodeReference(strings.NewReader(`{"2317": {"cumulativeEPS": 10.38, "month": 9, "note": "Q3"}}`))
	require.NoError(t, err)

	rec, ok := ref.Lookup("2317")
	require.True(t, ok)
	assert.True(t, rec.CumulativeEPS.Equal(dec("10.38")))
	assert.Equal(t, 9, rec.AsOfMonth)
	assert.Equal(t, "Q3", rec.Note)

	_, err = DecodeReference(strings.NewReader(`[]`))
	assert.Error(t, err)
}

func TestReferenceData_Apply(t *testing.T) {
	pos := Position{Code: "2317", CumulativeEPS: dec("1"), EPSAsOfMonth: 2}
	assert.True(t, testRef.apply(&pos))
	assert.True(t, pos.Verified)
	assert.True(t, pos.CumulativeEPS.Equal(dec("10.38")))

	other := Position{Code: "9999"}
	assert.False(t, testRef.apply(&other))
	assert.False(t, other.Verified)

	var none ReferenceData
	assert.False(t, none.apply(&pos))
}

func TestDecodeListing(t *testing.T) {
	l, err := DecodeListing(strings.NewReader(`[{"code":"2330","name":"台積電"}]`))
	require.NoError(t, err)
	assert.Equal(t, Listing{{Code: "2330", Name: "台積電"}}, l)
}
