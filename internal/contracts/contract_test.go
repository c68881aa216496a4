package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractDecode(t *testing.T) {
	payload := `{
		"id": "5b1f4c8e-3a52-4f0e-9a61-2f8f5f1f0c11",
		"title": "Suministro de material",
		"status": "ADJ",
		"updatedAt": "2025-03-01T10:15:30.123",
		"totalAmount": null,
		"estimatedAmount": 1500.5,
		"typeCode": "2",
		"source": "perfiles"
	}`

	var c Contract
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	assert.Equal(t, "5b1f4c8e-3a52-4f0e-9a61-2f8f5f1f0c11", c.ID.String())
	assert.Nil(t, c.TotalAmount)
	require.NotNil(t, c.EstimatedAmount)
	assert.InDelta(t, 1500.5, *c.EstimatedAmount, 1e-9)
	require.NotNil(t, c.UpdatedAt)
	assert.Equal(t, time.March, c.UpdatedAt.Month())
	assert.Equal(t, 15, c.UpdatedAt.Minute())
}

func TestTimestampLayouts(t *testing.T) {
	for _, in := range []string{
		`"2025-03-01T10:15:30Z"`,
		`"2025-03-01T10:15:30"`,
		`"2025-03-01"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.Equal(t, 2025, ts.Year())
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestampMarshal(t *testing.T) {
	ts := Timestamp{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-02T03:04:05"`, string(data))
}

func TestTypeCountDecode(t *testing.T) {
	var stats Statistics
	payload := `{
		"totalContracts": 12,
		"countByTypeCode": {"1": 5, "02": {"count": 7, "description": "Servicios"}},
		"countByStatus": {"ADJ": 3}
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &stats))
	assert.Equal(t, int64(5), stats.CountByTypeCode["1"].Count)
	assert.Equal(t, int64(7), stats.CountByTypeCode["02"].Count)
	assert.Equal(t, "Servicios", stats.CountByTypeCode["02"].Description)

	var bad TypeCount
	require.Error(t, json.Unmarshal([]byte(`"seven"`), &bad))
}

func TestSearchFieldParam(t *testing.T) {
	assert.Equal(t, "title", SearchTitle.Param())
	assert.Equal(t, "name", SearchContractingParty.Param())
	assert.Equal(t, "source", SearchSource.Param())
	assert.Equal(t, "countrySubentity", SearchRegion.Param())
	assert.Equal(t, "query", SearchGlobal.Param())
	assert.Empty(t, SearchNone.Param())
}

type recordingSource struct {
	listed   bool
	searched SearchField
	value    string
}

func (s *recordingSource) List(context.Context, PageRequest) (Page, error) {
	s.listed = true
	return Page{}, nil
}

func (s *recordingSource) Search(_ context.Context, f SearchField, v string, _ PageRequest) (Page, error) {
	s.searched, s.value = f, v
	return Page{}, errors.New("boom")
}

func TestFetchDispatch(t *testing.T) {
	src := &recordingSource{}
	_, err := Fetch(context.Background(), src, Query{})
	require.NoError(t, err)
	assert.True(t, src.listed)

	src = &recordingSource{}
	_, err = Fetch(context.Background(), src, Query{Search: SearchTitle, Value: "obras"})
	require.Error(t, err)
	assert.False(t, src.listed)
	assert.Equal(t, SearchTitle, src.searched)
	assert.Equal(t, "obras", src.value)
}
