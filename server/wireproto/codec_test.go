package wireproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringdb/ringdb/internal/sql/executor"
	"github.com/ringdb/ringdb/internal/storage"
)

func TestCodec_Message_RoundTrip(t *testing.T) {
	encoded := EncodeResult(executor.MessageResult("Table 'users' created."), nil)

	res, err := DecodeResult(encoded)
	require.NoError(t, err)
	assert.Equal(t, "Table 'users' created.", res.Message)
	assert.False(t, res.IsData)
}

func TestCodec_Error_RoundTrip(t *testing.T) {
	encoded := EncodeResult(nil, assertError{"Table 'users' already exists."})

	_, err := DecodeResult(encoded)
	require.Error(t, err)
	assert.Equal(t, "Table 'users' already exists.", err.Error())
}

func TestCodec_Data_RoundTrip(t *testing.T) {
	tuples := []storage.Tuple{
		{Values: []storage.Value{storage.IntValue(1), storage.StringValue("Alice")}},
		{Values: []storage.Value{storage.IntValue(2), storage.StringValue("")}},
	}
	encoded := EncodeResult(executor.DataResult(tuples), nil)

	res, err := DecodeResult(encoded)
	require.NoError(t, err)
	require.True(t, res.IsData)
	require.Len(t, res.Tuples, 2)
	assert.Equal(t, int64(1), res.Tuples[0].Values[0].Int())
	assert.Equal(t, "Alice", res.Tuples[0].Values[1].Str())
	assert.Equal(t, int64(2), res.Tuples[1].Values[0].Int())
	assert.Equal(t, "", res.Tuples[1].Values[1].Str())
}

func TestCodec_EmptyData_RoundTrip(t *testing.T) {
	encoded := EncodeResult(executor.DataResult(nil), nil)

	res, err := DecodeResult(encoded)
	require.NoError(t, err)
	assert.Empty(t, res.Tuples)
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
