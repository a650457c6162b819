package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareUnmarshalAcceptsStringsAndNumbers(t *testing.T) {
	var splits []Split
	err := json.Unmarshal([]byte(`[{"name":"A","share":"50"},{"name":"B","share":33.5},{"name":"C","share":null}]`), &splits)
	require.NoError(t, err)

	require.Len(t, splits, 3)
	assert.Equal(t, Share("50"), splits[0].Share)
	assert.Equal(t, Share("33.5"), splits[1].Share)
	assert.Equal(t, Share(""), splits[2].Share)
}

func TestShareUnmarshalRejectsObjects(t *testing.T) {
	var s Split
	err := json.Unmarshal([]byte(`{"name":"A","share":{"v":1}}`), &s)
	assert.Error(t, err)
}

func TestShareFloat(t *testing.T) {
	f, err := Share(" 12.5 ").Float()
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	for _, bad := range []Share{"", "abc", "50%", "NaN", "Inf"} {
		_, err := bad.Float()
		assert.Error(t, err, "share %q", bad)
	}
}

func TestFormatShare(t *testing.T) {
	assert.Equal(t, Share("100"), FormatShare(100))
	assert.Equal(t, Share("33.5"), FormatShare(33.5))
	assert.Equal(t, Share("0"), FormatShare(0))
}

func TestUpdateBookRequestPresence(t *testing.T) {
	var req UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"splits":[]}`), &req))
	assert.NotNil(t, req.Splits, "an empty array is present")
	assert.Nil(t, req.Chapters)
	assert.False(t, req.Empty())

	var none UpdateBookRequest
	require.NoError(t, json.Unmarshal([]byte(`{"splits":null}`), &none))
	assert.True(t, none.Empty())
}
