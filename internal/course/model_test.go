package course

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	cases := map[string]Price{
		`{"price": 39000}`:   39000,
		`{"price": "12.5"}`:  12.5,
		`{"price": " 100 "}`: 100,
		`{"price": ""}`:      0,
		`{"price": "free"}`:  0,
		`{"price": true}`:    0,
	}
	for input, want := range cases {
		var c Course
		require.NoError(t, json.Unmarshal([]byte(input), &c), input)
		assert.Equal(t, want, c.Price, input)
	}

	var patch CoursePatch
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Go", "instructor": {"name": "x"}, "price": null}`), &patch))
	assert.Nil(t, patch.Price)
	assert.Equal(t, "Go", *patch.Title)
}
