package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lecturePayload struct {
	ModuleID string `json:"module_id" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=video assignment quiz"`
}

func TestPlaygroundV10_Struct(t *testing.T) {
	v := NewValidator()

	assert.Nil(t, v.Struct(&lecturePayload{ModuleID: "m1", Type: "quiz"}))

	errs := v.Struct(&lecturePayload{Type: "podcast"})
	require.Len(t, errs, 2)
	assert.Equal(t, "module_id", errs[0].Domain)
	assert.Equal(t, "module_id is a required field", errs[0].Reason)
	assert.Equal(t, "type", errs[1].Domain)
}
