package errcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeMsg(t *testing.T) {
	for i := Code(0); i < CodeMax; i++ {
		assert.NotEmpty(t, i.String(), "code %v has no message", int(i))
	}
	assert.Equal(t, "unknown error", Code(-1).String())
	assert.Equal(t, "unknown error", CodeMax.String())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"Nil error", nil, OK},
		{"Plain code", New(NoPrivilege), NoPrivilege},
		{"Formatted code", Newf(InvalidChar, "bad byte %q", 'x'), InvalidChar},
		{"Wrapped code", fmt.Errorf("outer: %w", New(DeleteMyself)), DeleteMyself},
		{"Foreign error", errors.New("disk on fire"), InternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
			assert.True(t, Is(tt.err, tt.want))
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidChar, "invalid character %q", byte('$'))
	assert.Equal(t, InvalidChar, err.Code)
	assert.Equal(t, `invalid character '$'`, err.Error())
}
