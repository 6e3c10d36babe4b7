package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagWidth(t *testing.T) {
	// stored bitsets depend on this value, see flagWidthHistory before
	// touching the flag list
	assert.Equal(t, 29, int(NumPrivileges))
}

func TestAllBits(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  Flags
	}{
		{"Width 0", 0, 0},
		{"Width 1", 1, 1},
		{"Width 10", 10, 0x3FF},
		{"Width 29", 29, 0x1FFFFFFF},
		{"Width 32", 32, 0xFFFFFFFF},
		{"Width 64", 64, ^Flags(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllBits(tt.width))
		})
	}
}

func TestFlagsHas(t *testing.T) {
	f := Flag(CreateUser) | Flag(GetAllServer)
	assert.True(t, f.Has(CreateUser))
	assert.True(t, f.Has(GetAllServer))
	assert.False(t, f.Has(DeleteUser))
	assert.False(t, NonePrivilege.Has(CreateUser))

	all := AllPrivileges()
	for bit := FlagBit(0); bit < NumPrivileges; bit++ {
		assert.True(t, all.Has(bit))
	}
}

func TestFlagsValid(t *testing.T) {
	assert.True(t, NonePrivilege.Valid())
	assert.True(t, AllPrivileges().Valid())
	assert.True(t, Flag(SystemOperation).Valid())
	assert.False(t, (AllPrivileges() + 1).Valid())
	assert.False(t, (Flags(1) << uint(NumPrivileges)).Valid())
}
