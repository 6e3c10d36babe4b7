package security

// Flags is a capability bitset. One bit per operation class, bound to a
// user or a user role row.
type Flags uint64

// FlagBit is the index of a single capability inside Flags. The numeric
// value of each bit is part of the stored format and must never be
// reordered, new bits are appended before NumPrivileges only.
type FlagBit int

const (
	CreateUser FlagBit = iota
	UpdateUser
	DeleteUser
	GetAllUser
	CreateServer
	UpdateServer
	UpdateAllServer
	DeleteServer
	DeleteAllServer
	GetAllServer
	CreateAction
	UpdateAction
	UpdateAllAction
	DeleteAction
	DeleteAllAction
	GetAllAction
	CreateUserRole
	UpdateAllUserRole
	DeleteAllUserRole
	CreateIncidentSetting
	UpdateIncidentSetting
	DeleteIncidentSetting
	GetAllIncidentSettings
	GetSystemInfo
	SystemOperation
	CreateCustomIncidentStatus
	UpdateCustomIncidentStatus
	DeleteCustomIncidentStatus
	GetAllCustomIncidentStatuses

	NumPrivileges
)

const NonePrivilege Flags = 0

// Flag returns the bitmask for a single capability.
func Flag(bit FlagBit) Flags {
	return Flags(1) << uint(bit)
}

// AllBits returns the bitset with the lowest width bits set. Used both for
// AllPrivileges and for reinterpreting bitsets written by older schema
// versions with a narrower width.
func AllBits(width int) Flags {
	if width >= 64 {
		return ^Flags(0)
	}
	return Flags(1)<<uint(width) - 1
}

// AllPrivileges is the administrator bitset under the current width.
func AllPrivileges() Flags {
	return AllBits(int(NumPrivileges))
}

func (f Flags) Has(bit FlagBit) bool {
	return f&Flag(bit) != 0
}

// Valid reports whether f only uses currently defined bits.
func (f Flags) Valid() bool {
	return f <= AllPrivileges()
}
