package security

import (
	"github.com/project-hatohol/hatohol-server/errcode"
)

const (
	maxUserNameLength     = 128
	maxPasswordLength     = 128
	maxUserRoleNameLength = 128
)

func validNameChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_' || c == '@':
		return true
	}
	return false
}

func ValidateUserName(name string) error {
	if name == "" {
		return errcode.New(errcode.EmptyUserName)
	}
	if len(name) > maxUserNameLength {
		return errcode.New(errcode.TooLongUserName)
	}
	for i := 0; i < len(name); i++ {
		if !validNameChar(name[i]) {
			return errcode.Newf(errcode.InvalidChar,
				"invalid character %q in user name", name[i])
		}
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return errcode.New(errcode.EmptyPassword)
	}
	if len(password) > maxPasswordLength {
		return errcode.New(errcode.TooLongPassword)
	}
	return nil
}

func ValidateFlags(flags Flags) error {
	if !flags.Valid() {
		return errcode.New(errcode.InvalidPrivilegeFlags)
	}
	return nil
}

func ValidateUserRoleName(name string) error {
	if name == "" {
		return errcode.New(errcode.EmptyUserRoleName)
	}
	if len(name) > maxUserRoleNameLength {
		return errcode.New(errcode.TooLongUserRoleName)
	}
	return nil
}
