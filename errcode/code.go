package errcode

import (
	"errors"
	"fmt"
)

// Code is the machine readable result of a store operation. The REST layer
// maps each code to an HTTP status, this package never does.
type Code int32

const (
	OK Code = iota
	NoPrivilege
	DeleteMyself
	EmptyUserName
	TooLongUserName
	InvalidChar
	EmptyPassword
	TooLongPassword
	InvalidPrivilegeFlags
	EmptyUserRoleName
	TooLongUserRoleName
	UserNameExist
	UserRoleNameOrFlagsExist
	NotFoundTargetRecord
	InvalidUser
	InternalError

	CodeMax
)

var codeMsg = [CodeMax]string{
	"success",
	"no privilege for the operation",
	"cannot delete yourself",
	"user name is empty",
	"user name is too long",
	"invalid character in name",
	"password is empty",
	"password is too long",
	"invalid privilege flags",
	"user role name is empty",
	"user role name is too long",
	"user name already exists",
	"user role name or privilege flags already exist",
	"target record not found",
	"invalid user",
	"internal error",
}

func (c Code) String() string {
	if c < 0 || c >= CodeMax {
		return "unknown error"
	}
	return codeMsg[c]
}

// Error binds a Code to an error value so callers can branch on the code
// while the message stays loggable.
type Error struct {
	Code Code
	msg  string
}

func New(c Code) *Error {
	return &Error{Code: c, msg: c.String()}
}

func Newf(c Code, format string, args ...any) *Error {
	return &Error{Code: c, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}

// CodeOf extracts the Code from err. A nil error is OK, an error outside
// the taxonomy (wrapped store failure etc.) is InternalError.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

func Is(err error, c Code) bool {
	return CodeOf(err) == c
}
