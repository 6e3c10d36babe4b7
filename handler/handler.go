package handler

// Package handler owns every durable mutation and query of the access
// control store. Each Impl is bound to a transaction through WithTx, the
// package level singletons run on the shared connection.

var (
	User   = &UserImpl{}
	Access = &AccessImpl{}
	Role   = &RoleImpl{}
	Server = &ServerImpl{}
)

// Init binds the singletons to the shared connection. Call after db.NewDB.
func Init() {
	User = User.WithTx(nil)
	Access = Access.WithTx(nil)
	Role = Role.WithTx(nil)
	Server = Server.WithTx(nil)
}
