package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/utils/log"
)

// SessionStore is the redis backed store, set by the run command before
// the routes are served.
var SessionStore sessions.Store

func httpStatus(c errcode.Code) int {
	switch c {
	case errcode.OK:
		return http.StatusOK
	case errcode.NoPrivilege, errcode.InvalidUser:
		return http.StatusForbidden
	case errcode.NotFoundTargetRecord:
		return http.StatusNotFound
	case errcode.UserNameExist, errcode.UserRoleNameOrFlagsExist,
		errcode.DeleteMyself:
		return http.StatusConflict
	case errcode.InternalError:
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func response(c *gin.Context, code errcode.Code) {
	c.JSON(httpStatus(code), gin.H{"code": code, "msg": code.String()})
}

func responseData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": errcode.OK, "data": data})
}

// responseError logs internal failures and maps everything onto the
// closed code set.
func responseError(c *gin.Context, err error) {
	code := errcode.CodeOf(err)
	if code == errcode.InternalError {
		log.NewEntry(err).Error("Internal error")
	}
	response(c, code)
}

// RegisterRoutes mounts every endpoint on e.
func RegisterRoutes(e *gin.Engine) {
	e.POST("/login", APILogin)
	e.POST("/logout", APILogout)

	auth := e.Group("/", SessionMiddleware())
	auth.GET("/user/me", APIGetMyself)
	auth.GET("/user", APIGetUsers)
	auth.POST("/user", APIAddUser)
	auth.PUT("/user/:id", APIUpdateUser)
	auth.DELETE("/user/:id", APIDeleteUser)

	auth.GET("/user/:id/access", APIGetAccessInfo)
	auth.POST("/access", APIAddAccessInfo)
	auth.DELETE("/access/:id", APIDeleteAccessInfo)

	auth.GET("/user-role", APIGetUserRoles)
	auth.POST("/user-role", APIAddUserRole)
	auth.PUT("/user-role/:id", APIUpdateUserRole)
	auth.DELETE("/user-role/:id", APIDeleteUserRole)

	auth.GET("/trigger", APIGetTriggers)
	auth.GET("/event", APIGetEvents)
	auth.GET("/host", APIGetHosts)
}
