package api

import (
	"github.com/gin-gonic/gin"
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/handler"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/spf13/viper"
)

const sessionUserKey = "user_id"

func sessionCookie() string {
	return viper.GetString("session.cookie")
}

// SessionMiddleware resolves the session into the caller's privilege.
// An unauthenticated request still proceeds, carrying the invalid
// identity, so query endpoints fail closed to empty results while
// mutations report NoPrivilege.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		priv := option.NewPrivilege(0)
		session, err := SessionStore.Get(c.Request, sessionCookie())
		if err == nil {
			if v, ok := session.Values[sessionUserKey].(int32); ok {
				p, err := handler.User.PrivilegeOf(db.UserID(v))
				if err != nil {
					responseError(c, err)
					c.Abort()
					return
				}
				priv = p
			}
		}
		c.Set("privilege", priv)
		c.Next()
	}
}

func privilegeOf(c *gin.Context) option.Privilege {
	return c.MustGet("privilege").(option.Privilege)
}

func queryContext(c *gin.Context) *option.DataQueryContext {
	return option.NewDataQueryContext(privilegeOf(c), handler.Access, handler.Server)
}

func APILogin(c *gin.Context) {
	type Param struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.InvalidUser)
		return
	}
	id, err := handler.User.GetUserID(param.Name, param.Password)
	if err != nil {
		responseError(c, err)
		return
	}
	if id == db.InvalidUserID {
		response(c, errcode.InvalidUser)
		return
	}

	session, _ := SessionStore.Get(c.Request, sessionCookie())
	session.Values[sessionUserKey] = int32(id)
	session.Options.MaxAge = viper.GetInt("session.expire")
	if err := SessionStore.Save(c.Request, c.Writer, session); err != nil {
		responseError(c, err)
		return
	}
	responseData(c, gin.H{"userId": id})
}

func APILogout(c *gin.Context) {
	session, _ := SessionStore.Get(c.Request, sessionCookie())
	session.Options.MaxAge = -1
	if err := SessionStore.Save(c.Request, c.Writer, session); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}
