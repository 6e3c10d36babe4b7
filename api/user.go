package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/handler"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response(c, errcode.NotFoundTargetRecord)
		return 0, false
	}
	return id, true
}

func APIGetMyself(c *gin.Context) {
	opt := option.NewUserQueryOption(queryContext(c))
	opt.SetOnlyMyself(true)
	users, err := handler.User.Get(opt)
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, users)
}

func APIGetUsers(c *gin.Context) {
	type Param struct {
		Name   string `form:"name"`
		Limit  int    `form:"limit" binding:"min=0"`
		Offset int    `form:"offset" binding:"min=0"`
	}
	var param Param
	if err := c.ShouldBindQuery(&param); err != nil {
		response(c, errcode.InvalidChar)
		return
	}
	opt := option.NewUserQueryOption(queryContext(c))
	if param.Name != "" {
		opt.SetTargetName(param.Name)
	}
	opt.SetMaximumNumber(param.Limit)
	opt.SetOffset(param.Offset)
	users, err := handler.User.Get(opt)
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, users)
}

func APIAddUser(c *gin.Context) {
	type Param struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
		Flags    uint64 `json:"flags"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.EmptyUserName)
		return
	}
	id, err := handler.User.Add(param.Name, param.Password,
		security.Flags(param.Flags), privilegeOf(c))
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, gin.H{"id": id})
}

func APIUpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	type Param struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password"`
		Flags    uint64 `json:"flags"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.EmptyUserName)
		return
	}
	if err := handler.User.Update(db.UserID(id), param.Name, param.Password,
		security.Flags(param.Flags), privilegeOf(c)); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}

func APIDeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := handler.User.Delete(db.UserID(id), privilegeOf(c)); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}

func APIGetAccessInfo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	opt := option.NewAccessInfoQueryOption(queryContext(c))
	opt.SetTargetUserID(db.UserID(id))
	rows, err := handler.Access.GetList(opt)
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, rows)
}

func APIAddAccessInfo(c *gin.Context) {
	type Param struct {
		UserID      int32  `json:"userId" binding:"required"`
		ServerID    uint32 `json:"serverId"`
		HostgroupID string `json:"hostgroupId" binding:"required"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.NotFoundTargetRecord)
		return
	}
	id, err := handler.Access.Add(&db.AccessInfo{
		UserID:      db.UserID(param.UserID),
		ServerID:    db.ServerID(param.ServerID),
		HostgroupID: db.HostgroupID(param.HostgroupID),
	}, privilegeOf(c))
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, gin.H{"id": id})
}

func APIDeleteAccessInfo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := handler.Access.Delete(id, privilegeOf(c)); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}

func APIGetUserRoles(c *gin.Context) {
	opt := option.NewUserRoleQueryOption(queryContext(c))
	roles, err := handler.Role.Get(opt)
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, roles)
}

func APIAddUserRole(c *gin.Context) {
	type Param struct {
		Name  string `json:"name" binding:"required"`
		Flags uint64 `json:"flags" binding:"required"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.EmptyUserRoleName)
		return
	}
	id, err := handler.Role.Add(param.Name, security.Flags(param.Flags),
		privilegeOf(c))
	if err != nil {
		responseError(c, err)
		return
	}
	responseData(c, gin.H{"id": id})
}

func APIUpdateUserRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	type Param struct {
		Name  string `json:"name" binding:"required"`
		Flags uint64 `json:"flags" binding:"required"`
	}
	var param Param
	if err := c.ShouldBindJSON(&param); err != nil {
		response(c, errcode.EmptyUserRoleName)
		return
	}
	if err := handler.Role.Update(id, param.Name, security.Flags(param.Flags),
		privilegeOf(c)); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}

func APIDeleteUserRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := handler.Role.Delete(id, privilegeOf(c)); err != nil {
		responseError(c, err)
		return
	}
	response(c, errcode.OK)
}
