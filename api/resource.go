package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/ztrue/tracerr"
)

type resourceParam struct {
	ServerID    *uint32 `form:"serverId"`
	HostgroupID string  `form:"hostgroupId"`
	HostID      string  `form:"hostId"`
	Limit       int     `form:"limit" binding:"min=0"`
	Offset      int     `form:"offset" binding:"min=0"`
}

func (p *resourceParam) apply(opt *option.HostResourceQueryOption) {
	if p.ServerID != nil {
		opt.SetTargetServerID(db.ServerID(*p.ServerID))
	}
	if p.HostgroupID != "" {
		opt.SetTargetHostgroupID(db.HostgroupID(p.HostgroupID))
	}
	if p.HostID != "" {
		opt.SetTargetHostID(db.HostID(p.HostID))
	}
	opt.SetMaximumNumber(p.Limit)
	opt.SetOffset(p.Offset)
}

// queryResource runs the generated FROM/JOIN/WHERE text and scans the
// rows into out. The always-false condition short-circuits to an empty
// result without touching the database.
func queryResource(opt *option.HostResourceQueryOption, out any) (bool, error) {
	cond, err := opt.Condition()
	if err != nil {
		return false, err
	}
	if cond.IsAlwaysFalse() {
		return true, nil
	}
	join, err := opt.JoinClause()
	if err != nil {
		return false, err
	}
	sql := "SELECT " + opt.FromClause() + ".* FROM " + opt.FromClause()
	if join != "" {
		sql += " " + join
	}
	if where := cond.SQL(); where != "" {
		sql += " WHERE " + where
	}
	if order := opt.OrderBy(); order != "" {
		sql += " ORDER BY " + order
	}
	if opt.MaximumNumber() != option.NoLimit {
		sql += fmt.Sprintf(" LIMIT %v", opt.MaximumNumber())
	}
	if opt.Offset() != 0 {
		sql += fmt.Sprintf(" OFFSET %v", opt.Offset())
	}
	return false, tracerr.Wrap(db.DB.Raw(sql).Scan(out).Error)
}

func APIGetTriggers(c *gin.Context) {
	var param resourceParam
	if err := c.ShouldBindQuery(&param); err != nil {
		response(c, errcode.InvalidChar)
		return
	}
	opt := option.NewTriggersQueryOption(queryContext(c))
	param.apply(&opt.HostResourceQueryOption)

	rows := []*db.Trigger{}
	empty, err := queryResource(&opt.HostResourceQueryOption, &rows)
	if err != nil {
		responseError(c, err)
		return
	}
	if empty {
		rows = []*db.Trigger{}
	}
	responseData(c, rows)
}

func APIGetEvents(c *gin.Context) {
	var param resourceParam
	if err := c.ShouldBindQuery(&param); err != nil {
		response(c, errcode.InvalidChar)
		return
	}
	opt := option.NewEventsQueryOption(queryContext(c))
	param.apply(&opt.HostResourceQueryOption)
	opt.SetSort("time", option.SortDescending)

	rows := []*db.Event{}
	empty, err := queryResource(&opt.HostResourceQueryOption, &rows)
	if err != nil {
		responseError(c, err)
		return
	}
	if empty {
		rows = []*db.Event{}
	}
	responseData(c, rows)
}

func APIGetHosts(c *gin.Context) {
	var param resourceParam
	if err := c.ShouldBindQuery(&param); err != nil {
		response(c, errcode.InvalidChar)
		return
	}
	opt := option.NewHostsQueryOption(queryContext(c))
	param.apply(&opt.HostResourceQueryOption)

	rows := []*db.Host{}
	empty, err := queryResource(&opt.HostResourceQueryOption, &rows)
	if err != nil {
		responseError(c, err)
		return
	}
	if empty {
		rows = []*db.Host{}
	}
	responseData(c, rows)
}
