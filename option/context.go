package option

import (
	"github.com/project-hatohol/hatohol-server/db"
)

// AccessInfoSource provides the persisted access grants of one user.
// Implemented by the handler layer.
type AccessInfoSource interface {
	ServerHostGrpSetMap(userID db.UserID) (db.ServerHostGrpSetMap, error)
}

// ServerSource provides the set of currently registered monitoring server
// ids. Implemented by the handler layer.
type ServerSource interface {
	ValidServerIDSet() (db.ServerIDSet, error)
}

// DataQueryContext carries the caller identity through one request and
// snapshots the authorization structures on first use. The snapshots are
// never refreshed, a new request builds a new context.
type DataQueryContext struct {
	priv    Privilege
	access  AccessInfoSource
	servers ServerSource

	srvHostGrpMap db.ServerHostGrpSetMap
	validServers  db.ServerIDSet
}

func NewDataQueryContext(priv Privilege, access AccessInfoSource,
	servers ServerSource) *DataQueryContext {
	return &DataQueryContext{
		priv:    priv,
		access:  access,
		servers: servers,
	}
}

func (c *DataQueryContext) Privilege() Privilege {
	return c.priv
}

// AllowedServerHostGrps returns the caller's authorization map, built once
// per context.
func (c *DataQueryContext) AllowedServerHostGrps() (db.ServerHostGrpSetMap, error) {
	if c.srvHostGrpMap == nil {
		m, err := c.access.ServerHostGrpSetMap(c.priv.UserID())
		if err != nil {
			return nil, err
		}
		if m == nil {
			m = db.ServerHostGrpSetMap{}
		}
		c.srvHostGrpMap = m
	}
	return c.srvHostGrpMap, nil
}

// ValidServerIDSet returns the non-defunct server ids, built once per
// context.
func (c *DataQueryContext) ValidServerIDSet() (db.ServerIDSet, error) {
	if c.validServers == nil {
		s, err := c.servers.ValidServerIDSet()
		if err != nil {
			return nil, err
		}
		if s == nil {
			s = db.ServerIDSet{}
		}
		c.validServers = s
	}
	return c.validServers, nil
}
