package handler

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"gorm.io/gorm"
)

// ServerImpl owns the registry of monitoring servers. Rows in the
// resource tables whose server id is absent here belong to defunct
// servers and are filtered by the query options.
type ServerImpl struct {
	tx     *gorm.DB
	server *db.ORM[db.Server]
}

func (s *ServerImpl) WithTx(tx *gorm.DB) *ServerImpl {
	if tx == nil {
		tx = db.DB
	}
	return &ServerImpl{
		tx:     tx,
		server: db.NewORM[db.Server](tx),
	}
}

// Add registers a monitoring server. Requires CreateServer.
func (s *ServerImpl) Add(server *db.Server, priv option.Privilege) error {
	if !priv.Has(security.CreateServer) {
		return errcode.New(errcode.NoPrivilege)
	}
	return s.server.Create(server)
}

// Delete unregisters a server, turning its historical rows defunct.
// Requires DeleteServer.
func (s *ServerImpl) Delete(id db.ServerID, priv option.Privilege) error {
	if !priv.Has(security.DeleteServer) {
		return errcode.New(errcode.NoPrivilege)
	}
	ok, err := s.server.DeleteID(id)
	if err != nil {
		return err
	}
	if !ok {
		return errcode.New(errcode.NotFoundTargetRecord)
	}
	return nil
}

func (s *ServerImpl) GetAll() ([]*db.Server, error) {
	return s.server.Find()
}

// ValidServerIDSet returns the ids of currently registered servers.
// Implements option.ServerSource.
func (s *ServerImpl) ValidServerIDSet() (db.ServerIDSet, error) {
	rows, err := s.server.Find()
	if err != nil {
		return nil, err
	}
	ret := db.ServerIDSet{}
	for _, row := range rows {
		ret.Add(row.ID)
	}
	return ret, nil
}
