package handler

import (
	"flag"
	"os"
	"testing"

	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
)

var (
	adminID db.UserID
	aliceID db.UserID
	bobID   db.UserID

	adminPriv option.Privilege
	alicePriv option.Privilege
	bobPriv   option.Privilege
)

func setup() {
	flag.Parse()
	verbose := flag.Lookup("test.v").Value.String() == "true"
	// db.NewDB("debug.db", "sqlite", verbose)
	if _, err := db.NewDB("file::memory:?cache=shared", "sqlite", verbose); err != nil {
		panic(err)
	}
	Init()
	if err := MigrateUserFlags(); err != nil {
		panic(err)
	}

	system := option.SystemPrivilege()
	var err error
	if adminID, err = User.Add("admin", "admin123",
		security.AllPrivileges(), system); err != nil {
		panic(err)
	}
	if aliceID, err = User.Add("alice", "alice123",
		security.NonePrivilege, system); err != nil {
		panic(err)
	}
	if bobID, err = User.Add("bob", "bob123",
		security.Flag(security.GetAllServer), system); err != nil {
		panic(err)
	}
	adminPriv = option.NewUserPrivilege(adminID, security.AllPrivileges())
	alicePriv = option.NewUserPrivilege(aliceID, security.NonePrivilege)
	bobPriv = option.NewUserPrivilege(bobID, security.Flag(security.GetAllServer))

	for _, s := range []*db.Server{
		{ID: 1, Hostname: "zabbix1.example.com", Nickname: "zbx1", Port: 80},
		{ID: 2, Hostname: "zabbix2.example.com", Nickname: "zbx2", Port: 80},
	} {
		if err := Server.Add(s, system); err != nil {
			panic(err)
		}
	}
	for _, a := range []*db.AccessInfo{
		{UserID: aliceID, ServerID: 1, HostgroupID: db.AllHostgroups},
		{UserID: aliceID, ServerID: 2, HostgroupID: "5"},
	} {
		if _, err := Access.Add(a, system); err != nil {
			panic(err)
		}
	}
}

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func queryCtx(priv option.Privilege) *option.DataQueryContext {
	return option.NewDataQueryContext(priv, Access, Server)
}
