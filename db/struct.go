package db

// User is a dashboard account. Password holds the hex SHA-256 digest,
// never the cleartext. Flags is the capability bitset, interpreted by the
// security package.
type User struct {
	ID       UserID `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	Name     string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Flags    uint64 `gorm:"column:flags;not null" json:"flags"`
}

func (User) TableName() string { return "users" }

// AccessInfo grants a user visibility of one hostgroup (or all of them) on
// one monitoring server (or all of them). The (UserID, ServerID,
// HostgroupID) triple is unique, enforced by dedup on insert.
type AccessInfo struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	UserID      UserID      `gorm:"column:user_id;index;not null" json:"userId"`
	ServerID    ServerID    `gorm:"column:server_id;not null" json:"serverId"`
	HostgroupID HostgroupID `gorm:"column:host_group_id;type:varchar(255);not null" json:"hostgroupId"`
}

func (AccessInfo) TableName() string { return "access_list" }

// UserRole is a reusable named capability bundle. Name and Flags must each
// be unique among roles.
type UserRole struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	Name  string `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	Flags uint64 `gorm:"column:flags;not null" json:"flags"`
}

func (UserRole) TableName() string { return "user_roles" }

// Server is one registered monitoring backend. Rows referencing server ids
// absent from this table belong to defunct servers.
type Server struct {
	ID       ServerID `gorm:"column:id;primaryKey;not null" json:"id"`
	Type     int32    `gorm:"column:type;not null" json:"type"`
	Hostname string   `gorm:"column:hostname;type:varchar(255);not null" json:"hostname"`
	Nickname string   `gorm:"column:nickname;type:varchar(255)" json:"nickname"`
	Port     int32    `gorm:"column:port" json:"port"`
}

func (Server) TableName() string { return "servers" }

// TableVersion tracks the schema version per table family and drives the
// capability width migration on startup.
type TableVersion struct {
	TableName string `gorm:"column:table_name;primaryKey;type:varchar(64);not null"`
	Version   string `gorm:"column:version;type:varchar(32);not null"`
}

// Trigger is an alert condition imported from a monitoring server.
type Trigger struct {
	ID             int64    `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID       ServerID `gorm:"column:server_id;index;not null" json:"serverId"`
	HostID         HostID   `gorm:"column:host_id;type:varchar(255);not null" json:"hostId"`
	Brief          string   `gorm:"column:brief;type:varchar(1024)" json:"brief"`
	Severity       int32    `gorm:"column:severity;not null" json:"severity"`
	Status         int32    `gorm:"column:status;not null" json:"status"`
	LastChangeTime int64    `gorm:"column:last_change_time;not null" json:"lastChangeTime"`
}

func (Trigger) TableName() string { return "triggers" }

// Event is one state change of a trigger.
type Event struct {
	ID       int64    `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID ServerID `gorm:"column:server_id;index;not null" json:"serverId"`
	HostID   HostID   `gorm:"column:host_id;type:varchar(255);not null" json:"hostId"`
	Type     int32    `gorm:"column:type;not null" json:"type"`
	Severity int32    `gorm:"column:severity;not null" json:"severity"`
	Time     int64    `gorm:"column:time;index;not null" json:"time"`
	Brief    string   `gorm:"column:brief;type:varchar(1024)" json:"brief"`
}

func (Event) TableName() string { return "events" }

// Item is one monitored metric.
type Item struct {
	ID        int64    `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID  ServerID `gorm:"column:server_id;index;not null" json:"serverId"`
	HostID    HostID   `gorm:"column:host_id;type:varchar(255);not null" json:"hostId"`
	Brief     string   `gorm:"column:brief;type:varchar(1024)" json:"brief"`
	LastValue string   `gorm:"column:last_value;type:varchar(255)" json:"lastValue"`
}

func (Item) TableName() string { return "items" }

// Host is the unified host inventory. ID is the server-independent global
// host id, HostID the identifier inside the owning server.
type Host struct {
	ID       int64    `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID ServerID `gorm:"column:server_id;index;not null" json:"serverId"`
	HostID   HostID   `gorm:"column:host_id;type:varchar(255);not null" json:"hostId"`
	Name     string   `gorm:"column:name;type:varchar(255)" json:"name"`
}

func (Host) TableName() string { return "hosts" }

// Hostgroup is one server-defined grouping of hosts.
type Hostgroup struct {
	ID       int64       `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID ServerID    `gorm:"column:server_id;index;not null" json:"serverId"`
	GroupID  HostgroupID `gorm:"column:group_id;type:varchar(255);not null" json:"groupId"`
	Name     string      `gorm:"column:name;type:varchar(255)" json:"name"`
}

func (Hostgroup) TableName() string { return "hostgroups" }

// HostgroupMember links a host to a hostgroup. GlobalHostID mirrors
// Host.ID and offers an alternative single-column join key.
type HostgroupMember struct {
	ID           int64       `gorm:"column:id;primaryKey;autoIncrement;not null" json:"id"`
	ServerID     ServerID    `gorm:"column:server_id;index;not null" json:"serverId"`
	HostID       HostID      `gorm:"column:host_id;type:varchar(255);not null" json:"hostId"`
	GroupID      HostgroupID `gorm:"column:host_group_id;type:varchar(255);not null" json:"groupId"`
	GlobalHostID int64       `gorm:"column:global_host_id;index;not null" json:"globalHostId"`
}

func (HostgroupMember) TableName() string { return "hostgroup_member" }
