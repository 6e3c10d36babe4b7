package option

// Synapses of the concrete resource types. Column names must match the
// gorm models in the db package.

var triggersSynapse = Synapse{
	TableName:      "triggers",
	ServerIDColumn: "server_id",
	HostIDColumn:   "host_id",

	HostgroupMemberTable:              "hostgroup_member",
	HostgroupMemberServerIDColumn:     "server_id",
	HostgroupMemberHostIDColumn:       "host_id",
	HostgroupMemberGroupIDColumn:      "host_group_id",
	HostgroupMemberGlobalHostIDColumn: "global_host_id",
}

var eventsSynapse = Synapse{
	TableName:      "events",
	ServerIDColumn: "server_id",
	HostIDColumn:   "host_id",

	HostgroupMemberTable:              "hostgroup_member",
	HostgroupMemberServerIDColumn:     "server_id",
	HostgroupMemberHostIDColumn:       "host_id",
	HostgroupMemberGroupIDColumn:      "host_group_id",
	HostgroupMemberGlobalHostIDColumn: "global_host_id",
}

var itemsSynapse = Synapse{
	TableName:      "items",
	ServerIDColumn: "server_id",
	HostIDColumn:   "host_id",

	HostgroupMemberTable:              "hostgroup_member",
	HostgroupMemberServerIDColumn:     "server_id",
	HostgroupMemberHostIDColumn:       "host_id",
	HostgroupMemberGroupIDColumn:      "host_group_id",
	HostgroupMemberGlobalHostIDColumn: "global_host_id",
}

// hosts carry the global host id themselves, so the membership join uses
// the single-column key.
var hostsSynapse = Synapse{
	TableName:          "hosts",
	ServerIDColumn:     "server_id",
	HostIDColumn:       "host_id",
	GlobalHostIDColumn: "id",

	HostgroupMemberTable:              "hostgroup_member",
	HostgroupMemberServerIDColumn:     "server_id",
	HostgroupMemberHostIDColumn:       "host_id",
	HostgroupMemberGroupIDColumn:      "host_group_id",
	HostgroupMemberGlobalHostIDColumn: "global_host_id",
}

// hostgroups carry their own group id column, no join ever needed.
var hostgroupsSynapse = Synapse{
	TableName:      "hostgroups",
	ServerIDColumn: "server_id",

	HostgroupMemberTable:          "hostgroups",
	HostgroupMemberServerIDColumn: "server_id",
	HostgroupMemberGroupIDColumn:  "group_id",
}

type TriggersQueryOption struct {
	HostResourceQueryOption
}

func NewTriggersQueryOption(ctx *DataQueryContext) *TriggersQueryOption {
	return &TriggersQueryOption{
		HostResourceQueryOption: NewHostResourceQueryOption(triggersSynapse, ctx),
	}
}

type EventsQueryOption struct {
	HostResourceQueryOption
}

func NewEventsQueryOption(ctx *DataQueryContext) *EventsQueryOption {
	return &EventsQueryOption{
		HostResourceQueryOption: NewHostResourceQueryOption(eventsSynapse, ctx),
	}
}

type ItemsQueryOption struct {
	HostResourceQueryOption
}

func NewItemsQueryOption(ctx *DataQueryContext) *ItemsQueryOption {
	return &ItemsQueryOption{
		HostResourceQueryOption: NewHostResourceQueryOption(itemsSynapse, ctx),
	}
}

type HostsQueryOption struct {
	HostResourceQueryOption
}

func NewHostsQueryOption(ctx *DataQueryContext) *HostsQueryOption {
	return &HostsQueryOption{
		HostResourceQueryOption: NewHostResourceQueryOption(hostsSynapse, ctx),
	}
}

type HostgroupsQueryOption struct {
	HostResourceQueryOption
}

func NewHostgroupsQueryOption(ctx *DataQueryContext) *HostgroupsQueryOption {
	return &HostgroupsQueryOption{
		HostResourceQueryOption: NewHostResourceQueryOption(hostgroupsSynapse, ctx),
	}
}
