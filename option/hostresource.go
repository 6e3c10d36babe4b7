package option

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/security"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Synapse describes, per resource type, which table and columns carry the
// server/host/hostgroup identity the generic condition builder works on.
// It is fixed at option construction and never mutated.
type Synapse struct {
	TableName          string
	ServerIDColumn     string
	HostIDColumn       string // empty when the resource has no host binding
	GlobalHostIDColumn string // set when the table carries the global host id

	// Hostgroup membership side. An empty table name means hostgroups do
	// not apply to the resource. When the table equals TableName the
	// resource carries its own hostgroup column and no join is ever
	// needed.
	HostgroupMemberTable              string
	HostgroupMemberServerIDColumn     string
	HostgroupMemberHostIDColumn       string
	HostgroupMemberGroupIDColumn      string
	HostgroupMemberGlobalHostIDColumn string
}

func (s *Synapse) supportsHostgroup() bool {
	return s.HostgroupMemberTable != ""
}

func (s *Synapse) selfHostgroupTable() bool {
	return s.HostgroupMemberTable == s.TableName
}

func (s *Synapse) serverIDColumnName() string {
	return s.TableName + "." + s.ServerIDColumn
}

func (s *Synapse) hostIDColumnName() string {
	return s.TableName + "." + s.HostIDColumn
}

func (s *Synapse) hostgroupIDColumnName() string {
	return s.HostgroupMemberTable + "." + s.HostgroupMemberGroupIDColumn
}

// HostResourceQueryOption builds the FROM/JOIN/WHERE text for any resource
// attached to a (server, host, hostgroup) triple. The produced condition
// always embeds the caller's authorization on top of the explicit filters.
type HostResourceQueryOption struct {
	DataQueryOption
	synapse Synapse

	targetServerID    db.ServerID
	targetHostID      db.HostID
	targetHostgroupID db.HostgroupID

	selectedServerIDs    db.ServerIDSet
	excludedServerIDs    db.ServerIDSet
	selectedHostgroupIDs map[db.ServerID]db.HostgroupIDSet
	excludedHostgroupIDs map[db.ServerID]db.HostgroupIDSet
	selectedHostIDs      map[db.ServerID]db.HostIDSet
	excludedHostIDs      map[db.ServerID]db.HostIDSet

	excludeDefunctServers bool
}

func NewHostResourceQueryOption(synapse Synapse,
	ctx *DataQueryContext) HostResourceQueryOption {
	return HostResourceQueryOption{
		DataQueryOption:       NewDataQueryOption(ctx),
		synapse:               synapse,
		targetServerID:        db.AllServers,
		targetHostID:          db.AllHosts,
		targetHostgroupID:     db.AllHostgroups,
		excludeDefunctServers: true,
	}
}

func (o *HostResourceQueryOption) Synapse() *Synapse {
	return &o.synapse
}

func (o *HostResourceQueryOption) SetTargetServerID(id db.ServerID) {
	o.targetServerID = id
}

func (o *HostResourceQueryOption) TargetServerID() db.ServerID {
	return o.targetServerID
}

func (o *HostResourceQueryOption) SetTargetHostID(id db.HostID) {
	o.targetHostID = id
}

func (o *HostResourceQueryOption) TargetHostID() db.HostID {
	return o.targetHostID
}

func (o *HostResourceQueryOption) SetTargetHostgroupID(id db.HostgroupID) {
	o.targetHostgroupID = id
}

func (o *HostResourceQueryOption) TargetHostgroupID() db.HostgroupID {
	return o.targetHostgroupID
}

func (o *HostResourceQueryOption) SetSelectedServerIDs(ids db.ServerIDSet) {
	o.selectedServerIDs = ids
}

func (o *HostResourceQueryOption) SelectedServerIDs() db.ServerIDSet {
	return o.selectedServerIDs
}

func (o *HostResourceQueryOption) SetExcludedServerIDs(ids db.ServerIDSet) {
	o.excludedServerIDs = ids
}

func (o *HostResourceQueryOption) ExcludedServerIDs() db.ServerIDSet {
	return o.excludedServerIDs
}

func (o *HostResourceQueryOption) SetSelectedHostgroupIDs(ids map[db.ServerID]db.HostgroupIDSet) {
	o.selectedHostgroupIDs = ids
}

func (o *HostResourceQueryOption) SelectedHostgroupIDs() map[db.ServerID]db.HostgroupIDSet {
	return o.selectedHostgroupIDs
}

func (o *HostResourceQueryOption) SetExcludedHostgroupIDs(ids map[db.ServerID]db.HostgroupIDSet) {
	o.excludedHostgroupIDs = ids
}

func (o *HostResourceQueryOption) ExcludedHostgroupIDs() map[db.ServerID]db.HostgroupIDSet {
	return o.excludedHostgroupIDs
}

func (o *HostResourceQueryOption) SetSelectedHostIDs(ids map[db.ServerID]db.HostIDSet) {
	o.selectedHostIDs = ids
}

func (o *HostResourceQueryOption) SelectedHostIDs() map[db.ServerID]db.HostIDSet {
	return o.selectedHostIDs
}

func (o *HostResourceQueryOption) SetExcludedHostIDs(ids map[db.ServerID]db.HostIDSet) {
	o.excludedHostIDs = ids
}

func (o *HostResourceQueryOption) ExcludedHostIDs() map[db.ServerID]db.HostIDSet {
	return o.excludedHostIDs
}

func (o *HostResourceQueryOption) SetExcludeDefunctServers(exclude bool) {
	o.excludeDefunctServers = exclude
}

func (o *HostResourceQueryOption) ExcludeDefunctServers() bool {
	return o.excludeDefunctServers
}

// Condition builds the WHERE-clause body. Stages, each ANDed in and
// short-circuiting on the fail-closed result:
//  1. exclude rows of defunct servers,
//  2. restrict to servers/hostgroups the caller may see,
//  3. single-target filters,
//  4. selection/exclusion filter sets, minus unauthorized entries.
func (o *HostResourceQueryOption) Condition() (Cond, error) {
	if !o.validUser() {
		return AlwaysFalse(), nil
	}

	cond := Unrestricted()
	if o.excludeDefunctServers {
		valid, err := o.ctx.ValidServerIDSet()
		if err != nil {
			return Cond{}, err
		}
		cond = cond.And(o.makeConditionServer(valid))
		if cond.IsAlwaysFalse() {
			return cond, nil
		}
	}

	if !o.Has(security.GetAllServer) {
		allowed, err := o.ctx.AllowedServerHostGrps()
		if err != nil {
			return Cond{}, err
		}
		cond = cond.And(o.makeConditionAllowedHosts(allowed))
		if cond.IsAlwaysFalse() {
			return cond, nil
		}
	}

	cond = cond.And(o.makeConditionTargets())

	selections, err := o.makeConditionSelections()
	if err != nil {
		return Cond{}, err
	}
	return cond.And(selections), nil
}

// ConditionString is Condition rendered to SQL text, for callers handing
// the predicate straight to a SQL runner.
func (o *HostResourceQueryOption) ConditionString() (string, error) {
	cond, err := o.Condition()
	if err != nil {
		return "", err
	}
	return cond.SQL(), nil
}

// FromClause names the resource table. The hostgroup membership join, when
// required, comes separately from JoinClause.
func (o *HostResourceQueryOption) FromClause() string {
	return o.synapse.TableName
}

// JoinClause returns the INNER JOIN text against the hostgroup membership
// table, or the empty string when the single-table form suffices.
func (o *HostResourceQueryOption) JoinClause() (string, error) {
	needed, err := o.needsHostgroupJoin()
	if err != nil || !needed {
		return "", err
	}
	s := &o.synapse
	if s.GlobalHostIDColumn != "" && s.HostgroupMemberGlobalHostIDColumn != "" {
		return "INNER JOIN " + s.HostgroupMemberTable + " ON " +
			s.TableName + "." + s.GlobalHostIDColumn + "=" +
			s.HostgroupMemberTable + "." + s.HostgroupMemberGlobalHostIDColumn, nil
	}
	return "INNER JOIN " + s.HostgroupMemberTable + " ON " +
		s.serverIDColumnName() + "=" +
		s.HostgroupMemberTable + "." + s.HostgroupMemberServerIDColumn +
		" AND " +
		s.hostIDColumnName() + "=" +
		s.HostgroupMemberTable + "." + s.HostgroupMemberHostIDColumn, nil
}

// needsHostgroupJoin is true when a per-row hostgroup id must be checked:
// an explicit hostgroup filter is active, or the caller's authorization
// restricts hostgroups on some server so even an unfiltered query has to
// consult the membership table.
func (o *HostResourceQueryOption) needsHostgroupJoin() (bool, error) {
	if !o.synapse.supportsHostgroup() || o.synapse.selfHostgroupTable() {
		return false, nil
	}
	if o.targetHostgroupID != db.AllHostgroups {
		return true, nil
	}
	if len(o.selectedHostgroupIDs) != 0 || len(o.excludedHostgroupIDs) != 0 {
		return true, nil
	}
	if !o.validUser() || o.Has(security.GetAllServer) {
		return false, nil
	}
	allowed, err := o.ctx.AllowedServerHostGrps()
	if err != nil {
		return false, err
	}
	for sid, set := range allowed {
		if sid == db.AllServers {
			continue
		}
		if !set.Has(db.AllHostgroups) {
			return true, nil
		}
	}
	return false, nil
}

func (o *HostResourceQueryOption) makeConditionServer(valid db.ServerIDSet) Cond {
	if len(valid) == 0 {
		return AlwaysFalse()
	}
	ids := maps.Keys(valid)
	slices.Sort(ids)
	col := o.synapse.serverIDColumnName()
	if len(ids) == 1 {
		return Exprf("%v=%v", col, intLiteral(ids[0]))
	}
	return Exprf("%v IN (%v)", col, intList(ids))
}

// makeConditionAllowedHosts compiles the caller's authorization map into a
// disjunction over its entries. An AllServers entry makes the whole map
// unrestricted. No matching entry, or a target the map does not cover,
// fails closed.
func (o *HostResourceQueryOption) makeConditionAllowedHosts(m db.ServerHostGrpSetMap) Cond {
	if _, ok := m[db.AllServers]; ok {
		return Unrestricted()
	}

	serverCol := o.synapse.serverIDColumnName()
	ids := maps.Keys(m)
	slices.Sort(ids)
	cond := AlwaysFalse()
	for _, sid := range ids {
		if o.targetServerID != db.AllServers && sid != o.targetServerID {
			continue
		}
		set := m[sid]
		entry := Exprf("%v=%v", serverCol, intLiteral(sid))
		if !set.Has(db.AllHostgroups) {
			if len(set) == 0 {
				continue
			}
			if o.targetHostgroupID != db.AllHostgroups &&
				!set.Has(o.targetHostgroupID) {
				continue
			}
			if o.synapse.supportsHostgroup() {
				entry = entry.And(o.makeConditionHostgroupIn(set))
			}
		}
		cond = cond.Or(entry)
	}
	return cond
}

func (o *HostResourceQueryOption) makeConditionHostgroupIn(set db.HostgroupIDSet) Cond {
	col := o.synapse.hostgroupIDColumnName()
	groups := maps.Keys(set)
	slices.Sort(groups)
	if len(groups) == 1 {
		return Exprf("%v=%v", col, stringLiteral(string(groups[0])))
	}
	return Exprf("%v IN (%v)", col, stringList(groups))
}

func (o *HostResourceQueryOption) makeConditionTargets() Cond {
	cond := Unrestricted()
	if o.targetServerID != db.AllServers {
		cond = cond.And(Exprf("%v=%v",
			o.synapse.serverIDColumnName(), intLiteral(o.targetServerID)))
	}
	if o.targetHostID != db.AllHosts && o.synapse.HostIDColumn != "" {
		cond = cond.And(Exprf("%v=%v",
			o.synapse.hostIDColumnName(), stringLiteral(string(o.targetHostID))))
	}
	if o.targetHostgroupID != db.AllHostgroups && o.synapse.supportsHostgroup() {
		cond = cond.And(Exprf("%v=%v",
			o.synapse.hostgroupIDColumnName(),
			stringLiteral(string(o.targetHostgroupID))))
	}
	return cond
}

// authorization predicates for filtering the selection sets. With the
// GetAllServer capability everything is visible.
func (o *HostResourceQueryOption) serverAuthorized(m db.ServerHostGrpSetMap,
	id db.ServerID) bool {
	if m == nil {
		return true
	}
	return m.AllowsServer(id)
}

func (o *HostResourceQueryOption) hostgroupAuthorized(m db.ServerHostGrpSetMap,
	id db.ServerID, group db.HostgroupID) bool {
	if m == nil {
		return true
	}
	return m.AllowsHostgroup(id, group)
}

func (o *HostResourceQueryOption) makeConditionSelections() (Cond, error) {
	var authz db.ServerHostGrpSetMap
	if !o.Has(security.GetAllServer) {
		m, err := o.ctx.AllowedServerHostGrps()
		if err != nil {
			return Cond{}, err
		}
		authz = m
	}

	cond := Unrestricted()
	cond = cond.And(o.makeConditionServerSet(authz, o.selectedServerIDs, false))
	cond = cond.And(o.makeConditionServerSet(authz, o.excludedServerIDs, true))
	cond = cond.And(o.makeConditionHostgroupSet(authz, o.selectedHostgroupIDs, false))
	cond = cond.And(o.makeConditionHostgroupSet(authz, o.excludedHostgroupIDs, true))
	cond = cond.And(o.makeConditionHostSet(authz, o.selectedHostIDs, false))
	cond = cond.And(o.makeConditionHostSet(authz, o.excludedHostIDs, true))
	return cond, nil
}

func (o *HostResourceQueryOption) makeConditionServerSet(authz db.ServerHostGrpSetMap,
	set db.ServerIDSet, negate bool) Cond {
	if len(set) == 0 {
		return Unrestricted()
	}
	var ids []db.ServerID
	for id := range set {
		if o.serverAuthorized(authz, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		if negate {
			// excluding invisible servers is a no-op
			return Unrestricted()
		}
		return AlwaysFalse()
	}
	slices.Sort(ids)
	col := o.synapse.serverIDColumnName()
	op, list := "IN", intList(ids)
	if negate {
		op = "NOT IN"
	}
	if len(ids) == 1 {
		if negate {
			return Exprf("%v<>%v", col, intLiteral(ids[0]))
		}
		return Exprf("%v=%v", col, intLiteral(ids[0]))
	}
	return Exprf("%v %v (%v)", col, op, list)
}

func (o *HostResourceQueryOption) makeConditionHostgroupSet(authz db.ServerHostGrpSetMap,
	sets map[db.ServerID]db.HostgroupIDSet, negate bool) Cond {
	if len(sets) == 0 {
		return Unrestricted()
	}
	if !o.synapse.supportsHostgroup() {
		return Unrestricted()
	}
	serverCol := o.synapse.serverIDColumnName()
	groupCol := o.synapse.hostgroupIDColumnName()

	servers := maps.Keys(sets)
	slices.Sort(servers)
	disjunction := AlwaysFalse()
	for _, sid := range servers {
		var groups []db.HostgroupID
		for g := range sets[sid] {
			if o.hostgroupAuthorized(authz, sid, g) {
				groups = append(groups, g)
			}
		}
		if len(groups) == 0 {
			continue
		}
		slices.Sort(groups)
		entry := Exprf("%v=%v", serverCol, intLiteral(sid))
		if len(groups) == 1 {
			entry = entry.And(Exprf("%v=%v", groupCol,
				stringLiteral(string(groups[0]))))
		} else {
			entry = entry.And(Exprf("%v IN (%v)", groupCol,
				stringList(groups)))
		}
		disjunction = disjunction.Or(entry)
	}
	if disjunction.IsAlwaysFalse() && negate {
		return Unrestricted()
	}
	if negate {
		return Exprf("NOT (%v)", disjunction.SQL())
	}
	return disjunction
}

func (o *HostResourceQueryOption) makeConditionHostSet(authz db.ServerHostGrpSetMap,
	sets map[db.ServerID]db.HostIDSet, negate bool) Cond {
	if len(sets) == 0 || o.synapse.HostIDColumn == "" {
		return Unrestricted()
	}
	serverCol := o.synapse.serverIDColumnName()
	hostCol := o.synapse.hostIDColumnName()

	servers := maps.Keys(sets)
	slices.Sort(servers)
	disjunction := AlwaysFalse()
	for _, sid := range servers {
		if !o.serverAuthorized(authz, sid) {
			continue
		}
		hosts := maps.Keys(sets[sid])
		if len(hosts) == 0 {
			continue
		}
		slices.Sort(hosts)
		entry := Exprf("%v=%v", serverCol, intLiteral(sid))
		if len(hosts) == 1 {
			entry = entry.And(Exprf("%v=%v", hostCol,
				stringLiteral(string(hosts[0]))))
		} else {
			entry = entry.And(Exprf("%v IN (%v)", hostCol,
				stringList(hosts)))
		}
		disjunction = disjunction.Or(entry)
	}
	if disjunction.IsAlwaysFalse() && negate {
		return Unrestricted()
	}
	if negate {
		return Exprf("NOT (%v)", disjunction.SQL())
	}
	return disjunction
}
