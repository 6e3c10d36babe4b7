package option

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/security"
)

type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

const NoLimit = 0

// DataQueryOption is the state shared by every query option: the caller's
// context, sort and pagination preferences. Each concrete option adds its
// own Condition method.
//
// Every Condition implementation must fail closed: an invalid caller
// identity yields AlwaysFalse, never an unrestricted predicate.
type DataQueryOption struct {
	ctx *DataQueryContext

	sortColumn    string
	sortDirection SortDirection
	offset        int
	maximumNumber int
}

func NewDataQueryOption(ctx *DataQueryContext) DataQueryOption {
	return DataQueryOption{ctx: ctx}
}

func (o *DataQueryOption) Context() *DataQueryContext {
	return o.ctx
}

func (o *DataQueryOption) UserID() db.UserID {
	return o.ctx.Privilege().UserID()
}

func (o *DataQueryOption) Has(bit security.FlagBit) bool {
	return o.ctx.Privilege().Has(bit)
}

// validUser reports whether the caller identity may produce any rows at
// all. The system pseudo user always passes.
func (o *DataQueryOption) validUser() bool {
	id := o.UserID()
	return id == db.SystemUserID || id > db.SystemUserID
}

func (o *DataQueryOption) SetSort(column string, direction SortDirection) {
	o.sortColumn = column
	o.sortDirection = direction
}

func (o *DataQueryOption) SetOffset(offset int) {
	o.offset = offset
}

func (o *DataQueryOption) Offset() int {
	return o.offset
}

// SetMaximumNumber caps the row count, NoLimit means unlimited.
func (o *DataQueryOption) SetMaximumNumber(n int) {
	o.maximumNumber = n
}

func (o *DataQueryOption) MaximumNumber() int {
	return o.maximumNumber
}

// OrderBy renders the sort preference as ORDER BY body text, empty when
// unsorted.
func (o *DataQueryOption) OrderBy() string {
	switch o.sortDirection {
	case SortAscending:
		return o.sortColumn + " ASC"
	case SortDescending:
		return o.sortColumn + " DESC"
	}
	return ""
}

// ToDBCondition renders where together with the sort and pagination state
// into the executable form consumed by the storage layer.
func (o *DataQueryOption) ToDBCondition(where Cond) *db.Condition {
	cond := &db.Condition{}
	if sql := where.SQL(); sql != "" {
		cond.Query = sql
	}
	switch o.sortDirection {
	case SortAscending:
		cond.Order = []any{o.sortColumn + " ASC"}
	case SortDescending:
		cond.Order = []any{o.sortColumn + " DESC"}
	}
	if o.maximumNumber != NoLimit {
		cond.Limit = o.maximumNumber
	}
	if o.offset != 0 {
		cond.Offset = o.offset
	}
	return cond
}
