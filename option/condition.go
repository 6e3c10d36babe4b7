package option

import "fmt"

// AlwaysFalseCondition is the rendered fail-closed predicate. The text is
// itself valid SQL matching no rows, so a caller that forgets to check
// IsAlwaysFalseCondition still gets an empty result instead of a leak.
const AlwaysFalseCondition = "0"

type condKind int

const (
	condUnrestricted condKind = iota
	condRestricted
	condAlwaysFalse
)

// Cond is a boolean SQL predicate in one of three states: unrestricted
// (renders to the empty string), restricted to an expression, or always
// false. Composing through And/Or keeps the states honest so the sentinel
// can never be accidentally embedded in a larger expression.
type Cond struct {
	kind condKind
	expr string
}

// Unrestricted matches every row.
func Unrestricted() Cond {
	return Cond{kind: condUnrestricted}
}

// AlwaysFalse matches no row.
func AlwaysFalse() Cond {
	return Cond{kind: condAlwaysFalse}
}

// Expr wraps a SQL boolean expression. An empty expression is
// unrestricted.
func Expr(expr string) Cond {
	if expr == "" {
		return Unrestricted()
	}
	return Cond{kind: condRestricted, expr: expr}
}

func Exprf(format string, args ...any) Cond {
	return Expr(fmt.Sprintf(format, args...))
}

func (c Cond) And(in Cond) Cond {
	if c.kind == condAlwaysFalse || in.kind == condAlwaysFalse {
		return AlwaysFalse()
	}
	if c.kind == condUnrestricted {
		return in
	}
	if in.kind == condUnrestricted {
		return c
	}
	return Cond{
		kind: condRestricted,
		expr: fmt.Sprintf("(%v) AND (%v)", c.expr, in.expr),
	}
}

func (c Cond) Or(in Cond) Cond {
	if c.kind == condUnrestricted || in.kind == condUnrestricted {
		return Unrestricted()
	}
	if c.kind == condAlwaysFalse {
		return in
	}
	if in.kind == condAlwaysFalse {
		return c
	}
	return Cond{
		kind: condRestricted,
		expr: fmt.Sprintf("(%v) OR (%v)", c.expr, in.expr),
	}
}

func (c Cond) IsUnrestricted() bool {
	return c.kind == condUnrestricted
}

func (c Cond) IsAlwaysFalse() bool {
	return c.kind == condAlwaysFalse
}

// SQL renders the predicate as WHERE-clause body text. Unrestricted is the
// empty string, always-false the sentinel literal.
func (c Cond) SQL() string {
	switch c.kind {
	case condUnrestricted:
		return ""
	case condAlwaysFalse:
		return AlwaysFalseCondition
	}
	return c.expr
}

// IsAlwaysFalseCondition reports whether a rendered condition is the
// fail-closed sentinel.
func IsAlwaysFalseCondition(cond string) bool {
	return cond == AlwaysFalseCondition
}
