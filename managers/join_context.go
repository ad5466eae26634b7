package managers

import "github.com/bawdo/sqltree/nodes"

// JoinContext is returned by SelectManager.Join() and enforces that
// a join condition is provided via On() before continuing to build
// the query. This prevents incomplete JOINs in the tree.
type JoinContext struct {
	manager *SelectManager
	join    *nodes.Join
}

// On sets the join condition and returns the SelectManager for
// continued method chaining. Several conditions are combined with AND.
func (jc *JoinContext) On(conditions ...nodes.Condition) *SelectManager {
	jc.join.On = nodes.AllOf(conditions...)
	return jc.manager
}
