package entity

import "time"

// NodeState records the schema and event hash versions the node last ran
// with. A mismatch on startup means the operator must migrate or reset
// before the journal can be trusted.
type NodeState struct {
	DBVersion        int32
	EventHashVersion int32
	CreatedAt        time.Time
}
