package model

// ProcessRecord is one row of a process snapshot.
// PIDs are not unique across time; a record says nothing about which
// generation of a reused pid it describes.
type ProcessRecord struct {
	PID  uint32 `json:"pid"`
	PPID uint32 `json:"ppid"`
	Name string `json:"name"`
}

// Snapshot is a best-effort, point-in-time view of the process table.
// It is captured once and shared read-only by every builder call of an operation.
type Snapshot []ProcessRecord

// ProcessInfo holds what is known about a process beyond its pid.
// Path and Arguments may be empty, or hold a placeholder when the process
// could not be opened (AccessDenied is then set).
type ProcessInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path,omitempty"`
	Arguments    string `json:"arguments,omitempty"`
	AccessDenied bool   `json:"access_denied,omitempty"`
}

// PidNode is a node of a process tree. A node owns its children exclusively.
type PidNode struct {
	PID      uint32      `json:"pid"`
	Info     ProcessInfo `json:"info"`
	Children []*PidNode  `json:"children,omitempty"`

	// Error is the extraction failure for this node, if any.
	Error string `json:"error,omitempty"`

	populated bool
}

// NewPidNode creates a leaf node for a snapshot record.
func NewPidNode(rec ProcessRecord) *PidNode {
	return &PidNode{
		PID:  rec.PID,
		Info: ProcessInfo{Name: rec.Name},
	}
}

// MarkPopulated records that extraction was attempted for the node.
// It reports false if an attempt had already been made.
func (n *PidNode) MarkPopulated() bool {
	if n.populated {
		return false
	}
	n.populated = true
	return true
}

// Populated reports whether extraction was attempted for the node.
func (n *PidNode) Populated() bool {
	return n.populated
}

// Walk visits n and its descendants in depth-first pre-order.
// Returning false from fn skips the node's children.
func (n *PidNode) Walk(fn func(node *PidNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *PidNode) walk(fn func(*PidNode, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// PIDs returns the pids of n and its descendants in pre-order.
func (n *PidNode) PIDs() []uint32 {
	var pids []uint32
	n.Walk(func(node *PidNode, _ int) bool {
		pids = append(pids, node.PID)
		return true
	})
	return pids
}

// Count returns the number of nodes in the tree rooted at n.
func (n *PidNode) Count() int {
	count := 0
	n.Walk(func(*PidNode, int) bool {
		count++
		return true
	})
	return count
}

// Spine follows the first child from n down to a leaf and returns the nodes
// on the way. It is the natural reading of an ancestry chain.
func (n *PidNode) Spine() []*PidNode {
	var chain []*PidNode
	for cur := n; cur != nil; {
		chain = append(chain, cur)
		if len(cur.Children) == 0 {
			break
		}
		cur = cur.Children[0]
	}
	return chain
}
