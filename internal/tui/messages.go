package tui

import (
	"time"

	"github.com/pranshuparmar/pidtree/internal/tree"
	"github.com/pranshuparmar/pidtree/pkg/model"
)

// tickMsg signals a refresh tick
type tickMsg time.Time

// treeMsg carries a freshly built forest
type treeMsg struct {
	roots []*model.PidNode
	stats tree.Stats
	err   error
	at    time.Time
}
