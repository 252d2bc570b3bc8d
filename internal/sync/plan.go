package sync

import (
	"sort"

	"github.com/steveyegge/zotion/internal/zotero"
)

// Action is what a run does with one item.
type Action int

const (
	// ActionSkip leaves an up-to-date page alone.
	ActionSkip Action = iota

	// ActionCreate adds a page for an item not yet in the database.
	ActionCreate

	// ActionUpdate rewrites the properties of a stale page.
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return "skip"
	}
}

// Decision pairs an item with its action. PageID is set for updates.
type Decision struct {
	Item   zotero.Item
	Action Action
	PageID string
}

// Plan decides the action for every item, in item order. The decision
// depends only on whether the key is indexed and whether the versions differ;
// an older Zotero version triggers an update just like a newer one.
func Plan(items []zotero.Item, index Index) []Decision {
	decisions := make([]Decision, 0, len(items))
	for _, item := range items {
		entry, ok := index[item.Key]
		switch {
		case !ok:
			decisions = append(decisions, Decision{Item: item, Action: ActionCreate})
		case entry.Version != item.Version:
			decisions = append(decisions, Decision{Item: item, Action: ActionUpdate, PageID: entry.PageID})
		default:
			decisions = append(decisions, Decision{Item: item, Action: ActionSkip, PageID: entry.PageID})
		}
	}
	return decisions
}

// Orphans returns the indexed keys that no item has, sorted.
func Orphans(items []zotero.Item, index Index) []string {
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[item.Key] = true
	}

	var orphans []string
	for key := range index {
		if !present[key] {
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)
	return orphans
}
