package domain

import "time"

// Kind discriminates the two GitLab work item variants.
type Kind string

const (
	KindEpic  Kind = "epic"
	KindIssue Kind = "issue"
)

// CategoryUncategorized is the bucket for issues carrying none of the
// configured target labels.
const CategoryUncategorized = "uncategorized"

// Timelog is a single reported unit of time spent on an issue.
type Timelog struct {
	SpentAt time.Time `json:"spent_at"`
	Seconds int64     `json:"seconds"`
	User    string    `json:"user"`
}

// WorkItem is a node of the epic/issue tree. Issues carry timelogs and an
// estimate; epics carry children and hold rolled-up figures after
// RollupTimes has run.
type WorkItem struct {
	Kind         Kind        `json:"kind"`
	ID           string      `json:"id"`
	IID          int         `json:"iid"`
	Title        string      `json:"title"`
	CreatedAt    time.Time   `json:"created_at"`
	Labels       []string    `json:"labels,omitempty"`
	Timelogs     []Timelog   `json:"timelogs,omitempty"`
	EstimateSecs int64       `json:"estimate_seconds"`
	SpentSecs    int64       `json:"spent_seconds"`
	Parent       *WorkItem   `json:"-"`
	Children     []*WorkItem `json:"children,omitempty"`
}

// AddChild attaches item below w and sets the parent back-reference.
// An item with the same kind and IID is attached at most once.
func (w *WorkItem) AddChild(item *WorkItem) bool {
	for _, child := range w.Children {
		if child.Kind == item.Kind && child.IID == item.IID {
			return false
		}
	}

	item.Parent = w
	w.Children = append(w.Children, item)

	return true
}

// HasLabel reports whether the item carries the given label.
func (w *WorkItem) HasLabel(label string) bool {
	for _, l := range w.Labels {
		if l == label {
			return true
		}
	}

	return false
}

// DateWindow is an inclusive [Start, End] filter on timelog dates.
// A zero Start means no lower bound, a zero End no upper bound. A nil
// *DateWindow means all-time.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window. A nil window
// contains everything.
func (w *DateWindow) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}

	return true
}

// CategoryTotal is the aggregate for one target category within a window.
type CategoryTotal struct {
	Category     string  `json:"category"`
	SpentSecs    int64   `json:"spent_seconds"`
	EstimateSecs int64   `json:"estimate_seconds"`
	Issues       int     `json:"issues"`
	Percentage   float64 `json:"percentage"`
}

// AggregationResult holds per-category totals over a subtree, in target
// order with the uncategorized bucket last. Percentages are computed over
// the selected window's own total; for date-filtered windows they are not
// comparable against all-time expectations (see README).
type AggregationResult struct {
	Categories    []CategoryTotal  `json:"categories"`
	TotalSpent    int64            `json:"total_spent_seconds"`
	TotalEstimate int64            `json:"total_estimate_seconds"`
	UserSpent     map[string]int64 `json:"user_spent_seconds"`
	Window        *DateWindow      `json:"window,omitempty"`
}

// Row is one line of the drill-down table, mirroring the CSV export.
// Hours are rounded to two decimals, user shares to four.
type Row struct {
	Kind          Kind               `json:"kind"`
	Title         string             `json:"title"`
	IID           int                `json:"iid"`
	ParentIID     *int               `json:"parent_iid"`
	SpentHours    float64            `json:"spent_hours"`
	EstimateHours float64            `json:"estimate_hours"`
	Category      string             `json:"category,omitempty"`
	UserShares    map[string]float64 `json:"user_shares,omitempty"`
}

// Dashboard is the full payload behind /api/data.
type Dashboard struct {
	Rows           []Row             `json:"rows"`
	Users          []string          `json:"users"`
	Categories     []string          `json:"categories"`
	GroupPath      string            `json:"group_path"`
	RepositoryName string            `json:"repository_name"`
	Aggregation    AggregationResult `json:"aggregation"`
}

// Group is the configured GitLab group, resolved once per process.
type Group struct {
	ID       int
	Name     string
	FullPath string
	WebURL   string
	Labels   []string
}
