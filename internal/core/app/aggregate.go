package app

import (
	"math"

	"github.com/sioXD/GitLab-TimeTool/internal/core/domain"
)

const (
	secondsPerHour = 3600
	percentFactor  = 100
)

// RollupTimes walks the tree bottom-up and assigns every epic the sum of its
// descendants' estimate and spent seconds. Issues keep their own figures.
// Safe to call repeatedly; epic figures are assigned, not accumulated.
func RollupTimes(item *domain.WorkItem) (estimate, spent int64) {
	if item == nil {
		return 0, 0
	}
	if item.Kind == domain.KindIssue {
		return item.EstimateSecs, item.SpentSecs
	}

	var e, s int64
	for _, child := range item.Children {
		ce, cs := RollupTimes(child)
		e += ce
		s += cs
	}
	item.EstimateSecs = e
	item.SpentSecs = s

	return e, s
}

// CategoryFor assigns an issue to the first target category whose label it
// carries, or to the uncategorized bucket.
func CategoryFor(issue *domain.WorkItem, targets []string) string {
	for _, target := range targets {
		if issue.HasLabel(target) {
			return target
		}
	}

	return domain.CategoryUncategorized
}

// Aggregate computes per-category time totals over the tree, restricted to
// timelogs inside the window (nil window means all-time). Estimates carry no
// date and are never filtered. An empty tree or a window matching nothing
// yields all-zero totals. Pure function of tree, window and targets.
func Aggregate(root *domain.WorkItem, window *domain.DateWindow, targets []string) domain.AggregationResult {
	categories := make([]string, 0, len(targets)+1)
	categories = append(categories, targets...)
	categories = append(categories, domain.CategoryUncategorized)

	totals := make(map[string]*domain.CategoryTotal, len(categories))
	for _, category := range categories {
		totals[category] = &domain.CategoryTotal{Category: category}
	}
	userSpent := make(map[string]int64)

	var walk func(item *domain.WorkItem)
	walk = func(item *domain.WorkItem) {
		if item == nil {
			return
		}
		for _, child := range item.Children {
			walk(child)
		}
		if item.Kind != domain.KindIssue {
			return
		}

		total := totals[CategoryFor(item, targets)]
		total.Issues++
		total.EstimateSecs += item.EstimateSecs
		for _, log := range item.Timelogs {
			if !window.Contains(log.SpentAt) {
				continue
			}
			total.SpentSecs += log.Seconds
			if log.User != "" {
				userSpent[log.User] += log.Seconds
			}
		}
	}
	walk(root)

	result := domain.AggregationResult{
		Categories: make([]domain.CategoryTotal, 0, len(categories)),
		UserSpent:  userSpent,
		Window:     window,
	}
	for _, category := range categories {
		result.TotalSpent += totals[category].SpentSecs
		result.TotalEstimate += totals[category].EstimateSecs
	}
	for _, category := range categories {
		total := *totals[category]
		if result.TotalSpent > 0 {
			total.Percentage = float64(total.SpentSecs) / float64(result.TotalSpent) * percentFactor
		}
		result.Categories = append(result.Categories, total)
	}

	return result
}

// Rows flattens the tree into pre-order drill-down rows. Issue rows carry
// window-filtered spent hours, their category and per-user shares; epic rows
// carry the window-filtered sum over their descendants weighted across
// users. Estimate figures assume RollupTimes has run on the tree.
func Rows(root *domain.WorkItem, window *domain.DateWindow, targets []string) []domain.Row {
	rows := make([]domain.Row, 0)

	var walk func(item *domain.WorkItem) (int64, map[string]int64)
	walk = func(item *domain.WorkItem) (int64, map[string]int64) {
		row := domain.Row{
			Kind:          item.Kind,
			Title:         item.Title,
			IID:           item.IID,
			EstimateHours: roundHours(item.EstimateSecs),
		}
		if item.Parent != nil {
			parentIID := item.Parent.IID
			row.ParentIID = &parentIID
		}

		// Reserve the slot so children end up after their parent.
		idx := len(rows)
		rows = append(rows, row)

		userSecs := make(map[string]int64)
		var spent int64

		if item.Kind == domain.KindIssue {
			for _, log := range item.Timelogs {
				if !window.Contains(log.SpentAt) {
					continue
				}
				spent += log.Seconds
				if log.User != "" {
					userSecs[log.User] += log.Seconds
				}
			}
			row.Category = CategoryFor(item, targets)
		} else {
			for _, child := range item.Children {
				childSpent, childUsers := walk(child)
				spent += childSpent
				for user, secs := range childUsers {
					userSecs[user] += secs
				}
			}
		}

		row.SpentHours = roundHours(spent)
		row.UserShares = userShares(userSecs, spent)
		rows[idx] = row

		return spent, userSecs
	}

	if root != nil {
		walk(root)
	}

	return rows
}

// userShares converts absolute per-user seconds into fractions of the total,
// rounded to four decimals. Returns nil when nothing was spent.
func userShares(userSecs map[string]int64, total int64) map[string]float64 {
	if total <= 0 || len(userSecs) == 0 {
		return nil
	}

	shares := make(map[string]float64, len(userSecs))
	for user, secs := range userSecs {
		shares[user] = math.Round(float64(secs)/float64(total)*10000) / 10000
	}

	return shares
}

func roundHours(secs int64) float64 {
	return math.Round(float64(secs)/secondsPerHour*100) / 100
}
