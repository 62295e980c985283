package onthisday

import (
	"sort"
	"strconv"

	"github.com/i474232898/historical-day/internal/common"
)

// CenturyOf returns the first year of the century bucket holding year,
// flooring toward negative infinity (so -44 falls in -100).
func CenturyOf(year int) int {
	return common.FloorDiv(year, 100) * 100
}

// GroupByCentury buckets events by century. Groups are ordered newest first
// and events inside a group by year descending; equal years keep input order.
func GroupByCentury(events []Event) []CenturyGroup {
	byCentury := make(map[int][]Event)
	for _, e := range events {
		c := CenturyOf(e.Year)
		byCentury[c] = append(byCentury[c], e)
	}

	centuries := make([]int, 0, len(byCentury))
	for c := range byCentury {
		centuries = append(centuries, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(centuries)))

	groups := make([]CenturyGroup, 0, len(centuries))
	for _, c := range centuries {
		evs := byCentury[c]
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].Year > evs[j].Year })
		groups = append(groups, CenturyGroup{
			Century: c,
			Label:   strconv.Itoa(c) + "s",
			Events:  evs,
		})
	}
	return groups
}
