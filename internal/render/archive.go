package render

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

var yearMonthPattern = regexp.MustCompile(`^([0-9]{4})-([0-9]{1,2})(?:[-T ]|$)`)

// GroupByMonth buckets logs by calendar month. Groups are ordered newest
// month first and keep the input order within each group. Logs whose date has
// no recognizable year-month prefix are collected in a trailing group with a
// zero Year and the key "undated".
func GroupByMonth(logs []interfaces.LogEntry) []interfaces.MonthGroup {
	groups := []interfaces.MonthGroup{}
	index := map[string]int{}
	var undated []interfaces.LogEntry

	for _, entry := range logs {
		year, month, ok := yearMonth(entry.Date)
		if !ok {
			undated = append(undated, entry)
			continue
		}
		key := fmt.Sprintf("%04d-%02d", year, month)
		pos, seen := index[key]
		if !seen {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, interfaces.MonthGroup{Year: year, Month: month, Key: key})
		}
		groups[pos].Logs = append(groups[pos].Logs, entry)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Month > groups[j].Month
	})

	if len(undated) > 0 {
		groups = append(groups, interfaces.MonthGroup{Key: "undated", Logs: undated})
	}
	return groups
}

func yearMonth(date string) (int, int, bool) {
	m := yearMonthPattern.FindStringSubmatch(date)
	if m == nil {
		return 0, 0, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
