package render

import (
	"testing"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

func TestGroupByMonth(t *testing.T) {
	logs := []interfaces.LogEntry{
		{Date: "2025-02-03"},
		{Date: "2025-02-01"},
		{Date: "2025-1-30"},
		{Date: "someday"},
		{Date: "2024-12-31T10:00:00Z"},
	}

	groups := GroupByMonth(logs)
	wantKeys := []string{"2025-02", "2025-01", "2024-12", "undated"}
	if len(groups) != len(wantKeys) {
		t.Fatalf("expected %d groups, got %#v", len(wantKeys), groups)
	}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Fatalf("group %d: expected %s, got %s", i, key, groups[i].Key)
		}
	}
	if len(groups[0].Logs) != 2 || groups[0].Logs[0].Date != "2025-02-03" {
		t.Fatalf("unexpected first group %#v", groups[0])
	}
	if groups[1].Year != 2025 || groups[1].Month != 1 {
		t.Fatalf("unexpected second group %#v", groups[1])
	}
	if groups[3].Year != 0 || groups[3].Logs[0].Date != "someday" {
		t.Fatalf("unexpected undated group %#v", groups[3])
	}
}

func TestGroupByMonth_NewestMonthFirst(t *testing.T) {
	// Lexicographic manifest order puts unpadded months out of calendar order.
	logs := []interfaces.LogEntry{
		{Date: "2025-9-01"},
		{Date: "2025-10-01"},
		{Date: "undated entry"},
		{Date: "2024-12-05"},
		{Date: "2025-10-03"},
	}

	groups := GroupByMonth(logs)
	wantKeys := []string{"2025-10", "2025-09", "2024-12", "undated"}
	if len(groups) != len(wantKeys) {
		t.Fatalf("expected %d groups, got %#v", len(wantKeys), groups)
	}
	for i, key := range wantKeys {
		if groups[i].Key != key {
			t.Fatalf("group %d: expected %s, got %s", i, key, groups[i].Key)
		}
	}
	if groups[0].Logs[0].Date != "2025-10-01" || groups[0].Logs[1].Date != "2025-10-03" {
		t.Fatalf("expected input order within group, got %#v", groups[0].Logs)
	}
}
