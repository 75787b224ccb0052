package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.RecordRebuild()
	c.RecordRebuild()
	for i := 0; i < 3; i++ {
		c.RecordResolved()
	}
	c.RecordSkipped()
	c.RecordBlocked()

	if c.Rebuilds() != 2 {
		t.Errorf("rebuilds = %d, want 2", c.Rebuilds())
	}
	if c.Resolved() != 3 {
		t.Errorf("resolved = %d, want 3", c.Resolved())
	}
	if c.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", c.Skipped())
	}
	if c.Blocked() != 1 {
		t.Errorf("blocked = %d, want 1", c.Blocked())
	}
}

// TestOutputManagerHeaderOnce verifies the header appears exactly once
// across multiple writes.
func TestOutputManagerHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	records := []LinkRecord{
		{Step: 0, Name: "direct-t0-r5", Kind: "direct", Length: 8.5},
		{Step: 0, Name: "refl-t1-m6-a", Kind: "refl-a", Length: 4.2, Blocked: true, Blocker: "rack-2"},
	}
	if err := om.WriteRecords(records); err != nil {
		t.Fatal(err)
	}
	records[0].Step = 1
	records[1].Step = 1
	if err := om.WriteRecords(records); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "links.csv"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if got := strings.Count(content, "step,"); got != 1 {
		t.Errorf("header written %d times, want 1", got)
	}
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 5 {
		t.Errorf("lines = %d, want 5 (header + 4 records)", len(lines))
	}
	if !strings.Contains(content, "direct-t0-r5") || !strings.Contains(content, "rack-2") {
		t.Error("record fields missing from output")
	}
}

// TestOutputManagerDisabled verifies the nil manager is a safe no-op.
func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	if err := om.WriteRecords([]LinkRecord{{Name: "x"}}); err != nil {
		t.Errorf("nil WriteRecords: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

// TestOutputManagerEmptyWrite verifies writing no records does not
// consume the header.
func TestOutputManagerEmptyWrite(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteRecords(nil); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteRecords([]LinkRecord{{Step: 3, Name: "direct-t2-r3", Kind: "direct"}}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "links.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "step,"); got != 1 {
		t.Errorf("header written %d times, want 1", got)
	}
}
