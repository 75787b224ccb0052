// Package telemetry accumulates link simulation counters and writes
// per-step link status records to CSV.
package telemetry

// Collector counts topology and blockage events since construction.
type Collector struct {
	rebuilds int
	resolved int
	skipped  int
	blocked  int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordRebuild notes one full topology rebuild.
func (c *Collector) RecordRebuild() {
	c.rebuilds++
}

// RecordResolved notes one successfully created beam segment.
func (c *Collector) RecordResolved() {
	c.resolved++
}

// RecordSkipped notes one link spec skipped for an out-of-range index
// or a missing subcomponent.
func (c *Collector) RecordSkipped() {
	c.skipped++
}

// RecordBlocked notes one segment transitioning to blocked.
func (c *Collector) RecordBlocked() {
	c.blocked++
}

// Rebuilds returns the rebuild count.
func (c *Collector) Rebuilds() int { return c.rebuilds }

// Resolved returns the created segment count across all rebuilds.
func (c *Collector) Resolved() int { return c.resolved }

// Skipped returns the skipped spec count.
func (c *Collector) Skipped() int { return c.skipped }

// Blocked returns the blockage event count.
func (c *Collector) Blocked() int { return c.blocked }
