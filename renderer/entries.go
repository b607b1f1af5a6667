package renderer

import (
	"fmt"
	"strings"

	"github.com/finco/finco"
)

// Entries renders an entry listing as a markdown table.
func Entries(entries []finco.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Id | Date | Label | Classification | Category | Amount | Status |\n")
	fmt.Fprintf(&b, "|---:|:-----|:------|:---------------|:---------|-------:|:-------|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			e.ID, e.Date, e.Label, e.Classification, e.Category, e.Signed().SignedString(), e.Status)
	}
	return b.String()
}

// Classifications renders the classification list as a markdown table.
func Classifications(classifications []finco.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Name | Type | Category |\n")
	fmt.Fprintf(&b, "|:-----|:-----|:---------|\n")
	for _, c := range classifications {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Name, c.Type, c.Category)
	}
	return b.String()
}

// Thresholds renders the Miller-Orr band as a markdown table.
func Thresholds(t finco.Thresholds) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| Threshold | Value |\n")
	fmt.Fprintf(&b, "|:----------|------:|\n")
	fmt.Fprintf(&b, "| %s | %s |\n", finco.ThresholdMinimum, t.Minimum)
	fmt.Fprintf(&b, "| %s | %s |\n", finco.ThresholdReturnPoint, t.ReturnPoint)
	fmt.Fprintf(&b, "| %s | %s |\n", finco.ThresholdMaximum, t.Maximum)
	return b.String()
}
