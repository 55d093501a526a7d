package as6mig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

func TestScanResult_Flat_SingleTask(t *testing.T) {
	r := as6mig.ScanResult{ByTask: map[as6mig.TaskID][]as6mig.Match{
		"hw": {{Identifier: "X100", Reason: "EOL", Path: "/a.hw"}},
	}}

	assert.Equal(t, []as6mig.Match{{Identifier: "X100", Reason: "EOL", Path: "/a.hw"}}, r.Flat())
}

func TestScanResult_Flat_MultipleTasks(t *testing.T) {
	r := as6mig.ScanResult{ByTask: map[as6mig.TaskID][]as6mig.Match{
		"b": {{Identifier: "B"}},
		"a": {{Identifier: "A"}},
	}}

	assert.Equal(t, []as6mig.TaskID{"a", "b"}, r.TaskIDs())
	assert.Equal(t, []as6mig.Match{{Identifier: "A"}, {Identifier: "B"}}, r.Flat())
}

func TestScanResult_Flat_Empty(t *testing.T) {
	assert.Empty(t, as6mig.ScanResult{}.Flat())
}

func TestSortMatches(t *testing.T) {
	matches := []as6mig.Match{
		{Identifier: "b", Path: "/1"},
		{Identifier: "a", Path: "/2"},
		{Identifier: "a", Path: "/1"},
	}
	as6mig.SortMatches(matches)

	assert.Equal(t, []as6mig.Match{
		{Identifier: "a", Path: "/1"},
		{Identifier: "a", Path: "/2"},
		{Identifier: "b", Path: "/1"},
	}, matches)
}
