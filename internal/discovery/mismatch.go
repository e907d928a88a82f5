package discovery

import "sort"

// DetectMismatches lists the inspected descriptors whose stamped build
// number differs from buildNumber. Descriptors of the wrong kind and
// unreadable entries are ignored.
func DetectMismatches(entries []Entry, buildNumber string) []Mismatch {
	if buildNumber == "" {
		return nil
	}

	var mismatches []Mismatch
	for _, e := range entries {
		if e.Info == nil || !e.Info.Matches(e.Kind) {
			continue
		}
		if actual := e.Info.StampedBuild(e.Kind); actual != buildNumber {
			mismatches = append(mismatches, Mismatch{
				Source:          e.RelPath,
				ExpectedVersion: buildNumber,
				ActualVersion:   actual,
			})
		}
	}

	// Sort mismatches by source path for consistent output
	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Source < mismatches[j].Source
	})

	return mismatches
}
