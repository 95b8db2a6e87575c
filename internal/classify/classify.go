// Package classify derives the required version bump from Conventional
// Commits style messages.
package classify

import (
	"regexp"
	"strings"

	"github.com/grokify/releaseconductor/pkg/model"
)

var (
	// feat!: or feat(scope)!: — the breaking-change shorthand.
	reBreakingFeat = regexp.MustCompile(`^feat(\([^)]*\))?!:`)
	reFeat         = regexp.MustCompile(`^feat(\([^)]*\))?:`)
	reFix          = regexp.MustCompile(`^fix(\([^)]*\))?:`)
)

// Classify returns the dominant classification of the commit set: the maximum
// severity found across all commits, not the classification of any single one.
func Classify(commits []model.Commit) model.Bump {
	result := model.BumpOther
	for _, c := range commits {
		result = result.Max(classifyOne(c))
		if result == model.BumpBreaking {
			break
		}
	}
	return result
}

func classifyOne(c model.Commit) model.Bump {
	subject := strings.ToLower(strings.TrimSpace(c.Subject))
	full := subject + "\n" + strings.ToLower(c.Body)

	if strings.Contains(full, "breaking change") || reBreakingFeat.MatchString(subject) {
		return model.BumpBreaking
	}
	if reFeat.MatchString(subject) {
		return model.BumpFeature
	}
	if reFix.MatchString(subject) {
		return model.BumpFix
	}
	return model.BumpOther
}
