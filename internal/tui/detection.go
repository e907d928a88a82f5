package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs mark CI runners, where prompts must never block a build.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_HOME",
	"TEAMCITY_VERSION",
	"BUILDKITE",
	"TF_BUILD",
}

// IsInteractive reports whether prompts can be shown: stdin and stdout are
// terminals and no CI variable is set.
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // G115: fd is a small value, no overflow risk
		return false
	}
	return !inCI(os.Getenv)
}

func inCI(getenv func(string) string) bool {
	for _, env := range ciEnvs {
		if getenv(env) != "" {
			return true
		}
	}
	return false
}
