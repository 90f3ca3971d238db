package githost

import (
	"os"
	"strings"
)

// Event describes the CI push event that triggered the run, assembled from
// the environment variables GitHub Actions provides to every job.
type Event struct {
	Ref        string // e.g. refs/heads/main
	Branch     string // short branch name, empty for tag or detached refs
	SHA        string
	Actor      string
	Repository string // owner/name slug
	EventName  string // e.g. push
}

// EventFromEnv reads the CI event context from the environment.
// Returns ok=false when not running inside a CI job.
func EventFromEnv() (Event, bool) {
	if os.Getenv("GITHUB_ACTIONS") == "" {
		return Event{}, false
	}

	ref := os.Getenv("GITHUB_REF")
	event := Event{
		Ref:        ref,
		SHA:        os.Getenv("GITHUB_SHA"),
		Actor:      os.Getenv("GITHUB_ACTOR"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
	}

	if branch, ok := strings.CutPrefix(ref, "refs/heads/"); ok {
		event.Branch = branch
	}

	return event, true
}

// IsPush reports whether the event is a branch push.
func (e Event) IsPush() bool {
	return e.EventName == "push" && e.Branch != ""
}
