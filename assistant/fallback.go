package assistant

import "strings"

type breakdown struct {
	keywords []string
	steps    []string
}

// breakdowns are tried in order; the first whose keyword appears in the
// title wins.
var breakdowns = []breakdown{
	{
		keywords: []string{"code", "program", "develop", "project"},
		steps: []string{
			"Set up development environment and open project files",
			"Review requirements and break down into small features",
			"Implement first small feature or function",
			"Test the implemented feature",
			"Add documentation and clean up code",
			"Commit changes and plan next steps",
		},
	},
	{
		keywords: []string{"study", "research", "learn", "read"},
		steps: []string{
			"Gather all materials and create a quiet study space",
			"Create an outline of topics to cover",
			"Study first section for 25 minutes with notes",
			"Take a 5-minute break and review notes",
			"Study second section and make connections",
			"Summarize key points and create review cards",
		},
	},
	{
		keywords: []string{"write", "essay", "report", "paper"},
		steps: []string{
			"Brainstorm ideas and create a rough outline",
			"Research and gather supporting materials",
			"Write the introduction paragraph",
			"Draft the main body sections",
			"Write conclusion and review overall flow",
			"Edit for clarity and check formatting",
		},
	},
	{
		keywords: []string{"assignment", "homework", "exercise"},
		steps: []string{
			"Read assignment instructions carefully",
			"Gather all required materials and resources",
			"Break the assignment into smaller questions/parts",
			"Complete first part and check work",
			"Complete remaining parts one by one",
			"Review entire assignment before submitting",
		},
	},
}

var genericBreakdown = []string{
	"Gather all materials and information needed",
	"Break the task into smaller, specific steps",
	"Complete first step and mark progress",
	"Work on remaining steps one at a time",
	"Review and finalize the completed work",
}

func fallbackBreakdown(title string) []string {
	title = strings.ToLower(title)

	for _, b := range breakdowns {
		for _, k := range b.keywords {
			if strings.Contains(title, k) {
				return append([]string(nil), b.steps...)
			}
		}
	}

	return append([]string(nil), genericBreakdown...)
}
