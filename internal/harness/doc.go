// Package harness replays task-cli shell sessions described in YAML.
//
// A scenario names an optional seed file, the lines typed into the shell
// and assertions over the outcome:
//
//	name: basic_session
//	description: "Deleting a task keeps the others"
//	lines:
//	  - add "Buy milk"
//	  - add "Walk dog"
//	  - delete 1
//	  - exit
//	assertions:
//	  - type: task
//	    id: 2
//	    description: Walk dog
//	  - type: reload_matches
//
// Run executes the session through cli.Shell against an in-memory
// filesystem with a step clock, so the transcript and the saved file are the
// same on every run. RunWithGolden additionally compares both against
// testdata/golden/<name>.golden.
//
// Scenario files are decoded strictly: unknown fields are errors, which
// catches typos such as "assertion:" for "assertions:".
package harness
