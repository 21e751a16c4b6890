// Command palette splits stories and lyrics into shots and formats shot lists
// for export.
//
// Run `palette serve` to start the local HTTP API used by the web app. The
// other commands work offline against files or stdin:
//
//	palette chunk story.md --shots 8
//	palette boundaries lyrics.txt --mode lines
//	palette suggest story.pdf
//	palette export shots.json --template noir --output-dir ~/exports
//	palette templates import templates.toml
package main
