// vidbrief turns videos and pasted text into structured markdown analysis
// reports using hosted AI providers, expands reports into long-form
// articles, and serves a small web UI for the same pipeline.
package main

import "github.com/samsaffron/vidbrief/cmd"

func main() {
	cmd.Execute()
}
