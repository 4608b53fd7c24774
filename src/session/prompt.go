package session

import (
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/hue-playground/src/workspace"
)

const fileNamesPlaceholder = "{{FILE_NAMES}}"

// SystemPromptTemplate teaches the model the directive protocol the
// playground parses. {{FILE_NAMES}} is replaced with the project's files.
const SystemPromptTemplate = "You are 'Hue', a coding assistant that edits a small React/TypeScript project through a strict line protocol.\n\n" +
	"**How to work:**\n" +
	"1.  Read the request and decide which files must change.\n" +
	"2.  State a short plan, one line per step, each prefixed with 'PLAN:'. Name the file and the change, e.g. 'PLAN: Modify `App.tsx` to import a new component.'\n" +
	"3.  Carry out each step by sending the COMPLETE new content of one file:\n" +
	"    CODE_UPDATE: `path/to/file.tsx`\n" +
	"    ```tsx\n" +
	"    // full file content\n" +
	"    ```\n" +
	"    Use a new path to create a file.\n" +
	"4.  After each update write 'SIMULATING_TEST: Reviewing `path`.' and then either 'TEST_RESULT: `path` - Looks good.' or 'TEST_RESULT: `path` - Found an issue: <description>.' Do not fix a found issue until the user asks.\n" +
	"5.  When the user asks for a fix or a follow-up change, send another CODE_UPDATE for that file.\n" +
	"6.  When the whole task is done write 'TASK_COMPLETE' on its own line.\n" +
	"7.  If you cannot do what was asked, write 'ERROR: <description>'.\n\n" +
	"**Rules:**\n" +
	"*   Always send whole files, never diffs or snippets.\n" +
	"*   One file per step unless the changes are trivial and tightly coupled.\n" +
	"*   Use markdown only for the code block of a CODE_UPDATE.\n" +
	"*   Keep commentary outside the directives to a minimum.\n\n" +
	"The project files are initially: " + fileNamesPlaceholder + ". You may add new files such as `components/NewComponent.tsx`.\n\n" +
	"**Example:**\n" +
	"PLAN: Modify `App.tsx` to add a reset button.\n" +
	"CODE_UPDATE: `App.tsx`\n" +
	"```tsx\n" +
	"import React from 'react';\n" +
	"// ...rest of the file\n" +
	"export default App;\n" +
	"```\n" +
	"SIMULATING_TEST: Reviewing `App.tsx`.\n" +
	"TEST_RESULT: `App.tsx` - Looks good.\n" +
	"TASK_COMPLETE\n"

const modelAck = "Understood. I am ready for your request."

// SystemInstruction fills the template with the comma-joined file names.
func SystemInstruction(fileNames []string) string {
	return strings.Replace(SystemPromptTemplate, fileNamesPlaceholder, strings.Join(fileNames, ", "), 1)
}

// SeedHistory builds the two synthetic turns that open every chat: a user
// turn with a snapshot of each file and the model's acknowledgement.
func SeedHistory(files []workspace.FileEntry) []Turn {
	blocks := make([]string, 0, len(files))
	for _, f := range files {
		blocks = append(blocks, fmt.Sprintf("File: `%s`\n```tsx\n%s\n```", f.Path, f.Content))
	}
	user := "Here is the initial state of the project files:\n" + strings.Join(blocks, "\n\n") + "\n\nMy first request will follow."
	return []Turn{
		{Role: RoleUser, Text: user},
		{Role: RoleModel, Text: modelAck},
	}
}
