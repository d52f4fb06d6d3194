// Package file provides file-based implementations of driven port interfaces.
// Everything lives under ~/.atsfit by default.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: editable assistant prompts with change watching
package file
