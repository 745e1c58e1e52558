package main

import (
	"strings"

	"ostrich"
)

type Candidate struct {
	Label       string
	Description string
	Kind        string
}

type Completor struct {
	explorer *FileExplorer
}

func NewCompletor(explorer *FileExplorer) *Completor {
	return &Completor{explorer: explorer}
}

func isSymbolSeperator(ch rune) bool {
	if (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' {
		return false
	}

	return true
}

// Suggest completes the end of input. It returns the text being completed
// and the candidates that would replace it.
func (c *Completor) Suggest(input string) (string, []Candidate) {
	if path, ok := strings.CutPrefix(input, "load "); ok {
		path = strings.TrimLeft(path, " ")
		return path, c.explorer.Complete(path)
	}

	start := len(input)
	for start > 0 && !isSymbolSeperator(rune(input[start-1])) {
		start--
	}
	prefix := input[start:]
	if start == 0 {
		// only assembly lines are completed
		return prefix, nil
	}

	candidates := make([]Candidate, 0)
	for _, kind := range ostrich.InstructionSet() {
		if strings.HasPrefix(kind.Name, prefix) {
			candidates = append(candidates, Candidate{
				Label:       kind.Name,
				Description: kind.Desc,
				Kind:        "Instruction",
			})
		}
	}
	for reg := ostrich.RegisterName(0); reg < ostrich.RegisterCount; reg++ {
		info := reg.Info()
		if strings.HasPrefix(info.Name, prefix) {
			candidates = append(candidates, Candidate{
				Label:       info.Name,
				Description: info.Desc,
				Kind:        "Register",
			})
		}
	}
	return prefix, candidates
}

// commonPrefix is the longest label prefix shared by all candidates.
func commonPrefix(candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	prefix := candidates[0].Label
	for _, c := range candidates[1:] {
		for !strings.HasPrefix(c.Label, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
