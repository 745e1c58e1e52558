package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func labels(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for idx, c := range candidates {
		out[idx] = c.Label
	}
	return out
}

func TestSuggest(t *testing.T) {
	c := NewCompletor(NewFileExplorer())
	cases := []struct {
		in     string
		prefix string
		want   string
	}{
		{"'p", "p", "push pop"},
		{"'mov rax, r", "r", "rax rbx rcx rdx rsi rdi rbp rsp"},
		{"'add rsi qword ptr [rs", "rs", "rsi rsp"},
		{"'d", "d", "dec"},
		{"'mov rax 0x", "0x", ""},
		{"st", "st", ""},
	}
	for _, tc := range cases {
		prefix, candidates := c.Suggest(tc.in)
		if prefix != tc.prefix {
			t.Errorf("%q: expected prefix %q, got %q", tc.in, tc.prefix, prefix)
		}
		if got := strings.Join(labels(candidates), " "); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	cases := map[string][]Candidate{
		"":     nil,
		"push": {{Label: "push"}},
		"p":    {{Label: "push"}, {Label: "pop"}},
		"rs":   {{Label: "rsi"}, {Label: "rsp"}},
	}
	for want, candidates := range cases {
		if got := commonPrefix(candidates); got != want {
			t.Errorf("%v: expected %q, got %q", labels(candidates), want, got)
		}
	}
}

func TestLoadCompletion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"prog.asm", "notes.md", ".prog.asm"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("inc rax\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "programs"), 0o755); err != nil {
		t.Fatal(err)
	}

	c := NewCompletor(NewFileExplorer("asm", ".S"))
	prefix, candidates := c.Suggest("load " + dir + "/pro")
	if prefix != dir+"/pro" {
		t.Errorf("unexpected prefix %q", prefix)
	}
	want := []Candidate{
		{Label: filepath.Join(dir, "programs") + "/", Kind: "Directory"},
		{Label: filepath.Join(dir, "prog.asm"), Description: "8 B", Kind: "File"},
	}
	if len(candidates) != len(want) {
		t.Fatalf("expected %v, got %v", want, candidates)
	}
	for idx := range want {
		if candidates[idx] != want[idx] {
			t.Errorf("%d: expected %+v, got %+v", idx, want[idx], candidates[idx])
		}
	}

	_, candidates = c.Suggest("load " + dir + "/.p")
	if got := labels(candidates); len(got) != 1 || !strings.HasSuffix(got[0], ".prog.asm") {
		t.Errorf("expected the hidden file, got %v", got)
	}

	_, candidates = c.Suggest("load " + dir + "/n")
	if len(candidates) != 0 {
		t.Errorf("filtered file was offered: %v", labels(candidates))
	}
}

func TestByteSize(t *testing.T) {
	cases := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.00 KB",
		1536:    "1.50 KB",
		5 << 20: "5.00 MB",
		3 << 30: "3.00 GB",
	}
	for n, want := range cases {
		if got := byteSize(n); got != want {
			t.Errorf("%d: expected %q, got %q", n, want, got)
		}
	}
}

func TestHelpMenuLists(t *testing.T) {
	text := strings.Join(NewHelpMenu().Lines(), "\n")
	for _, want := range []string{"Commands", "Instructions", "Registers", "push", "rsp - Stack pointer", "load <path>"} {
		if !strings.Contains(text, want) {
			t.Errorf("help is missing %q", want)
		}
	}
}
