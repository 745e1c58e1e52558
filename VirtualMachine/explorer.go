package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExplorer lists program files for the load command.
type FileExplorer struct {
	extFilter map[string]struct{}
}

func NewFileExplorer(exts ...string) *FileExplorer {
	fe := &FileExplorer{}
	fe.SetFilter(exts...)
	return fe
}

func (fe *FileExplorer) SetFilter(exts ...string) {
	fe.extFilter = make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && e[0] != '.' {
			e = "." + e
		}
		fe.extFilter[e] = struct{}{}
	}
}

// Entries lists dir with directories first, then files, both alphabetical.
// Files not matching the filter are left out.
func (fe *FileExplorer) Entries(dir string) ([]fs.DirEntry, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	filtered := ents[:0]
	for _, e := range ents {
		if len(fe.extFilter) > 0 && !e.IsDir() {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if _, ok := fe.extFilter[ext]; !ok {
				continue
			}
		}
		filtered = append(filtered, e)
	}
	sort.Slice(filtered, func(i, j int) bool {
		di, dj := filtered[i].IsDir(), filtered[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(filtered[i].Name()) < strings.ToLower(filtered[j].Name())
	})
	return filtered, nil
}

// Complete lists the paths that extend prefix. Hidden entries only show up
// once the prefix names them.
func (fe *FileExplorer) Complete(prefix string) []Candidate {
	dir, base := filepath.Split(prefix)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	ents, err := fe.Entries(readDir)
	if err != nil {
		return nil
	}

	var candidates []Candidate
	for _, e := range ents {
		name := e.Name()
		if !strings.HasPrefix(name, base) || (strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".")) {
			continue
		}
		if e.IsDir() {
			candidates = append(candidates, Candidate{
				Label: dir + name + string(filepath.Separator),
				Kind:  "Directory",
			})
			continue
		}
		desc := ""
		if info, err := e.Info(); err == nil {
			desc = byteSize(info.Size())
		}
		candidates = append(candidates, Candidate{
			Label:       dir + name,
			Description: desc,
			Kind:        "File",
		})
	}
	return candidates
}

func byteSize(n int64) string {
	const (
		_          = iota
		KB float64 = 1 << (10 * iota)
		MB
		GB
	)
	f := float64(n)
	switch {
	case f >= GB:
		return fmt.Sprintf("%.2f GB", f/GB)
	case f >= MB:
		return fmt.Sprintf("%.2f MB", f/MB)
	case f >= KB:
		return fmt.Sprintf("%.2f KB", f/KB)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
