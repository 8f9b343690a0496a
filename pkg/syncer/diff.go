package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/pkg/errors"
)

// Diff reports the drift between the repository copy of a skill and its
// installed copy as a unified diff, repository side first. An empty string
// means the two trees are identical.
func (s *Syncer) Diff(name string) (string, error) {
	source := s.RepoSkillPath(name)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return "", errors.Errorf("skill '%s' not found under %s", name, s.RepoSkillsRoot())
	}

	target := s.InstalledSkillPath(name)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("skill '%s' is not installed\n", name), nil
		}
		return "", errors.Wrapf(err, "failed to stat installed skill '%s'", name)
	}

	files, err := unionFiles(source, target)
	if err != nil {
		return "", errors.Wrapf(err, "failed to list files for skill '%s'", name)
	}

	var out strings.Builder
	for _, rel := range files {
		a, err := readOrEmpty(filepath.Join(source, rel))
		if err != nil {
			return "", err
		}
		b, err := readOrEmpty(filepath.Join(target, rel))
		if err != nil {
			return "", err
		}
		if a == b {
			continue
		}
		out.WriteString(udiff.Unified(
			filepath.ToSlash(filepath.Join(skillsSubdir, name, rel)),
			filepath.ToSlash(filepath.Join(target, rel)),
			a, b,
		))
	}

	return out.String(), nil
}

// unionFiles returns the sorted union of relative file paths in both trees.
func unionFiles(a, b string) ([]string, error) {
	set := make(map[string]bool)
	for _, root := range []string{a, b} {
		files, err := listFiles(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			set[f] = true
		}
	}

	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out, nil
}

func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel != "." && ignored(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

func readOrEmpty(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(content), nil
}
