// Package syncer applies the three directional filesystem operations that
// keep skill bundles synchronized between the repository's skills/ tree and
// the user-level skills directory: install (repo to user dir), import (user
// dir back to repo), and uninstall (remove from user dir).
//
// Each skill is processed independently. A failed item never aborts the
// rest of the batch; callers collect per-item errors and derive the exit
// status from the aggregate.
package syncer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

const skillsSubdir = "skills"

// Config holds the filesystem locations a Syncer operates on. Zero values
// resolve to the current directory and the default user skills directory.
type Config struct {
	RepoRoot  string `mapstructure:"repo_root"`
	SkillsDir string `mapstructure:"skills_dir"`
}

// DefaultSkillsDir returns the user-level skills directory,
// ~/.openserv/skills.
func DefaultSkillsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, ".openserv", "skills"), nil
}

// Syncer performs directional copy and remove operations for skill bundles.
type Syncer struct {
	repoRoot  string
	skillsDir string
}

// New creates a Syncer from the given config, resolving defaults.
func New(cfg Config) (*Syncer, error) {
	repoRoot := cfg.RepoRoot
	if repoRoot == "" {
		repoRoot = "."
	}

	skillsDir := cfg.SkillsDir
	if skillsDir == "" {
		dir, err := DefaultSkillsDir()
		if err != nil {
			return nil, err
		}
		skillsDir = dir
	}

	return &Syncer{
		repoRoot:  repoRoot,
		skillsDir: skillsDir,
	}, nil
}

// SkillsDir returns the user-level skills directory this syncer targets.
func (s *Syncer) SkillsDir() string {
	return s.skillsDir
}

// RepoSkillsRoot returns the repository's skills/ tree.
func (s *Syncer) RepoSkillsRoot() string {
	return filepath.Join(s.repoRoot, skillsSubdir)
}

// RepoSkillPath returns the repository-side path of a named skill.
func (s *Syncer) RepoSkillPath(name string) string {
	return filepath.Join(s.repoRoot, skillsSubdir, name)
}

// InstalledSkillPath returns the user-dir path of a named skill.
func (s *Syncer) InstalledSkillPath(name string) string {
	return filepath.Join(s.skillsDir, name)
}

// EnsureSkillsDir creates the user skills directory (with parents) if absent.
func (s *Syncer) EnsureSkillsDir() error {
	if err := os.MkdirAll(s.skillsDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create skills directory %s", s.skillsDir)
	}
	return nil
}

// SkillsDirExists reports whether the user skills directory exists.
func (s *Syncer) SkillsDirExists() bool {
	info, err := os.Stat(s.skillsDir)
	return err == nil && info.IsDir()
}

// Status describes how one skill item was handled.
type Status int

const (
	// StatusSynced means the bundle was copied to its destination.
	StatusSynced Status = iota
	// StatusSkippedSymlink means an import found a symlinked source and
	// left both sides untouched.
	StatusSkippedSymlink
	// StatusRemoved means an uninstall removed a plain directory.
	StatusRemoved
	// StatusRemovedSymlink means an uninstall removed a symbolic link
	// (the link only, not its target).
	StatusRemovedSymlink
	// StatusAlreadyAbsent means an uninstall found nothing to remove.
	StatusAlreadyAbsent
)

// ItemResult reports the outcome of one skill's pipeline.
type ItemResult struct {
	Name   string
	Source string
	Target string
	Status Status
	// ReplacedSymlink is set when an install found a symbolic link at the
	// target and replaced it with a real copy.
	ReplacedSymlink bool
}

// Install copies a skill from the repository into the user skills
// directory, replacing whatever is there. The source must exist as a
// directory; a symlinked target is removed (link only) before copying.
func (s *Syncer) Install(name string) (ItemResult, error) {
	res := ItemResult{
		Name:   name,
		Source: s.RepoSkillPath(name),
		Target: s.InstalledSkillPath(name),
	}

	info, err := os.Stat(res.Source)
	if err != nil || !info.IsDir() {
		return res, errors.Errorf("skill '%s' not found under %s", name, s.RepoSkillsRoot())
	}

	wasSymlink, err := clearTarget(res.Target)
	if err != nil {
		return res, errors.Wrapf(err, "failed to clear target for skill '%s'", name)
	}
	res.ReplacedSymlink = wasSymlink

	if err := copyDir(res.Source, res.Target); err != nil {
		return res, errors.Wrapf(err, "failed to copy skill '%s'", name)
	}

	res.Status = StatusSynced
	return res, nil
}

// Import copies an installed skill from the user skills directory back into
// the repository root. A symlinked source is skipped as a success: the link
// already points at live content and there is nothing to bring back.
func (s *Syncer) Import(name string) (ItemResult, error) {
	res := ItemResult{
		Name:   name,
		Source: s.InstalledSkillPath(name),
		Target: filepath.Join(s.repoRoot, name),
	}

	info, err := os.Lstat(res.Source)
	if err == nil && info.Mode()&os.ModeSymlink != 0 {
		res.Status = StatusSkippedSymlink
		return res, nil
	}
	if err != nil || !info.IsDir() {
		return res, errors.Errorf("skill '%s' is not installed in %s", name, s.skillsDir)
	}

	if err := os.RemoveAll(res.Target); err != nil {
		return res, errors.Wrapf(err, "failed to clear target for skill '%s'", name)
	}

	if err := copyDir(res.Source, res.Target); err != nil {
		return res, errors.Wrapf(err, "failed to copy skill '%s'", name)
	}

	res.Status = StatusSynced
	return res, nil
}

// Uninstall removes a skill from the user skills directory. An absent
// target is not an error; a symlinked target loses the link only.
func (s *Syncer) Uninstall(name string) (ItemResult, error) {
	res := ItemResult{
		Name:   name,
		Target: s.InstalledSkillPath(name),
	}

	info, err := os.Lstat(res.Target)
	if err != nil {
		res.Status = StatusAlreadyAbsent
		return res, nil
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(res.Target); err != nil {
			return res, errors.Wrapf(err, "failed to remove symlink for skill '%s'", name)
		}
		res.Status = StatusRemovedSymlink
		return res, nil
	}

	if err := os.RemoveAll(res.Target); err != nil {
		return res, errors.Wrapf(err, "failed to remove skill '%s'", name)
	}
	res.Status = StatusRemoved
	return res, nil
}

// clearTarget removes whatever occupies the target path so a fresh copy can
// land there. A symlink is removed without following it.
func clearTarget(target string) (wasSymlink bool, err error) {
	info, err := os.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return true, os.Remove(target)
	}
	return false, os.RemoveAll(target)
}

// copyIgnorePatterns are path fragments never carried into a copy.
var copyIgnorePatterns = []string{
	".git",
	".git/**",
	"node_modules",
	"node_modules/**",
	"**/.DS_Store",
	".DS_Store",
}

func ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range copyIgnorePatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if relPath != "." && ignored(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
