package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LockFileName pins resolved dependency revisions next to package.yml.
const LockFileName = "package.lock.yml"

// LockedPackage records one resolved dependency.
type LockedPackage struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	Source   string `yaml:"source"`
	Checksum string `yaml:"checksum"`
}

// Lockfile is the parsed contents of package.lock.yml.
type Lockfile struct {
	Packages []LockedPackage `yaml:"packages"`
}

// LoadLockfile reads the lockfile beside the given manifest path. A
// missing lockfile is not an error; it returns an empty set.
func LoadLockfile(manifestPath string) (*Lockfile, error) {
	path := filepath.Join(filepath.Dir(manifestPath), LockFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Lockfile{}, nil
		}
		return nil, fmt.Errorf("lockfile: read %s: %w", path, err)
	}
	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", path, err)
	}
	return &lock, nil
}

// Save writes the lockfile beside the given manifest path with packages
// in name order.
func (l *Lockfile) Save(manifestPath string) error {
	sort.Slice(l.Packages, func(a, b int) bool {
		return l.Packages[a].Name < l.Packages[b].Name
	})
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("lockfile: encode: %w", err)
	}
	path := filepath.Join(filepath.Dir(manifestPath), LockFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	return nil
}

// Find returns the locked record for a dependency name, if present.
func (l *Lockfile) Find(name string) (LockedPackage, bool) {
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return LockedPackage{}, false
}
