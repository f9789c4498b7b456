package audit

import (
	"errors"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/stafferly/stafferly/internal/errs"
)

var (
	ErrAllowlistReason = errors.New("allowlist entry requires a non-empty reason")
	ErrAllowlistClass  = errors.New("skip-tenant allowlist entry requires a valid classification")
)

// AllowlistEntry permits one file (or glob) to skip one rule. The reason is
// mandatory: an exemption nobody can explain is an exemption nobody will
// ever remove. Skip-tenant entries additionally carry a classification so
// the visibility report can bucket them.
type AllowlistEntry struct {
	Path           string `yaml:"path"`
	Rule           string `yaml:"rule"`
	Reason         string `yaml:"reason"`
	Classification string `yaml:"classification,omitempty"`
}

type Allowlist struct {
	Entries []AllowlistEntry `yaml:"allow"`
}

var validClassifications = map[string]bool{
	ClassTenantAgnostic:  true,
	ClassUnauthenticated: true,
	ClassAuthBootstrap:   true,
}

// LoadAllowlist reads and validates the allowlist file. A missing file is an
// empty allowlist, so a fresh repo audits clean without ceremony.
func LoadAllowlist(filePath string) (*Allowlist, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Allowlist{}, nil
		}

		return nil, errs.Wrap(ErrLoadAllowlist, err)
	}

	return ParseAllowlist(data)
}

func ParseAllowlist(data []byte) (*Allowlist, error) {
	var list Allowlist

	err := yaml.Unmarshal(data, &list)
	if err != nil {
		return nil, errs.Wrap(ErrLoadAllowlist, err)
	}

	for _, entry := range list.Entries {
		if entry.Reason == "" {
			//nolint:err113
			return nil, errs.Wrap(ErrAllowlistReason,
				fmt.Errorf("path %q rule %q", entry.Path, entry.Rule))
		}

		if entry.Rule == RuleSkipTenant && !validClassifications[entry.Classification] {
			//nolint:err113
			return nil, errs.Wrap(ErrAllowlistClass,
				fmt.Errorf("path %q classification %q", entry.Path, entry.Classification))
		}
	}

	return &list, nil
}

// Allows reports whether the given file is exempt from the given rule.
// Paths match exactly or as path.Match globs against the root-relative path.
func (a *Allowlist) Allows(file, rule string) bool {
	entry, ok := a.find(file, rule)

	return ok && entry.Rule == rule
}

// Classification returns the declared bucket for a skip-tenant exemption.
func (a *Allowlist) Classification(file string) (AllowlistEntry, bool) {
	return a.find(file, RuleSkipTenant)
}

func (a *Allowlist) find(file, rule string) (AllowlistEntry, bool) {
	for _, entry := range a.Entries {
		if entry.Rule != rule {
			continue
		}

		if entry.Path == file {
			return entry, true
		}

		matched, err := path.Match(entry.Path, file)
		if err == nil && matched {
			return entry, true
		}
	}

	return AllowlistEntry{}, false
}
