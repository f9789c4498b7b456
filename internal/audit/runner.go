package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stafferly/stafferly/internal/errs"
	"github.com/stafferly/stafferly/internal/log"
)

// Report is the machine-readable output consumed by CI. Findings are the
// gating violations left after allowlist filtering; Suppressed records what
// the allowlist absorbed so exemptions stay visible; SkipTenant is the
// non-gating classification report.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Root        string            `json:"root"`
	Findings    []Finding         `json:"findings"`
	Suppressed  []Finding         `json:"suppressed"`
	SkipTenant  []SkipTenantEntry `json:"skip_tenant"`
}

// Clean reports whether the build may pass.
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

// ExitCode maps the report onto the CI contract: 0 clean, 1 violations.
func (r *Report) ExitCode() int {
	if r.Clean() {
		return 0
	}

	return 1
}

func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errs.Wrap(ErrWriteReport, err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return errs.Wrap(ErrWriteReport, err)
	}

	return nil
}

// DefaultAuditors returns the gating checks in their canonical order. The
// skip-tenant report runs separately because it never gates.
func DefaultAuditors() []Auditor {
	return []Auditor{
		UnsafeFallback{},
		AsyncBoundary{},
		Layering{},
		Interpolation{},
		PlatformBody{},
		BuilderWindow{},
	}
}

// Runner executes a set of auditors over one source tree.
type Runner struct {
	auditors  []Auditor
	allowlist *Allowlist
}

func NewRunner(auditors []Auditor, allowlist *Allowlist) *Runner {
	if allowlist == nil {
		allowlist = &Allowlist{}
	}

	return &Runner{auditors: auditors, allowlist: allowlist}
}

// Run executes every auditor concurrently and assembles the report.
func (r *Runner) Run(ctx context.Context, tree *SourceTree) (*Report, error) {
	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Root:        tree.Root,
		Findings:    []Finding{},
		Suppressed:  []Finding{},
	}

	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)

	for _, auditor := range r.auditors {
		group.Go(func() error {
			findings := auditor.Check(tree)

			mu.Lock()
			defer mu.Unlock()

			for _, finding := range findings {
				if r.allowlist.Allows(finding.File, finding.Rule) {
					report.Suppressed = append(report.Suppressed, finding)
				} else {
					report.Findings = append(report.Findings, finding)
				}
			}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	report.SkipTenant = SkipTenantReport{}.Entries(tree, r.allowlist)

	sortFindings(report.Findings)
	sortFindings(report.Suppressed)

	for _, finding := range report.Findings {
		log.Warn(ctx, "Isolation violation",
			slog.String("rule", finding.Rule),
			slog.String("file", finding.File),
			slog.Int("line", finding.Line),
		)
	}

	return report, nil
}

func sortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}

		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}

		return findings[i].Rule < findings[j].Rule
	})
}
