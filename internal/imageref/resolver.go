package imageref

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Branch names the resolution strategy that produced (or failed to
// produce) a reference. The names appear in diagnostic output.
type Branch string

const (
	BranchDBURL   Branch = "db_url"
	BranchBaseURL Branch = "base_url"
	BranchLocal   Branch = "local"
	BranchLegacy  Branch = "legacy"
	BranchNone    Branch = "none"
)

// Ref is the single winning reference for a (material, kind) pair. Either
// URL or Path is set, never both.
type Ref struct {
	Branch  Branch
	URL     string
	Path    string
	Size    int64
	ModTime time.Time
}

// IsZero reports whether no branch produced a reference.
func (r Ref) IsZero() bool {
	return r.URL == "" && r.Path == ""
}

// SourceType returns "url", "path", or "none" for diagnostic display.
func (r Ref) SourceType() string {
	switch {
	case r.URL != "":
		return "url"
	case r.Path != "":
		return "path"
	}
	return "none"
}

// Candidate records one branch attempt for diagnostics. Reason is empty on
// the winning candidate.
type Candidate struct {
	Branch Branch `json:"branch"`
	Value  string `json:"value"`
	Reason string `json:"reason,omitempty"`
}

// Trace is the structured record of every branch the resolver attempted.
type Trace struct {
	Kind         Kind        `json:"kind"`
	Slug         string      `json:"slug"`
	ChosenBranch Branch      `json:"chosen_branch"`
	FinalSrcType string      `json:"final_src_type"`
	Candidates   []Candidate `json:"candidates"`
}

func (t *Trace) fail(branch Branch, value, reason string) {
	t.Candidates = append(t.Candidates, Candidate{Branch: branch, Value: value, Reason: reason})
}

func (t *Trace) win(ref Ref) {
	t.ChosenBranch = ref.Branch
	t.FinalSrcType = ref.SourceType()
	value := ref.URL
	if value == "" {
		value = ref.Path
	}
	t.Candidates = append(t.Candidates, Candidate{Branch: ref.Branch, Value: value})
}

// Config is the explicit, passed-in configuration the resolver reads
// instead of ambient process state.
type Config struct {
	// BaseURL is the remote image hosting prefix; empty disables the
	// base_url branch.
	BaseURL string
	// Version is the cache-bust token; empty falls back to build info.
	Version string
	// ProjectRoot anchors the local convention tree.
	ProjectRoot string
	// Legacy performs the alternate-directory-name lookup; nil disables
	// the legacy branch.
	Legacy LegacyLookup
}

// Resolver decides, for each material and image slot, where a displayable
// image can be found. It is read-only on the filesystem and never returns
// an error for absent data: a full miss is a zero Ref plus a Trace.
type Resolver struct {
	baseURL string
	version string
	root    string
	legacy  LegacyLookup
}

// NewResolver builds a Resolver, resolving the cache-bust version token
// once up front.
func NewResolver(cfg Config) *Resolver {
	legacy := cfg.Legacy
	if legacy == nil {
		legacy = NoopLookup{}
	}
	return &Resolver{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: ResolveVersion(cfg.Version),
		root:    cfg.ProjectRoot,
		legacy:  legacy,
	}
}

// Version returns the cache-bust token in effect.
func (r *Resolver) Version() string {
	return r.version
}

// Resolve returns the winning reference for the kind, plus the trace of
// every branch attempted. Strict precedence, first match wins:
// database URL, base-URL template, local convention path, legacy
// directory fallback.
func (r *Resolver) Resolve(fields MaterialImageFields, kind Kind) (Ref, Trace) {
	slug := fields.Slug()
	trace := Trace{Kind: kind, Slug: slug, ChosenBranch: BranchNone, FinalSrcType: "none"}

	// 1. Explicit database URL
	if ref, ok := r.resolveDBURL(fields, kind, &trace); ok {
		trace.win(ref)
		return ref, trace
	}

	// 2. Base-URL template
	if ref, ok := r.resolveBaseURL(slug, kind, &trace); ok {
		trace.win(ref)
		return ref, trace
	}

	// 3. Local convention path
	if ref, ok := r.resolveLocal(slug, kind, &trace); ok {
		trace.win(ref)
		return ref, trace
	}

	// 4. Legacy directory fallback
	if ref, ok := r.resolveLegacy(fields, kind, &trace); ok {
		trace.win(ref)
		return ref, trace
	}

	return Ref{Branch: BranchNone}, trace
}

func (r *Resolver) resolveDBURL(fields MaterialImageFields, kind Kind, trace *Trace) (Ref, bool) {
	var raw string
	switch kind {
	case KindPrimary:
		raw = strings.TrimSpace(fields.TextureImageURL)
	case KindSpace, KindProduct:
		if ue, ok := fields.UseExampleFor(kind); ok {
			raw = strings.TrimSpace(ue.ImageURL)
		}
	}
	if raw == "" {
		trace.fail(BranchDBURL, "", "no url field set")
		return Ref{}, false
	}
	if !isHTTPURL(raw) {
		// Stored value is not a usable URL; fall through rather than error.
		trace.fail(BranchDBURL, raw, "not an http(s) url")
		return Ref{}, false
	}
	return Ref{Branch: BranchDBURL, URL: appendVersion(raw, r.version)}, true
}

func (r *Resolver) resolveBaseURL(slug string, kind Kind, trace *Trace) (Ref, bool) {
	if r.baseURL == "" {
		trace.fail(BranchBaseURL, "", "base url not configured")
		return Ref{}, false
	}
	if slug == "" {
		trace.fail(BranchBaseURL, "", "empty slug")
		return Ref{}, false
	}
	u := r.baseURL + "/" + URLPath(slug, kind)
	return Ref{Branch: BranchBaseURL, URL: appendVersion(u, r.version)}, true
}

func (r *Resolver) resolveLocal(slug string, kind Kind, trace *Trace) (Ref, bool) {
	if slug == "" {
		trace.fail(BranchLocal, "", "empty slug")
		return Ref{}, false
	}
	for _, ext := range ExtPriority {
		path := ConventionPath(r.root, slug, kind, ext)
		if ref, ok := statCandidate(BranchLocal, path, trace); ok {
			return ref, true
		}
	}
	if kind == KindPrimary {
		// Old tree nested primary images one directory deeper.
		for _, ext := range ExtPriority {
			path := filepath.Join(MaterialsRoot(r.root), slug, legacyNestedRelName(ext))
			if ref, ok := statCandidate(BranchLocal, path, trace); ok {
				return ref, true
			}
		}
	}
	return Ref{}, false
}

func (r *Resolver) resolveLegacy(fields MaterialImageFields, kind Kind, trace *Trace) (Ref, bool) {
	path, tried := r.legacy.Locate(fields, kind)
	for _, t := range tried {
		trace.fail(BranchLegacy, t, "no match")
	}
	if path == "" {
		return Ref{}, false
	}
	return statFile(BranchLegacy, path, trace)
}

// statCandidate checks one local path, recording a failure candidate when
// it does not resolve to a regular file.
func statCandidate(branch Branch, path string, trace *Trace) (Ref, bool) {
	info, err := os.Stat(path)
	if err != nil {
		trace.fail(branch, path, "missing file")
		return Ref{}, false
	}
	if !info.Mode().IsRegular() {
		trace.fail(branch, path, "not a regular file")
		return Ref{}, false
	}
	return Ref{Branch: branch, Path: path, Size: info.Size(), ModTime: info.ModTime()}, true
}

func statFile(branch Branch, path string, trace *Trace) (Ref, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		trace.fail(branch, path, fmt.Sprintf("unreadable: %v", err))
		return Ref{}, false
	}
	return Ref{Branch: branch, Path: path, Size: info.Size(), ModTime: info.ModTime()}, true
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// appendVersion adds exactly one cache-busting query parameter.
func appendVersion(u, version string) string {
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "v=" + version
}
