// Package parser converts raw, untrusted Java version text into a
// canonical VersionIdentity. It accepts a bare version token, a Java
// properties export, a JVM release file, or `java -version` output, and
// rejects anything else with a typed ParseFailure instead of guessing.
package parser

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jdkaudit/jdkaudit-backend/model"
)

// versionLineRe matches the first line of `java -version` stderr output,
// e.g. `openjdk version "21.0.5" 2024-10-15 LTS`.
var versionLineRe = regexp.MustCompile(`(?:openjdk|java) version "([^"]+)"`)

// coreRe matches the dotted numeric core of a version token after build,
// pre-release, and update suffixes have been split off. Anchored, no
// backtracking: parse cost stays linear in the input length.
var coreRe = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?$`)

// Version keys recognized inside a properties or release-file block, in
// normalized (lowercase, dot-separated) form.
const (
	keyRuntimeVersion = "java.runtime.version"
	keyVersion        = "java.version"
	keyVMVersion      = "java.vm.version"
	keyFullVersion    = "full.version"
)

// Parser turns raw version text into identities. It is stateless apart
// from the vendor signature table and safe for concurrent use.
type Parser struct {
	vendors *Resolver
}

// New returns a Parser using the given vendor signatures; nil falls back
// to the built-in signature set.
func New(sigs []Signature) *Parser {
	return &Parser{vendors: NewResolver(sigs)}
}

// Parse converts raw text into a VersionIdentity. hint is an optional
// out-of-band vendor hint (e.g. from upload metadata) and may be empty.
// On failure the returned error is a *model.ParseFailure.
func (p *Parser) Parse(raw, hint string) (*model.VersionIdentity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: raw, Detail: "empty input"}
	}

	token, err := extractToken(trimmed)
	if err != nil {
		return nil, err
	}

	id, err := parseToken(token)
	if err != nil {
		return nil, err
	}

	id.Vendor = p.vendors.Resolve(raw, hint)
	return id, nil
}

// extractToken locates the version token inside the raw text. A block
// with key=value lines is scanned for version keys with fixed
// precedence; `java -version` output is matched by its quoted version;
// anything else must already be a bare token.
func extractToken(raw string) (string, error) {
	if m := versionLineRe.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}
	if strings.ContainsRune(raw, '=') {
		return extractFromBlock(raw)
	}
	if strings.ContainsAny(raw, " \t\n") {
		return "", &model.ParseFailure{
			Reason: model.ReasonMalformed,
			Input:  raw,
			Detail: "input is neither a version token, a properties block, nor java -version output",
		}
	}
	return raw, nil
}

// extractFromBlock scans key=value lines. Both properties exports
// (java.version=17.0.2) and JVM release files (JAVA_VERSION="17.0.2")
// are accepted; release-file keys normalize onto the properties names.
// The runtime-version key overrides the generic version key, but a
// disagreement in canonical major between the two is an ambiguity, not
// a preference.
func extractFromBlock(raw string) (string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalizeKey(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		if value == "" {
			continue
		}
		if _, seen := values[key]; !seen {
			values[key] = value
		}
	}

	specific := values[keyRuntimeVersion]
	generic := values[keyVersion]

	if specific != "" && generic != "" {
		specificID, serr := parseToken(specific)
		genericID, gerr := parseToken(generic)
		if serr == nil && gerr == nil && specificID.Major != genericID.Major {
			return "", &model.ParseFailure{
				Reason: model.ReasonAmbiguousKeys,
				Input:  raw,
				Detail: fmt.Sprintf("%s=%s and %s=%s disagree on major version (%d vs %d)",
					keyRuntimeVersion, specific, keyVersion, generic, specificID.Major, genericID.Major),
			}
		}
	}

	for _, key := range []string{keyRuntimeVersion, keyVersion, keyFullVersion, keyVMVersion} {
		if v := values[key]; v != "" {
			return v, nil
		}
	}

	return "", &model.ParseFailure{
		Reason: model.ReasonMalformed,
		Input:  raw,
		Detail: "no recognized version key in properties block",
	}
}

// normalizeKey maps release-file keys (JAVA_RUNTIME_VERSION) onto their
// properties equivalents (java.runtime.version).
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", ".")
}

// parseToken parses a single version token into an identity without
// vendor information. Era detection is strict: tokens that are
// version-shaped but fit no known era return UnknownEra.
func parseToken(token string) (*model.VersionIdentity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "empty version token"}
	}
	if strings.HasPrefix(token, "1.") {
		return parseLegacy(token)
	}
	return parseModern(token)
}

// parseLegacy handles the pre-JEP-223 grammar 1.X[.Y][_UPDATE][-SUFFIX].
// The 1.X family normalizes to major=X, which is the documented
// cross-era rule unifying "1.8.0_301" with modern major-8 strings.
func parseLegacy(token string) (*model.VersionIdentity, error) {
	rest, _, update, suffix := splitSuffixes(token)
	rest = strings.TrimPrefix(rest, "1.")

	m := coreRe.FindStringSubmatch(rest)
	if m == nil {
		return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "not a legacy 1.X version"}
	}
	family, _ := strconv.Atoi(m[1])
	if family < 1 || family > 9 {
		return nil, &model.ParseFailure{
			Reason: model.ReasonUnknownEra,
			Input:  token,
			Detail: fmt.Sprintf("legacy family 1.%d does not exist", family),
		}
	}
	if m[3] != "" {
		// legacy grammar is 1.X.Y, never four components
		return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "too many version components for the legacy era"}
	}

	id := &model.VersionIdentity{
		Major:    family,
		Minor:    model.NotApplicable,
		Security: model.NotApplicable,
		Raw:      token,
		Era:      model.EraLegacy,
	}
	if m[2] != "" {
		id.Minor, _ = strconv.Atoi(m[2])
	}
	if update != "" {
		sec, err := strconv.Atoi(update)
		if err != nil {
			return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "non-numeric update component"}
		}
		id.Security = sec
	}
	// legacy build suffixes look like "-b05"
	if strings.HasPrefix(suffix, "b") {
		id.Build = suffix
	}
	return id, nil
}

// parseModern handles the JEP 223 grammar X[.Y[.Z]][_UPDATE][+BUILD]
// with an optional pre-release tag. Fully dotted tokens go through the
// semver parser; shorter tokens fall back to the anchored core regex so
// absent components stay NotApplicable instead of turning into zeros.
func parseModern(token string) (*model.VersionIdentity, error) {
	rest, build, update, _ := splitSuffixes(token)

	id := &model.VersionIdentity{
		Minor:    model.NotApplicable,
		Security: model.NotApplicable,
		Build:    build,
		Raw:      token,
		Era:      model.EraModern,
	}

	if strings.Count(rest, ".") == 2 {
		v, err := semver.NewVersion(rest)
		if err != nil {
			return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: err.Error()}
		}
		id.Major = int(v.Major())
		id.Minor = int(v.Minor())
		id.Security = int(v.Patch())
	} else {
		m := coreRe.FindStringSubmatch(rest)
		if m == nil {
			return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "not a recognized version token"}
		}
		id.Major, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			id.Minor, _ = strconv.Atoi(m[2])
		}
	}

	if id.Major < 5 {
		return nil, &model.ParseFailure{
			Reason: model.ReasonUnknownEra,
			Input:  token,
			Detail: fmt.Sprintf("major %d matches no modern format era", id.Major),
		}
	}

	if update != "" && id.Security == model.NotApplicable {
		sec, err := strconv.Atoi(update)
		if err != nil {
			return nil, &model.ParseFailure{Reason: model.ReasonMalformed, Input: token, Detail: "non-numeric update component"}
		}
		id.Security = sec
	}

	return id, nil
}

// splitSuffixes peels build metadata (+...), a pre-release or vendor
// suffix (-...), and an update component (_...) off a version token,
// returning the bare numeric core. Handles both "9-ea+19" and
// "21.0.4+7-LTS" orderings.
func splitSuffixes(token string) (core, build, update, suffix string) {
	core = token
	if i := strings.IndexByte(core, '+'); i >= 0 {
		build = core[i+1:]
		core = core[:i]
	}
	if i := strings.IndexByte(core, '-'); i >= 0 {
		suffix = core[i+1:]
		core = core[:i]
	}
	if i := strings.IndexByte(core, '_'); i >= 0 {
		update = core[i+1:]
		core = core[:i]
	}
	return core, build, update, suffix
}
