package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// compiledPattern is a glob compiled to a regular expression.
type compiledPattern struct {
	re      *regexp.Regexp
	source  string
	dirOnly bool // trailing slash: matches directories only
}

// compilePattern compiles an rsync-style glob. A leading slash, or any slash
// inside the pattern, anchors it to the scan root; otherwise it matches the
// basename or any trailing run of path components.
//
//	*     any run of characters except /
//	**    any run of characters including /
//	?     one character except /
//	[...] character class, [!...] negated
func compilePattern(pattern string) (*compiledPattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty filter pattern")
	}

	cp := &compiledPattern{source: pattern}
	body := pattern
	if trimmed, ok := strings.CutSuffix(body, "/"); ok {
		cp.dirOnly = true
		body = trimmed
	}

	anchored := strings.Contains(body, "/")
	body = strings.TrimPrefix(body, "/")

	prefix := "(^|/)"
	if anchored {
		prefix = "^"
	}

	re, err := regexp.Compile(prefix + translate(body) + "$")
	if err != nil {
		return nil, fmt.Errorf("filter pattern %q: %w", pattern, err)
	}
	cp.re = re
	return cp, nil
}

func (cp *compiledPattern) match(relPath string, isDir bool) bool {
	if cp.dirOnly && !isDir {
		return false
	}
	return cp.re.MatchString(relPath)
}

func (cp *compiledPattern) String() string { return cp.source }

// translate rewrites glob syntax into regexp syntax.
func translate(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); {
		switch c := glob[i]; c {
		case '*':
			switch {
			case strings.HasPrefix(glob[i:], "**/"):
				b.WriteString("(.*/)?")
				i += 3
			case strings.HasPrefix(glob[i:], "**"):
				b.WriteString(".*")
				i += 2
			default:
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		case '[':
			end := classEnd(glob, i)
			if end < 0 {
				b.WriteString(`\[`)
				i++
				continue
			}
			class := glob[i+1 : end]
			if rest, ok := strings.CutPrefix(class, "!"); ok {
				class = "^" + rest
			}
			b.WriteString("[" + class + "]")
			i = end + 1
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
			i++
		}
	}
	return b.String()
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1. A ']' directly after '[' or '[!' is a literal member.
func classEnd(glob string, start int) int {
	j := start + 1
	if j < len(glob) && glob[j] == '!' {
		j++
	}
	if j < len(glob) && glob[j] == ']' {
		j++
	}
	if k := strings.IndexByte(glob[j:], ']'); k >= 0 {
		return j + k
	}
	return -1
}
