package listing

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// nextPageCallback is the name of the site's script function loading the next listing chunk
const nextPageCallback = "get_page"

// Callback represents a script call embedded in markup, e.g. return get_page('/all_news/page/2/','inner','1');
// Only quoted string arguments are supported, which is all the site uses.
type Callback struct {
	Name string
	Args []string
}

// ParseCallback decodes the first call expression found in s
func ParseCallback(s string) (Callback, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return Callback{}, errors.New("no call expression")
	}

	// name is the identifier right before the parenthesis
	head := strings.TrimRight(s[:open], " ")
	start := strings.LastIndexFunc(head, func(r rune) bool {
		return !(r == '_' || r == '$' || r == '.' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	name := head[start+1:]
	if name == "" {
		return Callback{}, errors.New("empty callback name")
	}

	res := Callback{Name: name}
	rest := s[open+1:]
	for {
		rest = strings.TrimLeft(rest, " \t\n")
		if rest == "" {
			return Callback{}, fmt.Errorf("unterminated call %s", name)
		}
		if rest[0] == ')' {
			return res, nil
		}
		quote := rest[0]
		if quote != '\'' && quote != '"' {
			return Callback{}, fmt.Errorf("unquoted argument %d in %s", len(res.Args)+1, name)
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return Callback{}, fmt.Errorf("unterminated argument %d in %s", len(res.Args)+1, name)
		}
		res.Args = append(res.Args, rest[1:end+1])
		rest = strings.TrimLeft(rest[end+2:], " \t\n")
		if strings.HasPrefix(rest, ",") {
			rest = rest[1:]
		}
	}
}

// NextPagePath extracts the relative listing path from a continue affordance attribute.
// HTML entities (&amp;) left in the argument are decoded.
func NextPagePath(attr string) (string, bool) {
	cb, err := ParseCallback(attr)
	if err != nil || cb.Name != nextPageCallback || len(cb.Args) == 0 {
		return "", false
	}
	path := strings.TrimSpace(html.UnescapeString(cb.Args[0]))
	if path == "" {
		return "", false
	}
	return path, true
}

// ResolveLink makes an absolute URL from a link found in markup.
// Entities are decoded, protocol-relative links get https, relative links resolve against root.
func ResolveLink(root *url.URL, link string) (string, error) {
	link = strings.TrimSpace(html.UnescapeString(link))
	if link == "" {
		return "", errors.New("empty link")
	}
	if strings.HasPrefix(link, "//") {
		link = "https:" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	return root.ResolveReference(u).String(), nil
}
