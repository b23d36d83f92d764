package dom

import "strings"

// The engine needs only a small selector subset: tag, #id, .class,
// [attr] and [attr=value] tests, compounds of those, and comma-separated
// unions. Combinators (descendant, child, sibling) and pseudo-classes are
// not supported; selectors using them match nothing.

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrCond
}

type attrCond struct {
	name     string
	value    string
	hasValue bool
}

// Matches reports whether the element matches the selector. Empty or
// malformed selectors match nothing.
func (e *Element) Matches(selector string) bool {
	comps, ok := parseSelector(selector)
	if !ok {
		return false
	}
	for _, c := range comps {
		if e.matchesCompound(c) {
			return true
		}
	}
	return false
}

// Closest returns the nearest ancestor-or-self matching the selector, or
// nil if none matches before the tree root.
func (e *Element) Closest(selector string) *Element {
	comps, ok := parseSelector(selector)
	if !ok {
		return nil
	}
	for n := e; n != nil; n = n.parent {
		for _, c := range comps {
			if n.matchesCompound(c) {
				return n
			}
		}
	}
	return nil
}

func (e *Element) matchesCompound(c compound) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, e.tag) {
		return false
	}
	if c.id != "" && c.id != e.id {
		return false
	}
	for _, class := range c.classes {
		if !e.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := e.attrs[a.name]
		if !ok {
			return false
		}
		if a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

// parseSelector parses a comma-separated selector list. It returns ok=false
// for empty input or any syntax it does not understand.
func parseSelector(selector string) ([]compound, bool) {
	parts := strings.Split(selector, ",")
	comps := make([]compound, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		c, ok := parseCompound(part)
		if !ok {
			return nil, false
		}
		comps = append(comps, c)
	}
	return comps, true
}

func parseCompound(s string) (compound, bool) {
	var c compound
	i := 0
	// Optional leading tag or universal selector.
	if i < len(s) && (isNameByte(s[i]) || s[i] == '*') {
		start := i
		if s[i] == '*' {
			i++
		} else {
			for i < len(s) && isNameByte(s[i]) {
				i++
			}
		}
		c.tag = s[start:i]
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			name, next, ok := readName(s, i+1)
			if !ok {
				return compound{}, false
			}
			c.id = name
			i = next
		case '.':
			name, next, ok := readName(s, i+1)
			if !ok {
				return compound{}, false
			}
			c.classes = append(c.classes, name)
			i = next
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return compound{}, false
			}
			body := s[i+1 : i+end]
			i += end + 1
			cond, ok := parseAttrCond(body)
			if !ok {
				return compound{}, false
			}
			c.attrs = append(c.attrs, cond)
		default:
			return compound{}, false
		}
	}
	if c.tag == "" && c.id == "" && len(c.classes) == 0 && len(c.attrs) == 0 {
		return compound{}, false
	}
	return c, true
}

func parseAttrCond(body string) (attrCond, bool) {
	eq := strings.IndexByte(body, '=')
	if eq < 0 {
		if body == "" {
			return attrCond{}, false
		}
		return attrCond{name: strings.TrimSpace(body)}, true
	}
	name := strings.TrimSpace(body[:eq])
	value := strings.TrimSpace(body[eq+1:])
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	if name == "" {
		return attrCond{}, false
	}
	return attrCond{name: name, value: value, hasValue: true}, true
}

func readName(s string, i int) (string, int, bool) {
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", i, false
	}
	return s[start:i], i, true
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '-' || b == '_'
}
