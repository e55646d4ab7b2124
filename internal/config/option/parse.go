package option

import (
	"fmt"
	"strings"
)

// ParseListError describes a syntax problem in a list-edit string.
// Callers render it with the option's display name for context.
type ParseListError struct {
	// Input is the full string that failed to parse.
	Input string
	// Pos is the byte offset where the problem was detected.
	Pos int
	// Problem describes what went wrong.
	Problem string
}

// Error implements the error interface.
func (e *ParseListError) Error() string {
	return fmt.Sprintf("invalid list value %q at offset %d: %s", e.Input, e.Pos, e.Problem)
}

// Render formats the error with the owning option's display name.
func (e *ParseListError) Render(optionName string) string {
	return fmt.Sprintf("problem parsing %s list value %q at offset %d: %s",
		optionName, e.Input, e.Pos, e.Problem)
}

// ParseStringList parses the compact list-edit syntax used when a
// list-valued option is given as a single string:
//
//	"a,b"          one replace edit with items a and b
//	"[a, b]"       the same, bracketed
//	"+[a]"         one add edit
//	"-[b]"         one remove edit
//	"+[a],-[b]"    add then remove, in written order
//
// Items may be bare or quoted with single or double quotes. An empty
// string is an explicit replace-with-nothing.
func ParseStringList(text string) ([]ListEdit, *ParseListError) {
	p := &listParser{input: text}
	return p.parse()
}

type listParser struct {
	input string
	pos   int
}

func (p *listParser) parse() ([]ListEdit, *ParseListError) {
	p.skipSpaces()

	if p.eof() {
		return []ListEdit{Replace()}, nil
	}

	switch p.peek() {
	case '+', '-':
		return p.parseEdits()
	case '[':
		items, err := p.parseBracketed()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if !p.eof() {
			return nil, p.errorf("unexpected trailing content after list")
		}
		return []ListEdit{{Action: ListEditReplace, Items: items}}, nil
	default:
		// Bare comma-separated items replace the accumulated list.
		items, err := p.parseBareItems()
		if err != nil {
			return nil, err
		}
		return []ListEdit{{Action: ListEditReplace, Items: items}}, nil
	}
}

// parseEdits handles a sequence of signed bracketed lists:
// +[..],-[..],...
func (p *listParser) parseEdits() ([]ListEdit, *ParseListError) {
	var edits []ListEdit
	for {
		p.skipSpaces()
		if p.eof() {
			return nil, p.errorf("expected '+' or '-' before a bracketed list")
		}

		var action ListEditAction
		switch p.peek() {
		case '+':
			action = ListEditAdd
		case '-':
			action = ListEditRemove
		default:
			return nil, p.errorf("expected '+' or '-' before a bracketed list")
		}
		p.pos++

		p.skipSpaces()
		if p.eof() || p.peek() != '[' {
			return nil, p.errorf("expected '[' after '%s' sign", action)
		}
		items, err := p.parseBracketed()
		if err != nil {
			return nil, err
		}
		edits = append(edits, ListEdit{Action: action, Items: items})

		p.skipSpaces()
		if p.eof() {
			return edits, nil
		}
		if p.peek() != ',' {
			return nil, p.errorf("expected ',' between list edits")
		}
		p.pos++
	}
}

// parseBracketed consumes "[item, item, ...]" including the brackets.
func (p *listParser) parseBracketed() ([]string, *ParseListError) {
	// Caller guarantees the opening bracket.
	p.pos++
	items := []string{}

	p.skipSpaces()
	if !p.eof() && p.peek() == ']' {
		p.pos++
		return items, nil
	}

	for {
		item, err := p.parseItem(",]")
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpaces()
		if p.eof() {
			return nil, p.errorf("unterminated list, expected ']'")
		}
		switch p.peek() {
		case ']':
			p.pos++
			return items, nil
		case ',':
			p.pos++
			p.skipSpaces()
		default:
			return nil, p.errorf("expected ',' or ']' in list")
		}
	}
}

// parseBareItems consumes comma-separated items up to end of input.
func (p *listParser) parseBareItems() ([]string, *ParseListError) {
	var items []string
	for {
		item, err := p.parseItem(",")
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpaces()
		if p.eof() {
			return items, nil
		}
		if p.peek() != ',' {
			return nil, p.errorf("expected ',' between items")
		}
		p.pos++
		p.skipSpaces()
		if p.eof() {
			return nil, p.errorf("trailing ',' without an item")
		}
	}
}

// parseItem consumes one item, quoted or bare. Bare items end at any
// rune in terminators (or end of input) and are trimmed of surrounding
// whitespace.
func (p *listParser) parseItem(terminators string) (string, *ParseListError) {
	p.skipSpaces()
	if p.eof() {
		return "", p.errorf("expected an item")
	}

	quote := p.peek()
	if quote == '\'' || quote == '"' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != quote {
			p.pos++
		}
		if p.eof() {
			return "", p.errorf("unterminated %c-quoted item", quote)
		}
		item := p.input[start:p.pos]
		p.pos++
		return item, nil
	}

	start := p.pos
	for !p.eof() && !strings.ContainsRune(terminators, rune(p.peek())) {
		p.pos++
	}
	item := strings.TrimSpace(p.input[start:p.pos])
	if item == "" {
		return "", p.errorf("expected an item")
	}
	return item, nil
}

func (p *listParser) skipSpaces() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *listParser) peek() byte {
	return p.input[p.pos]
}

func (p *listParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *listParser) errorf(format string, args ...any) *ParseListError {
	return &ParseListError{
		Input:   p.input,
		Pos:     p.pos,
		Problem: fmt.Sprintf(format, args...),
	}
}
