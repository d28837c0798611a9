// Package helptext scrapes the fixed-width help output of the host shell
// into structured fields. Every assumption about the help formatter's
// layout (header tokens, field order, anchor shapes) lives in this package,
// behind the Extractor interface, so a structured help source could replace
// the scraping without touching callers.
//
// The input is semi-structured text, not a grammar: extraction is ordered,
// greedy multi-line pattern matching. Header tokens are matched
// case-sensitively at the start of a line, exactly as the formatter emits
// them at a fixed rendering width. A missing section yields an empty field,
// never an error; only text that cannot be decoded fails.
package helptext

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// Fields is the structured result of scraping one command's help text.
type Fields struct {
	Name        string
	Synopsis    string
	Syntax      string
	Description string
	Parameters  []Parameter
	Examples    []Example
}

// Parameter is one repeated PARAMETERS block. All values are carried as
// the text the formatter printed; duplicates pass through in source order.
type Parameter struct {
	Name          string
	Description   string
	Required      string
	Position      string
	DefaultValue  string
	PipelineInput string
	Wildcards     string
}

// Example is one repeated EXAMPLES block. Number is whatever the source
// text says; non-contiguous numbering is preserved.
type Example struct {
	Number int
	Body   string
}

// Extractor turns one help document into Fields.
type Extractor interface {
	Extract(doc string) (*Fields, error)
}

// TextExtractor scrapes the plain-text help layout.
type TextExtractor struct{}

// New creates the default extractor.
func New() *TextExtractor { return &TextExtractor{} }

var (
	reName        = sectionRe("NAME")
	reSynopsis    = sectionRe("SYNOPSIS")
	reSyntax      = sectionRe("SYNTAX")
	reDescription = sectionRe("DESCRIPTION")

	// Top-level section headers sit at column 0.
	reParametersHeader = regexp.MustCompile(`(?m)^PARAMETERS[ \t]*\r?$`)
	reTopLevel         = regexp.MustCompile(`(?m)^\S`)

	// A parameter block is anchored by an indented "-Name ..." line.
	reParamAnchor = regexp.MustCompile(`(?m)^[ \t]+-(\w+)[^\r\n]*\r?\n`)

	reRequired  = fieldRe(`Required\?`)
	rePosition  = fieldRe(`Position\?`)
	reDefault   = fieldRe(`Default value`)
	rePipeline  = fieldRe(`Accept pipeline input\?`)
	reWildcards = fieldRe(`Accept wildcard characters\?`)

	// Field labels, used to avoid mistaking a field line for a missing
	// description line.
	reFieldLabel = regexp.MustCompile(`^(Required\?|Position\?|Default value|Accept pipeline input\?|Accept wildcard characters\?)`)

	// An example block is anchored by a dashed "EXAMPLE n" rule line.
	reExampleAnchor = regexp.MustCompile(`(?m)^[ \t]*-+\s*EXAMPLE\s+(\d+)\s*-+[ \t]*\r?\n`)

	// Three consecutive blank-ish lines terminate an example body.
	reExampleEnd = regexp.MustCompile(`\r?\n[ \t]*\r?\n[ \t]*\r?\n[ \t]*\r?\n`)
)

// sectionRe captures the first non-blank indented line after a top-level
// header token, tolerating blank lines in between.
func sectionRe(header string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + header + `[ \t]*\r?\n(?:[ \t]*\r?\n)*[ \t]+(\S[^\r\n]*)`)
}

// fieldRe captures the value of an indented "Label   value" line.
func fieldRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]+` + label + `[ \t]*([^\r\n]*?)[ \t]*\r?$`)
}

// Extract scrapes one help document. Pure: the same input always yields
// the same Fields, and no state is carried between calls.
func (e *TextExtractor) Extract(doc string) (*Fields, error) {
	if !utf8.ValidString(doc) {
		return nil, apperrors.MalformedInput(apperrors.CategoryExtract, "help text is not valid UTF-8")
	}

	f := &Fields{
		Name:        firstGroup(reName, doc),
		Synopsis:    firstGroup(reSynopsis, doc),
		Syntax:      firstGroup(reSyntax, doc),
		Description: firstGroup(reDescription, doc),
		Parameters:  extractParameters(doc),
		Examples:    extractExamples(doc),
	}
	return f, nil
}

func firstGroup(re *regexp.Regexp, doc string) string {
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractParameters scrapes the PARAMETERS region. The region is split on
// parameter anchor lines first, so field matching within one block can
// never cross into the next parameter's anchor.
func extractParameters(doc string) []Parameter {
	header := reParametersHeader.FindStringIndex(doc)
	if header == nil {
		return nil
	}
	region := doc[header[1]:]
	if next := reTopLevel.FindStringIndex(region); next != nil {
		region = region[:next[0]]
	}

	anchors := reParamAnchor.FindAllStringSubmatchIndex(region, -1)
	params := make([]Parameter, 0, len(anchors))
	for i, a := range anchors {
		name := region[a[2]:a[3]]
		end := len(region)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		params = append(params, parseParameter(name, region[a[1]:end]))
	}
	return params
}

func parseParameter(name, block string) Parameter {
	p := Parameter{
		Name:          name,
		Required:      firstGroup(reRequired, block),
		Position:      firstGroup(rePosition, block),
		DefaultValue:  firstGroup(reDefault, block),
		PipelineInput: firstGroup(rePipeline, block),
		Wildcards:     firstGroup(reWildcards, block),
	}
	// The description is the first non-blank line after the anchor, unless
	// the block jumps straight to the field lines.
	for _, line := range strings.Split(block, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if !reFieldLabel.MatchString(t) {
			p.Description = t
		}
		break
	}
	return p
}

// extractExamples scrapes the repeated EXAMPLE blocks. A body runs to the
// next anchor, or to three consecutive blank-ish lines, whichever comes
// first; numbers are kept exactly as printed.
func extractExamples(doc string) []Example {
	anchors := reExampleAnchor.FindAllStringSubmatchIndex(doc, -1)
	examples := make([]Example, 0, len(anchors))
	for i, a := range anchors {
		n, err := strconv.Atoi(doc[a[2]:a[3]])
		if err != nil {
			continue
		}
		end := len(doc)
		if i+1 < len(anchors) {
			end = anchors[i+1][0]
		}
		body := doc[a[1]:end]
		if cut := reExampleEnd.FindStringIndex(body); cut != nil {
			body = body[:cut[0]]
		}
		examples = append(examples, Example{Number: n, Body: strings.TrimSpace(body)})
	}
	return examples
}
