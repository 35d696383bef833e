package siteconfig

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/tidwall/jsonc"
)

var moduleExport = regexp.MustCompile(`^\s*(?:module\.exports\s*=|export\s+default)\s*`)

// moduleLiteral extracts the exported object literal from a config module and
// rewrites it into YAML flow syntax: single-quoted and template strings become
// double-quoted, comments and trailing commas are removed. Bare keys are left
// alone since YAML flow mappings accept them.
func moduleLiteral(src []byte) ([]byte, error) {
	rewritten, err := rewriteJSLexemes(src)
	if err != nil {
		return nil, err
	}
	stripped := jsonc.ToJSON(rewritten)

	loc := moduleExport.FindIndex(stripped)
	if loc == nil {
		return nil, fmt.Errorf("no module.exports or export default found")
	}
	body := bytes.TrimSpace(stripped[loc[1]:])
	body = bytes.TrimSpace(bytes.TrimSuffix(body, []byte(";")))
	if len(body) == 0 || body[0] != '{' || body[len(body)-1] != '}' {
		return nil, fmt.Errorf("module export must be an object literal")
	}
	return body, nil
}

type lexState int

const (
	lexCode lexState = iota
	lexDouble
	lexSingle
	lexTemplate
	lexLineComment
	lexBlockComment
)

// rewriteJSLexemes turns JS-only string forms into JSON strings, replaces
// tabs outside strings with spaces and makes sure every key colon is followed
// by whitespace. Comments are copied through untouched.
func rewriteJSLexemes(src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)+16)
	state := lexCode
	line := 1
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\n' {
			line++
		}
		switch state {
		case lexCode:
			switch {
			case c == '"':
				state = lexDouble
				out = append(out, c)
			case c == '\'':
				state = lexSingle
				out = append(out, '"')
			case c == '`':
				state = lexTemplate
				out = append(out, '"')
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = lexLineComment
				out = append(out, c)
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = lexBlockComment
				out = append(out, c, '*')
				i++
			case c == '\t':
				out = append(out, ' ')
			case c == ':':
				// YAML only ends a flow key at ": ", so compact {a:1} needs the space.
				out = append(out, c)
				if i+1 < len(src) && !isJSSpace(src[i+1]) {
					out = append(out, ' ')
				}
			default:
				out = append(out, c)
			}
		case lexDouble:
			if c == '\\' && i+1 < len(src) && src[i+1] == '\'' {
				// \' is legal in JS but not in JSON or YAML.
				out = append(out, '\'')
				i++
				continue
			}
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == '"' {
				state = lexCode
			}
		case lexSingle, lexTemplate:
			quote := byte('\'')
			if state == lexTemplate {
				quote = '`'
			}
			switch {
			case c == '\\' && i+1 < len(src):
				i++
				if src[i] == quote {
					out = append(out, quote)
				} else {
					out = append(out, '\\', src[i])
				}
			case c == quote:
				state = lexCode
				out = append(out, '"')
			case c == '"':
				out = append(out, '\\', '"')
			case c == '\n' && state == lexTemplate:
				out = append(out, '\\', 'n')
			case c == '\n':
				return nil, fmt.Errorf("line %d: unterminated string", line-1)
			case c == '$' && state == lexTemplate && i+1 < len(src) && src[i+1] == '{':
				return nil, fmt.Errorf("line %d: template interpolation is not supported", line)
			default:
				out = append(out, c)
			}
		case lexLineComment:
			if c == '\t' {
				c = ' '
			}
			out = append(out, c)
			if c == '\n' {
				state = lexCode
			}
		case lexBlockComment:
			if c == '\t' {
				c = ' '
			}
			out = append(out, c)
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out = append(out, '/')
				i++
				state = lexCode
			}
		}
	}
	switch state {
	case lexDouble, lexSingle, lexTemplate:
		return nil, fmt.Errorf("unterminated string at end of input")
	case lexBlockComment:
		return nil, fmt.Errorf("unterminated block comment")
	}
	return out, nil
}

func isJSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
