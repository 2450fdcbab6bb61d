package soft

import (
	"fmt"
	"strings"
	"text/scanner"
)

// declarations collects the top-level interface of a shader.
type declarations struct {
	attributes []string
	uniforms   []string
	varyings   map[string]string
}

var qualifiers = map[string]bool{
	"attribute": true,
	"uniform":   true,
	"varying":   true,
	"const":     true,
	"invariant": true,
	"highp":     true,
	"mediump":   true,
	"lowp":      true,
}

var types = map[string]bool{
	"void": true, "bool": true, "int": true, "float": true,
	"vec2": true, "vec3": true, "vec4": true,
	"bvec2": true, "bvec3": true, "bvec4": true,
	"ivec2": true, "ivec3": true, "ivec4": true,
	"mat2": true, "mat3": true, "mat4": true,
	"sampler2D": true, "samplerCube": true,
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

type token struct {
	text string
	line int
}

func syntaxError(tok token) error {
	return fmt.Errorf("ERROR: 0:%d: '%s' : syntax error", tok.line, tok.text)
}

// parseGLSL checks the top-level structure of a GLSL ES 1.00 shader and collects its
// attribute, uniform and varying declarations. It does not type-check.
func parseGLSL(src string) (declarations, error) {
	decls := declarations{varyings: make(map[string]string)}

	if strings.TrimSpace(src) == "" {
		return decls, fmt.Errorf("ERROR: 0:1: '' : empty shader source")
	}

	tokens, err := tokenize(src)
	if err != nil {
		return decls, err
	}

	var (
		stack     []rune
		statement []token
		atStart   = true
		hasMain   = false
		inStruct  = false
		lastLine  = 1
		userTypes = make(map[string]bool)
	)
	for _, tok := range tokens {
		lastLine = tok.line
		r := []rune(tok.text)[0]

		switch r {
		case '(', '[', '{':
			if len(stack) == 0 {
				if atStart {
					return decls, syntaxError(tok)
				}
				if r == '(' && len(statement) == 2 && statement[0].text == "void" && statement[1].text == "main" {
					hasMain = true
				}
				if r == '{' && len(statement) > 0 && statement[0].text == "struct" {
					if len(statement) > 1 {
						userTypes[statement[1].text] = true
					}
					inStruct = true
				}
			}
			stack = append(stack, r)
			continue
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != closers[r] {
				return decls, syntaxError(tok)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 && r == '}' {
				if inStruct {
					// struct S { ... } s; the declarator list is still to come.
					inStruct = false
					continue
				}
				atStart = true
				statement = statement[:0]
			}
			continue
		}

		if len(stack) > 0 {
			continue
		}

		if atStart {
			if tok.text == ";" {
				continue
			}
			if !qualifiers[tok.text] && !types[tok.text] && !userTypes[tok.text] &&
				tok.text != "precision" && tok.text != "struct" {
				return decls, syntaxError(tok)
			}
			atStart = false
		}

		switch tok.text {
		case ";":
			decls.collect(statement)
			statement = statement[:0]
			atStart = true
		case ",":
		default:
			statement = append(statement, tok)
		}
	}

	if len(stack) > 0 || !atStart {
		return decls, fmt.Errorf("ERROR: 0:%d: '' : syntax error: unexpected end of file", lastLine)
	}
	if !hasMain {
		return decls, fmt.Errorf("ERROR: 0:%d: 'main' : function not defined", lastLine)
	}
	return decls, nil
}

func tokenize(src string) ([]token, error) {
	// The preprocessor is not modelled: directives are blanked so line numbers hold.
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			lines[i] = ""
		}
	}

	var s scanner.Scanner
	s.Init(strings.NewReader(strings.Join(lines, "\n")))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanComments | scanner.SkipComments
	var scanErr error
	s.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("ERROR: 0:%d: '' : %s", s.Pos().Line, msg)
		}
	}

	var tokens []token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		switch tok {
		case '"', '\'', '`', '@', '$', '\\':
			return nil, syntaxError(token{text: text, line: s.Position.Line})
		}
		tokens = append(tokens, token{text: text, line: s.Position.Line})
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return tokens, nil
}

// collect records a finished top-level statement if it declares shader inputs.
func (d *declarations) collect(statement []token) {
	if len(statement) == 0 {
		return
	}
	storage := statement[0].text
	if storage == "invariant" && len(statement) > 1 {
		storage = statement[1].text
	}
	if storage != "attribute" && storage != "uniform" && storage != "varying" {
		return
	}

	var rest []string
	for _, tok := range statement {
		if !qualifiers[tok.text] {
			rest = append(rest, tok.text)
		}
	}
	if len(rest) < 2 {
		return
	}
	typ, names := rest[0], rest[1:]
	for _, name := range names {
		switch storage {
		case "attribute":
			d.attributes = append(d.attributes, name)
		case "uniform":
			d.uniforms = append(d.uniforms, name)
		case "varying":
			d.varyings[name] = typ
		}
	}
}
