package parse

import (
	"fmt"
	"strings"

	"github.com/colalang/cola/cola/lexer"
)

// Parse tokenizes and parses Cola source, Markdown-hosted or bare. A bare
// .cola file is treated as the interior of a single implicit ```cola block.
func Parse(file lexer.FileRef, src string, bareCola bool) (*Document, error) {
	if bareCola {
		src = "```cola\n" + src + "\n```\n"
	}
	p := &parser{s: lexer.New(file, src)}
	return p.parseDocument()
}

type parser struct {
	s *lexer.Scanner
}

func (p *parser) errorf(pos lexer.Pos, expected []string, format string, args ...any) error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...), Expected: expected}
}

func (p *parser) nextCola() lexer.TokenType {
	tt := p.s.NextColaToken()
	for tt == lexer.WhitespaceToken {
		tt = p.s.NextColaToken()
	}
	return tt
}

func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}
	tt := p.s.NextMarkdownToken()
	for tt != lexer.EOFToken {
		switch tt {
		case lexer.HeadingLineToken:
			doc.Items = append(doc.Items, Heading{Pos: p.s.Start(), Text: trimHeading(p.s.Token())})
		case lexer.ParagraphLineToken:
			doc.Items = append(doc.Items, Paragraph{Pos: p.s.Start(), Text: trimLine(p.s.Token())})
		case lexer.RegularCodeStartUnnamedToken, lexer.RegularCodeStartNamedToken:
			block, err := p.parseRegularBlock(tt)
			if err != nil {
				return nil, err
			}
			doc.Items = append(doc.Items, block)
		case lexer.ColaCodeStartToken:
			block, err := p.parseColaBlock()
			if err != nil {
				return nil, err
			}
			doc.Items = append(doc.Items, block)
		case lexer.UnexpectedCharacterErrorToken:
			return nil, p.errorf(p.s.Start(), nil, "malformed fence line %q", p.s.Token())
		default:
			return nil, p.errorf(p.s.Start(), nil, "unexpected token scanning document")
		}
		tt = p.s.NextMarkdownToken()
	}
	return doc, nil
}

func (p *parser) parseRegularBlock(startTT lexer.TokenType) (RegularBlock, error) {
	pos := p.s.Start()
	tag := ""
	if startTT == lexer.RegularCodeStartNamedToken {
		tag = strings.TrimSpace(strings.TrimPrefix(trimLine(p.s.Token()), "```"))
	}
	tt := p.s.NextMarkdownToken()
	for tt != lexer.RegularCodeEndToken {
		if tt == lexer.EOFToken {
			return RegularBlock{}, p.errorf(pos, []string{"```"}, "unterminated fenced code block")
		}
		tt = p.s.NextMarkdownToken()
	}
	return RegularBlock{Pos: pos, Tag: tag}, nil
}

func (p *parser) parseColaBlock() (ColaBlock, error) {
	pos := p.s.Start()
	var entities []Entity
	tt := p.nextCola()
	for tt != lexer.ColaCodeEndToken {
		if tt == lexer.EOFToken {
			return ColaBlock{}, p.errorf(pos, []string{"```"}, "unterminated cola code block")
		}
		// A stray ';' directly between top-level entities is tolerated as a
		// no-op, matching spec.md's own worked example of a single-field
		// entity closed by two semicolons.
		if tt == lexer.SemicolonToken {
			tt = p.nextCola()
			continue
		}
		if tt != lexer.IdentifierToken {
			return ColaBlock{}, p.errorf(p.s.Start(), []string{"identifier"}, "expected entity name, found %s", describeCurrent(p.s))
		}
		namePos, name := p.s.Start(), p.s.Token()
		header := p.nextCola()
		entity, next, err := p.parseEntityHeaderAndBody(namePos, name, header)
		if err != nil {
			return ColaBlock{}, err
		}
		entities = append(entities, entity)
		tt = next
	}
	return ColaBlock{Pos: pos, Entities: entities}, nil
}

// parseEntityHeaderAndBody parses the part of an Entity production after its
// leading Ident has been consumed: an optional `plural Ident`, then `:
// EntityBody ;`. tt is the token immediately following the leading Ident.
// It returns the token now current immediately after the trailing `;`.
func (p *parser) parseEntityHeaderAndBody(namePos lexer.Pos, name string, tt lexer.TokenType) (Entity, lexer.TokenType, error) {
	isPlural := false
	var pluralName string
	var pluralPos lexer.Pos

	if tt == lexer.PluralKeywordToken {
		isPlural = true
		tt = p.nextCola()
		if tt != lexer.IdentifierToken {
			return Entity{}, 0, p.errorf(p.s.Start(), []string{"identifier"}, "expected plural name, found %s", describeCurrent(p.s))
		}
		pluralPos, pluralName = p.s.Start(), p.s.Token()
		tt = p.nextCola()
	}

	if tt != lexer.ColonToken {
		return Entity{}, 0, p.errorf(p.s.Start(), []string{":"}, "expected ':', found %s", describeCurrent(p.s))
	}
	tt = p.nextCola()

	fields, children, next, err := p.parseEntityBody(tt)
	if err != nil {
		return Entity{}, 0, err
	}
	if next != lexer.SemicolonToken {
		return Entity{}, 0, p.errorf(p.s.Start(), []string{";"}, "expected ';', found %s", describeCurrent(p.s))
	}
	after := p.nextCola()

	return Entity{
		Pos:        namePos,
		Name:       name,
		IsPlural:   isPlural,
		PluralName: pluralName,
		PluralPos:  pluralPos,
		Fields:     fields,
		Children:   children,
	}, after, nil
}

// parseEntityBody parses zero or more NestedBlocks (a FieldList or a nested
// Entity each), stopping at the first token that cannot start one — which
// must be the closing `;` of the enclosing entity; the caller checks that.
func (p *parser) parseEntityBody(tt lexer.TokenType) ([]Field, []Entity, lexer.TokenType, error) {
	var fields []Field
	var children []Entity

	for tt == lexer.IdentifierToken {
		namePos, name := p.s.Start(), p.s.Token()
		tt2 := p.nextCola()

		switch tt2 {
		case lexer.PluralKeywordToken:
			child, next, err := p.parseEntityHeaderAndBody(namePos, name, tt2)
			if err != nil {
				return nil, nil, 0, err
			}
			children = append(children, child)
			tt = next

		case lexer.ColonToken:
			tt3 := p.nextCola()
			switch tt3 {
			case lexer.StringToken, lexer.NumberToken, lexer.TrueKeywordToken, lexer.FalseKeywordToken:
				list, next, err := p.parseFieldList(namePos, name, tt3)
				if err != nil {
					return nil, nil, 0, err
				}
				fields = append(fields, list...)
				tt = next

			case lexer.SemicolonToken:
				p.nextCola()
				children = append(children, Entity{Pos: namePos, Name: name})
				tt = p.s.TokenType()

			case lexer.IdentifierToken:
				innerFields, innerChildren, next, err := p.parseEntityBody(tt3)
				if err != nil {
					return nil, nil, 0, err
				}
				if next != lexer.SemicolonToken {
					return nil, nil, 0, p.errorf(p.s.Start(), []string{";"}, "expected ';', found %s", describeCurrent(p.s))
				}
				p.nextCola()
				children = append(children, Entity{Pos: namePos, Name: name, Fields: innerFields, Children: innerChildren})
				tt = p.s.TokenType()

			default:
				return nil, nil, 0, p.errorf(p.s.Start(), []string{"field value", ";", "identifier"}, "unexpected %s after ':'", describeCurrent(p.s))
			}

		default:
			return nil, nil, 0, p.errorf(p.s.Start(), []string{":", "plural"}, "expected ':' or 'plural', found %s", describeCurrent(p.s))
		}
	}

	return fields, children, tt, nil
}

// parseFieldList parses `Ident : FieldValue (, Ident : FieldValue)*` where
// the first Ident/colon has already been consumed by the caller; valueTT is
// the scanner's current token, the first field's value.
func (p *parser) parseFieldList(namePos lexer.Pos, name string, valueTT lexer.TokenType) ([]Field, lexer.TokenType, error) {
	first, err := p.readFieldValue(namePos, name, valueTT)
	if err != nil {
		return nil, 0, err
	}
	fields := []Field{first}
	tt := p.nextCola()

	for tt == lexer.CommaToken {
		tt = p.nextCola()
		if tt != lexer.IdentifierToken {
			return nil, 0, p.errorf(p.s.Start(), []string{"identifier"}, "expected field name after ',', found %s", describeCurrent(p.s))
		}
		fieldPos, fieldName := p.s.Start(), p.s.Token()
		tt = p.nextCola()
		if tt != lexer.ColonToken {
			return nil, 0, p.errorf(p.s.Start(), []string{":"}, "expected ':', found %s", describeCurrent(p.s))
		}
		tt = p.nextCola()
		field, err := p.readFieldValue(fieldPos, fieldName, tt)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, field)
		tt = p.nextCola()
	}

	return fields, tt, nil
}

func (p *parser) readFieldValue(pos lexer.Pos, name string, tt lexer.TokenType) (Field, error) {
	switch tt {
	case lexer.StringToken:
		return Field{Pos: pos, Name: name, Value: FieldValue{Pos: p.s.Start(), Kind: StringValue, Raw: p.s.Token()}}, nil
	case lexer.NumberToken:
		return Field{Pos: pos, Name: name, Value: FieldValue{Pos: p.s.Start(), Kind: NumberValue, Raw: p.s.Token()}}, nil
	case lexer.TrueKeywordToken:
		return Field{Pos: pos, Name: name, Value: FieldValue{Pos: p.s.Start(), Kind: BoolValue, Bool: true}}, nil
	case lexer.FalseKeywordToken:
		return Field{Pos: pos, Name: name, Value: FieldValue{Pos: p.s.Start(), Kind: BoolValue, Bool: false}}, nil
	default:
		return Field{}, p.errorf(p.s.Start(), []string{"string", "number", "true", "false"}, "expected a field value, found %s", describeCurrent(p.s))
	}
}

func describeCurrent(s *lexer.Scanner) string {
	if s.TokenType() == lexer.EOFToken {
		return "end of input"
	}
	return s.TokenType().String() + " " + quoteShort(s.Token())
}

func quoteShort(s string) string {
	const max = 24
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) > max {
		s = s[:max] + "..."
	}
	return "\"" + s + "\""
}

func trimHeading(raw string) string {
	s := trimLine(raw)
	i := 0
	for i < len(s) && s[i] == '#' {
		i++
	}
	return strings.TrimSpace(s[i:])
}

func trimLine(raw string) string {
	return strings.TrimSuffix(raw, "\n")
}
