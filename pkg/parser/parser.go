// Package parser is a hand-written recursive-descent parser for AlanFL,
// translating directly from the reference implementation's grammar rather
// than wrapping a generic CST library — the language is small and fixed
// enough that a parser generator or incremental-parse library buys nothing
// a direct translation doesn't already give for free.
package parser

import (
	"fmt"
	"strconv"

	"alanfl/pkg/ast"
	"alanfl/pkg/diagnostics"
	"alanfl/pkg/lexer"
	"alanfl/pkg/numeric"
	"alanfl/pkg/token"
)

// Parser consumes a lexer's token stream and builds an *ast.Module,
// recovering from malformed constructs in panic mode rather than stopping
// at the first error.
type Parser struct {
	lex  *lexer.Lexer
	tok  token.Token
	prev token.Position
	diag diagnostics.List
}

// New creates a parser over src.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.tok = p.lex.Next()
	return p
}

// Parse runs the parser to completion and returns the module it built
// together with whatever diagnostics panic-mode recovery accumulated. The
// module is always non-nil, even when diagnostics are non-empty: recovery
// substitutes an ast.Empty node for a malformed statement and an
// ast.NewVarDecl(nil) for a malformed declaration, so a caller can still
// inspect the surviving declarations. Stray top-level tokens are skipped
// without a substitute.
func Parse(src string) (*ast.Module, *diagnostics.List) {
	p := New(src)
	return p.parseModule(), &p.diag
}

//-----------------------------------------------------------------------------
// Token-stream plumbing
//-----------------------------------------------------------------------------

func (p *Parser) advance() token.Token {
	t := p.tok
	p.prev = t.End
	p.tok = p.lex.Next()
	return t
}

func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind, or records a diagnostic at the current
// position and returns the current (wrong) token without consuming it, so
// callers can keep synchronizing instead of consuming good lookahead.
func (p *Parser) expect(kind token.Kind) token.Token {
	if t, ok := p.accept(kind); ok {
		return t
	}
	p.errorf("expected %s, found %s", kind, p.tok.Kind)
	return p.tok
}

func (p *Parser) errorf(format string, args ...any) {
	p.diag.Add(p.tok.Begin, fmt.Sprintf(format, args...))
}

//-----------------------------------------------------------------------------
// Span helpers
//-----------------------------------------------------------------------------

func spanFrom(begin token.Position, end token.Position) ast.Span {
	return ast.Span{
		Begin: ast.Position{Line: begin.Line, Column: begin.Column},
		End:   ast.Position{Line: end.Line, Column: end.Column},
	}
}

func (p *Parser) finish(node ast.Node, begin token.Position) ast.Node {
	ast.SetSpan(node, spanFrom(begin, p.prev))
	return node
}

//-----------------------------------------------------------------------------
// Recovery sets
//-----------------------------------------------------------------------------

var statementSync = map[token.Kind]bool{
	token.KwReturn:  true,
	token.KwBreak:   true,
	token.KwIf:      true,
	token.KwElse:    true,
	token.KwVar:     true,
	token.Semicolon: true,
	token.RBrace:    true,
}

var moduleSync = map[token.Kind]bool{
	token.Semicolon: true,
	token.KwVar:     true,
}

// synchronize discards tokens until the current one is in set, EOF, or
// already past it (so callers that expect to consume the sync token
// themselves still can).
func (p *Parser) synchronize(set map[token.Kind]bool) {
	for !p.at(token.EOF) && !set[p.tok.Kind] {
		p.advance()
	}
}

//-----------------------------------------------------------------------------
// Module / declarations
//-----------------------------------------------------------------------------

func (p *Parser) parseModule() *ast.Module {
	begin := p.tok.Begin
	var decls []*ast.VarDecl
	for !p.at(token.EOF) {
		if _, ok := p.accept(token.Semicolon); ok {
			continue
		}
		if !p.at(token.KwVar) {
			p.errorf("expected a top-level var declaration, found %s", p.tok.Kind)
			p.synchronize(moduleSync)
			continue
		}
		decls = append(decls, p.parseVarDecl())
	}
	mod := ast.NewModule(decls)
	p.finish(mod, begin)
	return mod
}

// parseVarDecl parses `var name [= expr] (, name [= expr])* ;`. The leading
// `var` keyword has already been confirmed present by the caller.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	begin := p.tok.Begin
	p.advance() // 'var'

	before := len(p.diag.Items())

	var vars []*ast.VarInit
	vars = append(vars, p.parseVarInit())
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		vars = append(vars, p.parseVarInit())
	}

	if len(p.diag.Items()) > before {
		p.synchronize(statementSync)
		p.accept(token.Semicolon)
		vars = nil
	} else {
		p.expect(token.Semicolon)
	}

	decl := ast.NewVarDecl(vars)
	p.finish(decl, begin)
	return decl
}

// parseVarInit parses `name [= expr]`, used for var declarations, function
// parameters, and capture lists alike.
func (p *Parser) parseVarInit() *ast.VarInit {
	begin := p.tok.Begin
	idTok := p.expect(token.Identifier)
	id := ast.NewIdentifier(idTok.Text)
	ast.SetSpan(id, spanFrom(idTok.Begin, idTok.End))

	var init ast.Expression
	if _, ok := p.accept(token.Assign); ok {
		init = p.parseExpr()
	}
	vi := ast.NewVarInit(id, init)
	p.finish(vi, begin)
	return vi
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	begin := p.tok.Begin

	switch p.tok.Kind {
	case token.Semicolon:
		p.advance()
		empty := ast.NewEmpty()
		p.finish(empty, begin)
		return empty
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwReturn:
		return p.parseReturn()
	default:
		expr := p.parseExpr()
		p.expect(token.Semicolon)
		stmt := ast.NewExprStmt(expr)
		p.finish(stmt, begin)
		return stmt
	}
}

func (p *Parser) parseBlock() *ast.Block {
	begin := p.tok.Begin
	p.advance() // '{'

	var stmts []ast.Statement
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatementRecovering())
	}
	if _, ok := p.accept(token.RBrace); !ok {
		p.errorf("expected '}' to close block, found %s", p.tok.Kind)
		p.synchronize(map[token.Kind]bool{token.RBrace: true})
		p.accept(token.RBrace)
	}

	block := ast.NewBlock(stmts)
	p.finish(block, begin)
	return block
}

// parseStatementRecovering parses one statement, and if the statement
// itself turns out malformed, synchronizes to the nearest statement
// boundary and substitutes an Empty node rather than aborting the block.
// A diagnostic raised anywhere inside the statement, including inside a
// nested block, counts as the statement being malformed.
func (p *Parser) parseStatementRecovering() ast.Statement {
	begin := p.tok.Begin
	before := len(p.diag.Items())
	stmt := p.parseStatement()
	if len(p.diag.Items()) > before {
		p.synchronize(statementSync)
		p.accept(token.Semicolon)
		empty := ast.NewEmpty()
		p.finish(empty, begin)
		return empty
	}
	return stmt
}

func (p *Parser) parseIf() ast.Statement {
	begin := p.tok.Begin
	p.advance() // 'if'
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseStatement()

	var els ast.Statement
	if _, ok := p.accept(token.KwElse); ok {
		els = p.parseStatement()
	}
	stmt := ast.NewIf(cond, then, els)
	p.finish(stmt, begin)
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	begin := p.tok.Begin
	p.advance() // 'while'
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStatement()

	stmt := ast.NewWhile(cond, body)
	p.finish(stmt, begin)
	return stmt
}

// maxBreakCount caps `break N` so an absurd literal (or an overflowing one)
// can't be mistaken for a sane loop-nesting depth; no real AlanFL program
// nests anywhere near this deep.
const maxBreakCount = 1 << 20

func (p *Parser) parseBreak() ast.Statement {
	begin := p.tok.Begin
	p.advance() // 'break'

	count := uint(1)
	if numTok, ok := p.accept(token.Integer); ok {
		n, err := strconv.ParseUint(numTok.Text, 10, 64)
		if err != nil || n == 0 || n > maxBreakCount {
			p.diag.Add(numTok.Begin, "break count out of range, how can you break so many loops? using 1 instead")
			count = 1
		} else {
			count = uint(n)
		}
	}
	p.expect(token.Semicolon)

	stmt := ast.NewBreak(count)
	p.finish(stmt, begin)
	return stmt
}

func (p *Parser) parseReturn() ast.Statement {
	begin := p.tok.Begin
	p.advance() // 'return'

	var expr ast.Expression
	if !p.at(token.Semicolon) {
		expr = p.parseExpr()
	}
	p.expect(token.Semicolon)

	stmt := ast.NewReturn(expr)
	p.finish(stmt, begin)
	return stmt
}

//-----------------------------------------------------------------------------
// Expressions: or -> and -> eq/cmp -> rel/cmp -> assign -> add/sub ->
// mul/div -> unary -> call -> primary.
//
// Assignment sits between comparisons and additive operators rather than
// at the bottom of the precedence chain, a deliberate quirk of this
// language rather than an oversight (`a < b = c` parses as `a < (b = c)`,
// and `a + b = c` as `(a + b) = c`).
//-----------------------------------------------------------------------------

func (p *Parser) parseExpr() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	begin := p.tok.Begin
	left := p.parseAnd()
	for {
		if _, ok := p.accept(token.LOr); !ok {
			return left
		}
		right := p.parseAnd()
		bo := ast.NewBinOp(left, right, ast.OpLOr)
		p.finish(bo, begin)
		left = bo
	}
}

func (p *Parser) parseAnd() ast.Expression {
	begin := p.tok.Begin
	left := p.parseEqCmp()
	for {
		if _, ok := p.accept(token.LAnd); !ok {
			return left
		}
		right := p.parseEqCmp()
		bo := ast.NewBinOp(left, right, ast.OpLAnd)
		p.finish(bo, begin)
		left = bo
	}
}

func (p *Parser) parseEqCmp() ast.Expression {
	begin := p.tok.Begin
	left := p.parseRelCmp()
	for {
		var op ast.BinaryOperator
		switch p.tok.Kind {
		case token.Eq:
			op = ast.OpEq
		case token.Neq:
			op = ast.OpNeq
		default:
			return left
		}
		p.advance()
		right := p.parseRelCmp()
		bo := ast.NewBinOp(left, right, op)
		p.finish(bo, begin)
		left = bo
	}
}

func (p *Parser) parseRelCmp() ast.Expression {
	begin := p.tok.Begin
	left := p.parseAssign()
	for {
		var op ast.BinaryOperator
		switch p.tok.Kind {
		case token.Lt:
			op = ast.OpLt
		case token.LtEq:
			op = ast.OpLtEq
		case token.Gt:
			op = ast.OpGt
		case token.GtEq:
			op = ast.OpGtEq
		default:
			return left
		}
		p.advance()
		right := p.parseAssign()
		bo := ast.NewBinOp(left, right, op)
		p.finish(bo, begin)
		left = bo
	}
}

// parseAssign is right-associative: `a = b = c` parses as `a = (b = c)`.
func (p *Parser) parseAssign() ast.Expression {
	begin := p.tok.Begin
	left := p.parseAddSub()
	if _, ok := p.accept(token.Assign); !ok {
		return left
	}
	right := p.parseAssign()
	bo := ast.NewBinOp(left, right, ast.OpAssign)
	p.finish(bo, begin)
	return bo
}

func (p *Parser) parseAddSub() ast.Expression {
	begin := p.tok.Begin
	left := p.parseMulDiv()
	for {
		var op ast.BinaryOperator
		switch p.tok.Kind {
		case token.Add:
			op = ast.OpAdd
		case token.Sub:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMulDiv()
		bo := ast.NewBinOp(left, right, op)
		p.finish(bo, begin)
		left = bo
	}
}

func (p *Parser) parseMulDiv() ast.Expression {
	begin := p.tok.Begin
	left := p.parseUnary()
	for {
		var op ast.BinaryOperator
		switch p.tok.Kind {
		case token.Mul:
			op = ast.OpMul
		case token.Div:
			op = ast.OpDiv
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		bo := ast.NewBinOp(left, right, op)
		p.finish(bo, begin)
		left = bo
	}
}

// parseUnary is right-associative via direct recursion: `- - x` parses as
// `-(-x)`.
func (p *Parser) parseUnary() ast.Expression {
	begin := p.tok.Begin
	switch p.tok.Kind {
	case token.Sub:
		p.advance()
		operand := p.parseUnary()
		uo := ast.NewUnOp(operand, ast.OpNeg)
		p.finish(uo, begin)
		return uo
	case token.LNot:
		p.advance()
		operand := p.parseUnary()
		uo := ast.NewUnOp(operand, ast.OpLNot)
		p.finish(uo, begin)
		return uo
	default:
		return p.parseCall()
	}
}

// parseCall parses postfix call chaining, left-associative:
// `f(a)(b)` calls f(a), then calls the result with (b).
func (p *Parser) parseCall() ast.Expression {
	begin := p.tok.Begin
	expr := p.parsePrimary()
	for p.at(token.LParen) {
		p.advance()
		var args []ast.Expression
		if !p.at(token.RParen) {
			args = append(args, p.parseExpr())
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				args = append(args, p.parseExpr())
			}
		}
		p.expect(token.RParen)
		call := ast.NewFnCall(expr, args)
		p.finish(call, begin)
		expr = call
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	begin := p.tok.Begin

	switch p.tok.Kind {
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	case token.Integer:
		t := p.advance()
		lit := ast.NewInteger(numeric.ParseInt(t.Text))
		p.finish(lit, begin)
		return lit
	case token.Decimal:
		t := p.advance()
		lit := ast.NewDecimal(numeric.ParseDecimal(t.Text))
		p.finish(lit, begin)
		return lit
	case token.Identifier:
		t := p.advance()
		id := ast.NewIdentifier(t.Text)
		p.finish(id, begin)
		return id
	case token.KwTrue:
		p.advance()
		lit := ast.NewBool(true)
		p.finish(lit, begin)
		return lit
	case token.KwFalse:
		p.advance()
		lit := ast.NewBool(false)
		p.finish(lit, begin)
		return lit
	case token.KwFn:
		return p.parseFn()
	default:
		p.errorf("expected an expression, found %s", p.tok.Kind)
		p.advance()
		empty := ast.NewInteger(numeric.NewInt(0))
		p.finish(empty, begin)
		return empty
	}
}

// parseFn parses `fn ['[' varinit,... ']']? ['(' varinit,... ')']? block`.
// Both the capture list and the parameter list are optional; the body is
// not.
func (p *Parser) parseFn() ast.Expression {
	begin := p.tok.Begin
	p.advance() // 'fn'

	var captures []*ast.VarInit
	if _, ok := p.accept(token.LBracket); ok {
		if !p.at(token.RBracket) {
			captures = append(captures, p.parseVarInit())
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				captures = append(captures, p.parseVarInit())
			}
		}
		p.expect(token.RBracket)
	}

	var params []*ast.VarInit
	if _, ok := p.accept(token.LParen); ok {
		if !p.at(token.RParen) {
			params = append(params, p.parseVarInit())
			for {
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
				params = append(params, p.parseVarInit())
			}
		}
		p.expect(token.RParen)
	}

	body := p.parseBlock()
	fn := ast.NewFn(captures, params, body)
	p.finish(fn, begin)
	return fn
}
