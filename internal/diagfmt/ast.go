package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"rill/internal/ast"
	"rill/internal/source"
)

// ASTNodeOutput is one node of the rendered tree. All three AST formats are
// produced from the same walk.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

func (n *ASTNodeOutput) label() string {
	s := n.Type
	if n.Kind != "" {
		s += " " + n.Kind
	}
	if n.Text != "" {
		s += " " + n.Text
	}
	return s
}

// BuildAST walks fileID once and returns its node tree. The builder is only read.
func BuildAST(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("ast file %d not found", fileID)
	}
	text := ""
	if fs != nil && int(file.Span.File) < fs.Len() {
		text = fs.Get(file.Span.File).FormatPath("auto", fs.BaseDir())
	}
	w := astWalker{b: builder}
	root := ASTNodeOutput{Type: "File", Span: file.Span, Text: text}
	for _, id := range file.Items {
		root.Children = append(root.Children, w.item(id))
	}
	return root, nil
}

type astWalker struct {
	b *ast.Builder
}

func (w astWalker) item(id ast.ItemID) ASTNodeOutput {
	item := w.b.Items.Get(id)
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := w.b.Items.Fn(id)
		node := ASTNodeOutput{Type: "Fn", Span: fn.Span, Text: w.b.Name(fn.Name)}
		if !fn.HasBody() {
			node.Kind = "decl"
		}
		for _, pid := range w.b.Items.GetFnParamIDs(fn) {
			param := w.b.Items.FnParam(pid)
			node.Children = append(node.Children, ASTNodeOutput{
				Type:     "Param",
				Span:     param.Span,
				Text:     w.b.Name(param.Name),
				Children: []ASTNodeOutput{w.typ(param.Type, "param")},
			})
		}
		node.Children = append(node.Children, w.typ(fn.ReturnType, "result"))
		if fn.HasBody() {
			node.Children = append(node.Children, w.stmt(fn.Body))
		}
		return node
	default:
		panic("diagfmt: unknown item kind " + item.Kind.String())
	}
}

func (w astWalker) typ(id ast.TypeID, role string) ASTNodeOutput {
	te := w.b.Types.Get(id)
	if te == nil {
		return ASTNodeOutput{Type: "Type", Kind: role, Text: "<none>"}
	}
	text := te.Type.String()
	if te.Span.Empty() {
		text += " (implicit)"
	}
	return ASTNodeOutput{Type: "Type", Kind: role, Span: te.Span, Text: text}
}

func (w astWalker) stmt(id ast.StmtID) ASTNodeOutput {
	stmt := w.b.Stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		node := ASTNodeOutput{Type: "Block", Span: stmt.Span}
		for _, child := range w.b.Stmts.Block(id).Stmts {
			node.Children = append(node.Children, w.stmt(child))
		}
		return node
	case ast.StmtReturn:
		ret := w.b.Stmts.Return(id)
		return ASTNodeOutput{Type: "Return", Span: stmt.Span, Children: []ASTNodeOutput{w.expr(ret.Value)}}
	default:
		panic("diagfmt: unknown statement kind " + stmt.Kind.String())
	}
}

func (w astWalker) expr(id ast.ExprID) ASTNodeOutput {
	expr := w.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprNumber:
		n, _ := w.b.Exprs.Number(id)
		return ASTNodeOutput{Type: "Number", Span: expr.Span, Text: strconv.FormatInt(n.Value, 10)}
	case ast.ExprIdent:
		ident, _ := w.b.Exprs.Ident(id)
		return ASTNodeOutput{Type: "Ident", Span: expr.Span, Text: w.b.Name(ident.Name)}
	case ast.ExprBinary:
		bin, _ := w.b.Exprs.Binary(id)
		return ASTNodeOutput{
			Type:     "Binary",
			Kind:     bin.Op.Name(),
			Span:     expr.Span,
			Children: []ASTNodeOutput{w.expr(bin.Left), w.expr(bin.Right)},
		}
	case ast.ExprCall:
		call, _ := w.b.Exprs.Call(id)
		node := ASTNodeOutput{Type: "Call", Span: expr.Span, Text: w.b.Name(call.Callee)}
		for _, arg := range call.Args {
			node.Children = append(node.Children, w.expr(arg))
		}
		return node
	default:
		panic("diagfmt: unknown expression kind " + expr.Kind.String())
	}
}

// FormatASTPretty prints the indented `├─ └─` dump with spans.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	return writeTree(w, &root, fs, treeGlyphs{branch: "├─ ", last: "└─ ", pipe: "│  ", blank: "   "}, true)
}

// FormatASTTree prints a plain ASCII tree without spans.
func FormatASTTree(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	return writeTree(w, &root, fs, treeGlyphs{branch: "|-- ", last: "`-- ", pipe: "|   ", blank: "    "}, false)
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildAST(builder, fileID, nil)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

type treeGlyphs struct {
	branch, last, pipe, blank string
}

func writeTree(w io.Writer, root *ASTNodeOutput, fs *source.FileSet, g treeGlyphs, spans bool) error {
	line := func(prefix string, n *ASTNodeOutput) error {
		var err error
		if spans {
			_, err = fmt.Fprintf(w, "%s%s (span: %s)\n", prefix, n.label(), formatSpan(n.Span, fs))
		} else {
			_, err = fmt.Fprintf(w, "%s%s\n", prefix, n.label())
		}
		return err
	}
	var walk func(n *ASTNodeOutput, indent string) error
	walk = func(n *ASTNodeOutput, indent string) error {
		for i := range n.Children {
			child := &n.Children[i]
			glyph, next := g.branch, g.pipe
			if i == len(n.Children)-1 {
				glyph, next = g.last, g.blank
			}
			if err := line(indent+glyph, child); err != nil {
				return err
			}
			if err := walk(child, indent+next); err != nil {
				return err
			}
		}
		return nil
	}
	if err := line("", root); err != nil {
		return err
	}
	return walk(root, "")
}
