package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"setslice/internal/ast"
	"setslice/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatASTPretty печатает программу деревом с отступами:
//
//	Program (span: 1:1-3:9)
//	├─ Item[0]: let v = [0; 4] (span: ...)
//	└─ Item[1]: set (span: ...)
//	   └─ Assign[0]: v[2..] = move [1, 2]
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	fmt.Fprintf(w, "Program (span: %s)\n", formatSpan(prog.Span, fs))

	for i, itemID := range prog.Order {
		branch, prefix := "├─ ", "│  "
		if i == len(prog.Order)-1 {
			branch, prefix = "└─ ", "   "
		}
		fmt.Fprintf(w, "%sItem[%d]: ", branch, i)
		formatItemPretty(w, prog, itemID, fs, prefix)
	}
	return nil
}

func formatItemPretty(w io.Writer, prog *ast.Program, itemID ast.ItemID, fs *source.FileSet, prefix string) {
	item := prog.Items.Get(itemID)
	if item == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	fmt.Fprintf(w, "%s (span: %s)\n", describeItem(prog, itemID), formatSpan(item.Span, fs))

	set, ok := prog.Items.Set(itemID)
	if !ok {
		return
	}
	for i, aid := range set.Assigns {
		branch := "├─ "
		if i == len(set.Assigns)-1 {
			branch = "└─ "
		}
		as := prog.Assigns.Get(aid)
		if as == nil {
			fmt.Fprintf(w, "%s%sAssign[%d]: <nil>\n", prefix, branch, i)
			continue
		}
		fmt.Fprintf(w, "%s%sAssign[%d]: %s (span: %s)\n", prefix, branch, i, describeAssign(as), formatSpan(as.Span, fs))
	}
}

func describeItem(prog *ast.Program, id ast.ItemID) string {
	item := prog.Items.Get(id)
	switch item.Kind {
	case ast.ItemLet:
		let, _ := prog.Items.Let(id)
		return "let " + let.Name + " = " + describeInit(let)
	case ast.ItemPrint:
		pr, _ := prog.Items.Print(id)
		return "print " + pr.Name
	default:
		return item.Kind.String()
	}
}

func describeInit(let *ast.LetItem) string {
	switch let.Init {
	case ast.InitScalar:
		return let.Elems[0].String()
	case ast.InitRepeat:
		return "[" + let.Elems[0].String() + "; " + let.Elems[1].String() + "]"
	default:
		return "[" + joinElems(let.Elems) + "]"
	}
}

func joinElems(elems []ast.Elem) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// describeAssign renders the assignment in canonical form: sugar lists are
// shown with their implied move.
func describeAssign(as *ast.Assign) string {
	var sb strings.Builder
	if as.Unsafe {
		sb.WriteString("unsafe ")
	}
	sb.WriteString(as.Target.Name)
	if as.Target.HasRange {
		sb.WriteString(as.Target.Range.String())
	}
	if as.HasSize {
		sb.WriteString(": (")
		sb.WriteString(as.Size.String())
		sb.WriteByte(')')
	}
	sb.WriteString(" = ")
	sb.WriteString(as.Mode.String())
	sb.WriteByte(' ')
	sb.WriteString(describeOperand(as.Source))
	return sb.String()
}

func describeOperand(op ast.Operand) string {
	var sb strings.Builder
	if op.Borrowed {
		sb.WriteByte('&')
	}
	if op.IsList {
		sb.WriteString("[" + joinElems(op.List) + "]")
		return sb.String()
	}
	sb.WriteString(op.Name)
	if op.HasRange {
		sb.WriteString(op.Range.String())
	}
	return sb.String()
}

// FormatASTJSON выводит программу как дерево ASTNodeOutput.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	children := make([]ASTNodeOutput, 0, len(prog.Order))
	for _, itemID := range prog.Order {
		node, err := formatItemJSON(prog, itemID)
		if err != nil {
			return err
		}
		children = append(children, node)
	}

	output := ASTNodeOutput{
		Type:     "Program",
		Span:     prog.Span,
		Children: children,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatItemJSON(prog *ast.Program, itemID ast.ItemID) (ASTNodeOutput, error) {
	item := prog.Items.Get(itemID)
	if item == nil {
		return ASTNodeOutput{}, fmt.Errorf("item %d not found", itemID)
	}
	node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: item.Span}

	switch item.Kind {
	case ast.ItemLet:
		let, _ := prog.Items.Let(itemID)
		node.Text = describeInit(let)
		node.Fields = map[string]any{
			"name":  let.Name,
			"init":  initName(let.Init),
			"elems": elemStrings(let.Elems),
		}
	case ast.ItemPrint:
		pr, _ := prog.Items.Print(itemID)
		node.Fields = map[string]any{"name": pr.Name}
	case ast.ItemSet:
		set, _ := prog.Items.Set(itemID)
		for _, aid := range set.Assigns {
			as := prog.Assigns.Get(aid)
			if as == nil {
				return ASTNodeOutput{}, fmt.Errorf("assignment %d not found", aid)
			}
			node.Children = append(node.Children, formatAssignJSON(as))
		}
	}
	return node, nil
}

func formatAssignJSON(as *ast.Assign) ASTNodeOutput {
	fields := map[string]any{
		"target": as.Target.Name,
		"mode":   as.Mode.String(),
		"unsafe": as.Unsafe,
		"sugar":  as.Sugar,
	}
	if as.Target.HasRange {
		fields["region"] = as.Target.Range.String()
	}
	if as.HasSize {
		fields["size"] = as.Size.String()
	}
	if as.Source.IsList {
		fields["values"] = elemStrings(as.Source.List)
	} else {
		fields["source"] = as.Source.Name
		if as.Source.HasRange {
			fields["source_region"] = as.Source.Range.String()
		}
	}
	return ASTNodeOutput{
		Type:   "Assign",
		Kind:   as.Mode.String(),
		Span:   as.Span,
		Text:   describeAssign(as),
		Fields: fields,
	}
}

func initName(k ast.InitKind) string {
	switch k {
	case ast.InitScalar:
		return "scalar"
	case ast.InitRepeat:
		return "repeat"
	default:
		return "list"
	}
}

func elemStrings(elems []ast.Elem) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = e.String()
	}
	return out
}
