package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"setslice/internal/ast"
	"setslice/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTTree draws the program as an ASCII tree with the root on top and
// items spread horizontally below it.
func FormatASTTree(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	block := renderTree(buildProgramTreeNode(prog, fs))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func buildProgramTreeNode(prog *ast.Program, fs *source.FileSet) *treeNode {
	header := "Program"
	if fs != nil && int(prog.File) < fs.Len() {
		header = fs.Get(prog.File).FormatPath(source.PathAuto, fs.BaseDir())
	}
	root := &treeNode{label: header}
	for idx, itemID := range prog.Order {
		root.children = append(root.children, buildItemTreeNode(prog, itemID, idx))
	}
	return root
}

func buildItemTreeNode(prog *ast.Program, itemID ast.ItemID, idx int) *treeNode {
	if prog.Items.Get(itemID) == nil {
		return &treeNode{label: fmt.Sprintf("Item[%d]: <nil>", idx)}
	}
	node := &treeNode{label: describeItem(prog, itemID)}
	if set, ok := prog.Items.Set(itemID); ok {
		for _, aid := range set.Assigns {
			if as := prog.Assigns.Get(aid); as != nil {
				node.children = append(node.children, &treeNode{label: describeAssign(as)})
			}
		}
	}
	return node
}

// treeGap separates sibling subtrees.
const treeGap = 3

// renderTree lays children side by side and centres the label above the
// span of their roots, joined by a row of / | \ connectors.
func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	kids := make([]treeBlock, len(node.children))
	roots := make([]int, len(node.children))
	height, offset := 0, 0
	for i, child := range node.children {
		kids[i] = renderTree(child)
		roots[i] = offset + kids[i].root
		offset += kids[i].width + treeGap
		height = max(height, len(kids[i].lines))
	}
	kidsWidth := offset - treeGap

	// метка центрируется над корнями детей; если не влезает слева, сдвигаем детей
	labelStart := (roots[0]+roots[len(roots)-1])/2 - labelWidth/2
	shift := 0
	if labelStart < 0 {
		shift, labelStart = -labelStart, 0
	}
	rootPos := labelStart + labelWidth/2
	width := max(kidsWidth+shift, labelStart+labelWidth)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, r := range roots {
		pos := r + shift
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines, padRight(strings.Repeat(" ", labelStart)+node.label, width), string(connector))
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", shift))
		for i, kid := range kids {
			line := ""
			if row < len(kid.lines) {
				line = kid.lines[row]
			}
			sb.WriteString(padRight(line, kid.width))
			if i < len(kids)-1 {
				sb.WriteString(strings.Repeat(" ", treeGap))
			}
		}
		lines = append(lines, padRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: rootPos}
}

func padRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
