package cfg

import (
	"fmt"
	"strings"
)

// Labels for synthetic connector nodes.
const (
	labelStart    = "START"
	labelEnd      = "END"
	labelElse     = "Else"
	labelMerge    = "Merge"
	labelLoopExit = "Exit Loop"
)

// cursor is a monotonically advancing index over the normalized line
// sequence. It distinguishes consuming the current line (next) from
// inspecting it without consuming (peek); the peek is what lets the block
// parser hand an elif/else line back to the enclosing conditional chain.
// A cursor never rewinds.
type cursor struct {
	lines []string
	pos   int
}

// peek returns the current line without consuming it.
// Returns false when the input is exhausted.
func (c *cursor) peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}

// next consumes and returns the current line.
// Returns false when the input is exhausted.
func (c *cursor) next() (string, bool) {
	line, ok := c.peek()
	if ok {
		c.pos++
	}
	return line, ok
}

// parser holds all mutable state for a single Parse invocation: the line
// cursor, the id counter, and the graph under construction. A fresh parser
// is created per call, so no state leaks between invocations.
type parser struct {
	cur    cursor
	mode   Mode
	nextID int
	graph  *Graph
}

// Parse builds a control-flow graph from raw source text. The syntax mode is
// inferred by [Normalize]. Parse never fails: unrecognized statement forms
// are treated as opaque text, and malformed input (for example a brace-mode
// block left open at end of input) yields whatever graph was accumulated.
func Parse(text string) *Graph {
	lines, mode := Normalize(text)
	return ParseLines(lines, mode)
}

// ParseLines builds a control-flow graph from pre-normalized lines. Most
// callers want [Parse]; this entry point exists for inputs normalized
// elsewhere (for example an editor that keeps its own line buffer).
func ParseLines(lines []string, mode Mode) *Graph {
	p := &parser{
		cur:   cursor{lines: lines},
		mode:  mode,
		graph: NewGraph(),
	}

	start := p.newNode(labelStart, ShapeOval, FillStart)
	last := p.parseBlock(start)

	end := p.newNode(labelEnd, ShapeOval, FillEnd)
	p.connect(last, end, LabelNone)

	return p.graph
}

// newNode creates a node with the next monotonic ID and adds it to the
// graph. The label is cleaned and truncated for display.
func (p *parser) newNode(label string, shape Shape, fill Fill) NodeID {
	p.nextID++
	id := NodeID(fmt.Sprintf("N%d", p.nextID))

	// AddNode cannot fail here: IDs are generated and never collide.
	_ = p.graph.AddNode(Node{
		ID:    id,
		Label: cleanLabel(label),
		Shape: shape,
		Fill:  fill,
	})
	return id
}

// connect adds an edge, ignoring requests with a missing endpoint.
func (p *parser) connect(from, to NodeID, label EdgeLabel) {
	if from == "" || to == "" {
		return
	}
	_ = p.graph.AddEdge(Edge{From: from, To: to, Label: label})
}

// parseBlock parses one block of lines starting at the cursor, threading a
// "current predecessor" node through the run, and returns the node that
// should receive the next edge.
//
// Consecutive non-control lines accumulate in a buffer and are flushed into
// a single statement node whenever a control construct, a block terminator,
// or end of input is reached.
//
// Termination rules:
//   - an elif/else line ends the block WITHOUT being consumed, so the
//     enclosing conditional chain can re-examine it;
//   - a brace-mode "}" is consumed and ends the block;
//   - a return statement is consumed and ends the block, returning the
//     return node itself;
//   - end of input ends the block (in brace mode this also covers input
//     missing its closing braces: the accumulated graph is returned as-is).
func (p *parser) parseBlock(entry NodeID) NodeID {
	current := entry
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		block := p.newNode(strings.Join(buffer, "\n"), ShapeBox, FillStatement)
		p.connect(current, block, LabelNone)
		current = block
		buffer = buffer[:0]
	}

	for {
		line, ok := p.cur.peek()
		if !ok {
			break
		}

		switch {
		case strings.HasPrefix(line, "elif") || strings.HasPrefix(line, "else"):
			// Block ends here; the line stays for the enclosing chain.
			flush()
			return current

		case p.mode == ModeBrace && line == "}":
			flush()
			p.cur.next()
			return current

		case p.mode == ModeBrace && line == "{":
			// Block opener has no graph effect.
			p.cur.next()

		case strings.HasPrefix(line, "for") || strings.HasPrefix(line, "while"):
			flush()
			current = p.parseLoop(current)

		case strings.HasPrefix(line, "if"):
			flush()
			current = p.parseConditional(current)

		case strings.HasPrefix(line, "return"):
			flush()
			ret := p.newNode(line, ShapeBox, FillReturn)
			p.connect(current, ret, LabelNone)
			p.cur.next()
			// Nothing after a return belongs to this block; structural
			// consumption (e.g. the enclosing "}") resumes the cursor.
			return ret

		default:
			buffer = append(buffer, line)
			p.cur.next()
		}
	}

	flush()
	return current
}

// parseLoop handles for/while: a diamond header, the recursively parsed
// body, a "Loop" back-edge from the body exit to the header, and an exit
// connector reached via the header's "False" edge.
//
// The back-edge is added unconditionally, even when the body ended in an
// early return; see DESIGN.md for the rationale.
func (p *parser) parseLoop(pred NodeID) NodeID {
	line, _ := p.cur.next()
	header := p.newNode(line, ShapeDiamond, FillDecision)
	p.connect(pred, header, LabelNone)

	bodyExit := p.parseBlock(header)
	p.connect(bodyExit, header, LabelLoop)

	exit := p.newNode(labelLoopExit, ShapePoint, FillConnector)
	p.connect(header, exit, LabelFalse)
	return exit
}

// parseConditional handles an if/elif*/else? chain. Each decision's branch
// is parsed recursively; parseBlock returns without consuming a trailing
// elif/else line, so the chain loop picks it up via peek here.
//
// Every branch exit converges on a single merge connector. If the chain was
// not closed by an else, the last decision keeps a dangling "False" edge to
// the merge. A branch ending in a return still feeds the merge - the edge is
// unreachable at runtime but preserved deliberately (see DESIGN.md).
func (p *parser) parseConditional(pred NodeID) NodeID {
	line, _ := p.cur.next()
	decision := p.newNode(line, ShapeDiamond, FillDecision)
	p.connect(pred, decision, LabelNone)

	exits := []NodeID{p.parseBlock(decision)}
	lastDecision := decision
	closed := false

chain:
	for {
		next, ok := p.cur.peek()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(next, "elif"):
			p.cur.next()
			d := p.newNode(next, ShapeDiamond, FillDecision)
			p.connect(lastDecision, d, LabelFalse)
			exits = append(exits, p.parseBlock(d))
			lastDecision = d

		case strings.HasPrefix(next, "else"):
			p.cur.next()
			elseStart := p.newNode(labelElse, ShapePoint, FillConnector)
			p.connect(lastDecision, elseStart, LabelFalse)
			exits = append(exits, p.parseBlock(elseStart))
			closed = true
			break chain

		default:
			// Ordinary code following the chain.
			break chain
		}
	}

	merge := p.newNode(labelMerge, ShapePoint, FillConnector)
	for _, exit := range exits {
		p.connect(exit, merge, LabelNone)
	}
	if !closed {
		p.connect(lastDecision, merge, LabelFalse)
	}
	return merge
}
