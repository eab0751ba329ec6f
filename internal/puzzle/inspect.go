package puzzle

import (
	"fmt"
	"strings"
)

// Issue is a warning about level content. Parse accepts the content anyway;
// issues only explain how it will be interpreted.
type Issue struct {
	Code     string
	Message  string
	Position *Position // cell the issue refers to, if any
}

func (i Issue) String() string {
	if i.Position != nil {
		return fmt.Sprintf("[%s] %s at %s", i.Code, i.Message, i.Position)
	}
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// Issue codes reported by Inspect.
const (
	IssueEmpty          = "EMPTY"
	IssueUnknownSymbol  = "UNKNOWN_SYMBOL"
	IssueRaggedRows     = "RAGGED_ROWS"
	IssueNoStart        = "NO_START"
	IssueMultipleStarts = "MULTIPLE_STARTS"
	IssueNoEnd          = "NO_END"
	IssueUnpairedPortal = "UNPAIRED_PORTAL"
)

// Report is the result of inspecting a level text.
type Report struct {
	Grid   Grid
	Issues []Issue
}

// Clean reports whether no issues were found.
func (r Report) Clean() bool {
	return len(r.Issues) == 0
}

// Inspect parses text and lists everything the lenient parser silently
// defaulted: unknown symbols, ragged rows, a missing or duplicated start,
// a missing end and portals without a partner.
func Inspect(text string) Report {
	rep := Report{Grid: Parse(text)}
	g := rep.Grid

	if g.Empty() {
		rep.add(IssueEmpty, "level has no cells", nil)
		return rep
	}

	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		col := 0
		for _, r := range line {
			if _, ok := KindForSymbol(r); !ok {
				p := P(row, col)
				rep.add(IssueUnknownSymbol, fmt.Sprintf("symbol %q read as pathway", r), &p)
			}
			col++
		}
		row++
	}

	if g.Ragged() {
		for r := 0; r < g.Rows(); r++ {
			if n := g.RowLen(r); n != g.Cols() {
				p := P(r, n)
				rep.add(IssueRaggedRows,
					fmt.Sprintf("row %d has %d cells, widest row has %d; missing cells read as wall", r, n, g.Cols()), &p)
			}
		}
	}

	switch starts := g.Positions(CellStart); len(starts) {
	case 0:
		p := P(0, 0)
		rep.add(IssueNoStart, "no start cell, player starts at the origin", &p)
	case 1:
	default:
		p := starts[0]
		rep.add(IssueMultipleStarts, fmt.Sprintf("%d start cells, the first one is used", len(starts)), &p)
	}

	if g.Count(CellEnd) == 0 {
		rep.add(IssueNoEnd, "no end cell, level cannot be completed", nil)
	}

	for _, kind := range []CellKind{CellPortalA, CellPortalB} {
		if ps := g.Positions(kind); len(ps) == 1 {
			p := ps[0]
			rep.add(IssueUnpairedPortal, fmt.Sprintf("%s has no partner and acts as a plain cell", kind), &p)
		}
	}

	return rep
}

func (r *Report) add(code, msg string, p *Position) {
	r.Issues = append(r.Issues, Issue{Code: code, Message: msg, Position: p})
}
