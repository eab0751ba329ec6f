package puzzle

import "testing"

func TestInspect(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		codes []string
	}{
		{"clean", "S.@\n#R@\nB.E", nil},
		{"empty", "\n  \n", []string{IssueEmpty}},
		{"unknown symbol", "S?E", []string{IssueUnknownSymbol}},
		{"ragged", "S..\n.\n..E", []string{IssueRaggedRows}},
		{"no start", "..E", []string{IssueNoStart}},
		{"two starts", "S.S\n..E", []string{IssueMultipleStarts}},
		{"no end", "S..", []string{IssueNoEnd}},
		{"lone portal", "S@E\nO.O", []string{IssueUnpairedPortal}},
		{"several", "x.\nO", []string{IssueUnknownSymbol, IssueRaggedRows, IssueNoStart, IssueNoEnd, IssueUnpairedPortal}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rep := Inspect(tc.text)
			if len(rep.Issues) != len(tc.codes) {
				t.Fatalf("Inspect() issues = %v, want codes %v", rep.Issues, tc.codes)
			}
			for i, code := range tc.codes {
				if rep.Issues[i].Code != code {
					t.Errorf("issue %d code = %s, want %s", i, rep.Issues[i].Code, code)
				}
			}
			if rep.Clean() != (len(tc.codes) == 0) {
				t.Errorf("Clean() = %v", rep.Clean())
			}
		})
	}
}

func TestInspectPositions(t *testing.T) {
	rep := Inspect("S.E\n.x.")

	if len(rep.Issues) != 1 {
		t.Fatalf("issues = %v, want one", rep.Issues)
	}
	issue := rep.Issues[0]
	if issue.Position == nil || *issue.Position != P(1, 1) {
		t.Errorf("Position = %v, want (1,1)", issue.Position)
	}
	if got := issue.String(); got != `[UNKNOWN_SYMBOL] symbol 'x' read as pathway at (1,1)` {
		t.Errorf("String() = %q", got)
	}
}

func TestInspectKeepsGrid(t *testing.T) {
	rep := Inspect("S?E")
	if !rep.Grid.Equal(Parse("S.E")) {
		t.Errorf("Grid = %q, want S.E", rep.Grid.String())
	}
}
