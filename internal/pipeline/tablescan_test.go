package pipeline

import (
	"slices"
	"testing"
)

// ---------------------------------------------------------------------------
// TestScanTables - Table boundary detection
// ---------------------------------------------------------------------------

func TestScanTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		markdown    string
		wantColumns []int
		wantStatus  []bool
	}{
		{
			name:        "no tables",
			markdown:    "# Title\n\nJust prose with a | pipe.\n",
			wantColumns: nil,
		},
		{
			name:        "two column table",
			markdown:    "| A | B |\n|---|---|\n| 1 | 2 |\n",
			wantColumns: []int{2},
			wantStatus:  []bool{false},
		},
		{
			name:        "five and two columns in order",
			markdown:    "| a | b | c | d | e |\n|---|---|---|---|---|\n| 1 | 2 | 3 | 4 | 5 |\n\ntext\n\n| x | y |\n|:--|--:|\n| 1 | 2 |\n",
			wantColumns: []int{5, 2},
			wantStatus:  []bool{false, false},
		},
		{
			name:        "pipes without delimiter row",
			markdown:    "| a | b | c | d |\n| 1 | 2 | 3 | 4 |\n",
			wantColumns: nil,
		},
		{
			name:        "header and delimiter cell count differ",
			markdown:    "| a | b | c | d |\n|---|---|\n| 1 | 2 | 3 | 4 |\n",
			wantColumns: nil,
		},
		{
			name:        "table in blockquote",
			markdown:    "> | a | b | c | d |\n> |---|---|---|---|\n> | 1 | 2 | 3 | 4 |\n",
			wantColumns: []int{4},
			wantStatus:  []bool{false},
		},
		{
			name:        "table in list item",
			markdown:    "- item\n\n  | a | Status |\n  |---|---|\n  | x | **DONE** |\n",
			wantColumns: []int{2},
			wantStatus:  []bool{true},
		},
		{
			name:        "adjacent tables separated by blank line",
			markdown:    "| a |\n|---|\n| 1 |\n\n| b | c | d | e |\n|---|---|---|---|\n",
			wantColumns: []int{1, 4},
			wantStatus:  []bool{false, false},
		},
		{
			name:        "adjacent tables without blank line",
			markdown:    "| a | b |\n|---|---|\n| 1 | 2 |\n| c | d | e | f |\n|---|---|---|---|\n| 1 | 2 | 3 | 4 |\n",
			wantColumns: []int{2, 4},
			wantStatus:  []bool{false, false},
		},
		{
			name:        "adjacent tables in blockquote",
			markdown:    "> | a |\n> |---|\n> | 1 |\n> | b | Status |\n> |---|---|\n> | x | **DONE** |\n",
			wantColumns: []int{1, 2},
			wantStatus:  []bool{false, true},
		},
		{
			name:        "three stacked tables",
			markdown:    "| a |\n|---|\n| b | c |\n|:--|--:|\n| d | e | f |\n|---|---|---|\n| 1 | 2 | 3 |\n",
			wantColumns: []int{1, 2, 3},
		},
		{
			name:        "status header with markup",
			markdown:    "| Item | **Status** |\n|---|---|\n| x | y |\n",
			wantColumns: []int{2},
			wantStatus:  []bool{true},
		},
		{
			name:        "table inside fenced code is not a table",
			markdown:    "```\n| a | b | c | d |\n|---|---|---|---|\n```\n",
			wantColumns: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ScanTables(tt.markdown)
			var cols []int
			var status []bool
			for _, ti := range got {
				cols = append(cols, ti.Columns)
				status = append(status, ti.HasStatus)
			}
			if !slices.Equal(cols, tt.wantColumns) {
				t.Errorf("columns = %v, want %v", cols, tt.wantColumns)
			}
			if tt.wantStatus != nil && !slices.Equal(status, tt.wantStatus) {
				t.Errorf("HasStatus = %v, want %v", status, tt.wantStatus)
			}
		})
	}
}

func TestScanTables_HeaderAndRows(t *testing.T) {
	t.Parallel()

	got := ScanTables("| Item | `code` | [link](x) |\n|---|---|---|\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |\n")
	if len(got) != 1 {
		t.Fatalf("ScanTables() found %d tables, want 1", len(got))
	}
	want := []string{"Item", "code", "link"}
	if !slices.Equal(got[0].Header, want) {
		t.Errorf("Header = %q, want %q", got[0].Header, want)
	}
	if got[0].Rows != 2 {
		t.Errorf("Rows = %d, want 2", got[0].Rows)
	}
}

func TestScanTables_AdjacentRowCounts(t *testing.T) {
	t.Parallel()

	got := ScanTables("| a | b |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n| c | d | e | f |\n|---|---|---|---|\n| 1 | 2 | 3 | 4 |\n")
	if len(got) != 2 {
		t.Fatalf("ScanTables() found %d tables, want 2", len(got))
	}
	if got[0].Rows != 2 || got[1].Rows != 1 {
		t.Errorf("Rows = %d, %d; want 2, 1", got[0].Rows, got[1].Rows)
	}
	if !slices.Equal(got[1].Header, []string{"c", "d", "e", "f"}) {
		t.Errorf("second Header = %q", got[1].Header)
	}
}

// ---------------------------------------------------------------------------
// TestDelimiterCells - Delimiter row recognition
// ---------------------------------------------------------------------------

func TestDelimiterCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		row  string
		want int
	}{
		{"|---|---|", 2},
		{"| :-- | :-: | --: |", 3},
		{"---|---", 2},
		{"|---|", 1},
		{"---", 0},
		{"| a | b |", 0},
		{"|---| |", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := delimiterCells(tt.row); got != tt.want {
			t.Errorf("delimiterCells(%q) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestRowCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		row  string
		want int
	}{
		{"| a | b |", 2},
		{"a | b", 2},
		{"| a \\| b | c |", 2},
		{"| a |", 1},
	}

	for _, tt := range tests {
		if got := len(rowCells(tt.row)); got != tt.want {
			t.Errorf("len(rowCells(%q)) = %d, want %d", tt.row, got, tt.want)
		}
	}
}

func TestIsStatusHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"Status", true},
		{"STATUS", true},
		{"  status\t", true},
		{"Statuses", false},
		{"Current Status", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsStatusHeader(tt.in); got != tt.want {
			t.Errorf("IsStatusHeader(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
