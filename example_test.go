package mdpdf_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdpdf"
)

// Example demonstrates markdown to styled HTML conversion.
// For PDF output, leave HTMLOnly unset (needs Chrome or uses the fpdf engine).
func Example() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Hello World\n\nThis is a test.",
		HTMLOnly: true, // Skip PDF generation for this example
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("HTML generated:", len(result.HTML) > 0)
	fmt.Println("orientation:", result.Orientation)
	// Output:
	// HTML generated: true
	// orientation: portrait
}

// Example_statusColors shows how bold keywords in a Status column are colored.
func Example_statusColors() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	md := `| Task | Status |
|------|--------|
| Parser | **DONE** |
| Docs | **TODO** |
`
	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown:     md,
		StatusColors: true,
		HTMLOnly:     true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("colored cells:", result.ColoredCells)
	fmt.Println("DONE is green:", strings.Contains(string(result.HTML), "background-color: #d4edda"))
	// Output:
	// colored cells: 2
	// DONE is green: true
}

// ExampleDetectOrientation shows the landscape heuristic.
func ExampleDetectOrientation() {
	narrow := "| A | B |\n|---|---|\n| 1 | 2 |\n"
	wide := "| A | B | C | D |\n|---|---|---|---|\n| 1 | 2 | 3 | 4 |\n"

	fmt.Println(mdpdf.DetectOrientation(narrow))
	fmt.Println(mdpdf.DetectOrientation(wide))
	// Output:
	// portrait
	// landscape
}

// ExampleParseColorSpec shows the color override syntax.
func ExampleParseColorSpec() {
	pair, err := mdpdf.ParseColorSpec("#e8daef:#512e5f")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(pair.Background, pair.Text)

	single, _ := mdpdf.ParseColorSpec("#fff3cd")
	fmt.Println(single.Background, single.Text)
	// Output:
	// #e8daef #512e5f
	// #fff3cd #1a1a1a
}
