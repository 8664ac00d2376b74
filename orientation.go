package mdpdf

import "github.com/alnah/go-mdpdf/internal/pipeline"

// LandscapeColumnThreshold is the column count from which a table switches
// the document to landscape.
const LandscapeColumnThreshold = 4

// DetectOrientation returns OrientationLandscape when any well-formed table
// in markdown has at least LandscapeColumnThreshold columns.
func DetectOrientation(markdown string) Orientation {
	o, _ := detectOrientation(pipeline.ScanTables(markdown))
	return o
}

// ResolveOrientation returns forced when it names a concrete orientation and
// runs the table heuristic for "" and auto.
func ResolveOrientation(forced Orientation, markdown string) (Orientation, error) {
	o, err := ParseOrientation(string(forced))
	if err != nil {
		return "", err
	}
	if o != OrientationAuto {
		return o, nil
	}
	return DetectOrientation(markdown), nil
}

// detectOrientation applies the threshold to scanned tables and also
// reports how many tables crossed it.
func detectOrientation(tables []pipeline.TableInfo) (Orientation, int) {
	wide := 0
	for _, t := range tables {
		if t.Columns >= LandscapeColumnThreshold {
			wide++
		}
	}
	if wide > 0 {
		return OrientationLandscape, wide
	}
	return OrientationPortrait, 0
}
