package parser

import (
	"errors"
	"fmt"
)

// ErrStructuralMismatch is reported when a document matches none of the known report shapes
var ErrStructuralMismatch = errors.New("unsupported report structure")

// Shape identifies which JUnit/XUnit layout a document uses
type Shape int

const (
	ShapeUnknown Shape = iota
	// <testsuites> holding several <testsuite> elements
	ShapeSuitesArray
	// <testsuites> holding one <testsuite> with several <testcase> elements
	ShapeSuiteWithArray
	// <testsuites> holding one <testsuite> with a single <testcase>
	ShapeSuiteWithSingle
	// <testsuite> as the document root
	ShapeBareSuite
)

func (s Shape) String() string {
	switch s {
	case ShapeSuitesArray:
		return "suites-array"
	case ShapeSuiteWithArray:
		return "suite-with-array"
	case ShapeSuiteWithSingle:
		return "suite-with-single"
	case ShapeBareSuite:
		return "bare-suite"
	default:
		return "unknown"
	}
}

// caseSource yields the <testcase> elements of one document shape in order
type caseSource interface {
	testcases() []*Node
}

type suitesArray struct{ suites []*Node }

func (s suitesArray) testcases() []*Node {
	var out []*Node
	for _, suite := range s.suites {
		out = append(out, suite.Child("testcase")...)
	}
	return out
}

type singleSuite struct{ suite *Node }

func (s singleSuite) testcases() []*Node { return s.suite.Child("testcase") }

// inspect classifies the document and returns the matching case source
func inspect(root *Node) (Shape, caseSource, error) {
	if root == nil {
		return ShapeUnknown, nil, fmt.Errorf("%w: empty document", ErrStructuralMismatch)
	}

	switch root.Name {
	case "testsuites":
		suites := root.Child("testsuite")
		switch {
		case len(suites) > 1:
			return ShapeSuitesArray, suitesArray{suites: suites}, nil
		case len(suites) == 1:
			cases := suites[0].Child("testcase")
			if len(cases) == 0 {
				return ShapeUnknown, nil, fmt.Errorf("%w: <testsuite> has no <testcase>", ErrStructuralMismatch)
			}
			if len(cases) == 1 {
				return ShapeSuiteWithSingle, singleSuite{suite: suites[0]}, nil
			}
			return ShapeSuiteWithArray, singleSuite{suite: suites[0]}, nil
		default:
			return ShapeUnknown, nil, fmt.Errorf("%w: <testsuites> has no <testsuite>", ErrStructuralMismatch)
		}
	case "testsuite":
		if len(root.Child("testcase")) == 0 {
			return ShapeUnknown, nil, fmt.Errorf("%w: <testsuite> has no <testcase>", ErrStructuralMismatch)
		}
		return ShapeBareSuite, singleSuite{suite: root}, nil
	default:
		return ShapeUnknown, nil, fmt.Errorf("%w: root element <%s>", ErrStructuralMismatch, root.Name)
	}
}

// DetectShape reports which layout the document uses
func DetectShape(root *Node) Shape {
	shape, _, _ := inspect(root)
	return shape
}
