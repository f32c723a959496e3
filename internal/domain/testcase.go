package domain

// TestCaseRecord is one reported test case flattened out of a JUnit/XUnit document
type TestCaseRecord struct {
	Classname string // classname attribute of <testcase>
	Name      string // name attribute of <testcase>
	SystemOut string // text of <system-out>, empty when absent
	SystemErr string // text of <system-err>, empty when absent
}

// ParsedReport holds the records normalized from a single XML file
type ParsedReport struct {
	Path    string
	Records []TestCaseRecord
	Err     error // parse failure for this file, nil on success
}
