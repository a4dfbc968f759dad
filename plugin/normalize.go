package plugin

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8"`

// JoinClassname prefixes the name attribute of a testcase element with its
// classname, separated by a dot. Elements missing either attribute, or whose
// name already starts with the classname, are left alone. It reports whether
// the element was changed.
func JoinClassname(testcase *etree.Element) bool {
	classname := testcase.SelectAttr(attrClassname)
	name := testcase.SelectAttr(attrName)
	if classname == nil || name == nil || classname.Value == "" || name.Value == "" {
		return false
	}
	if strings.HasPrefix(name.Value, classname.Value) {
		return false
	}
	testcase.CreateAttr(attrName, classname.Value+"."+name.Value)
	return true
}

// NormalizeReport applies JoinClassname to every testcase in document order
// and returns how many were rewritten.
func NormalizeReport(doc *etree.Document) int {
	updated := 0
	for _, testcase := range testCases(doc.Root()) {
		if JoinClassname(testcase) {
			logrus.WithField("Name", testcase.SelectAttrValue(attrName, "")).Debug("Joined classname into test name")
			updated++
		}
	}
	return updated
}

// SaveReport writes doc to path as UTF-8 with an XML declaration.
func SaveReport(doc *etree.Document, path string) error {
	setDeclaration(doc)
	if err := doc.WriteToFile(path); err != nil {
		logrus.WithError(err).WithField("File", path).Debug("Failed to write file")
		return errors.Wrapf(err, "failed to write file %s", path)
	}
	return nil
}

func setDeclaration(doc *etree.Document) {
	for _, token := range doc.Child {
		if pi, ok := token.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = xmlDeclaration
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))
	doc.InsertChildAt(1, etree.NewText("\n"))
}

// testCases returns every testcase element below root, depth first.
func testCases(root *etree.Element) []*etree.Element {
	var found []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.Tag == tagTestCase {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(root)
	return found
}
