package manifest

import "testing"

// TestComponentFromPath verifies the folder to metadata type mapping.
func TestComponentFromPath(testingHandle *testing.T) {
	testCases := []struct {
		relativePath string
		expected     Component
		expectedOK   bool
	}{
		{relativePath: "src/classes/Foo.cls", expected: Component{Type: "ApexClass", Member: "Foo"}, expectedOK: true},
		{relativePath: "src/classes/Foo.cls-meta.xml", expected: Component{Type: "ApexClass", Member: "Foo"}, expectedOK: true},
		{relativePath: `src\triggers\AccountTrigger.trigger`, expected: Component{Type: "ApexTrigger", Member: "AccountTrigger"}, expectedOK: true},
		{relativePath: "src/aura/Widget/WidgetController.js", expected: Component{Type: "AuraDefinitionBundle", Member: "Widget"}, expectedOK: true},
		{relativePath: "force-app/main/default/lwc/card/__tests__/card.test.js", expected: Component{Type: "LightningComponentBundle", Member: "card"}, expectedOK: true},
		{relativePath: "src/objects/Account.object", expected: Component{Type: "CustomObject", Member: "Account"}, expectedOK: true},
		{relativePath: "src/email/Sales/Welcome.email", expected: Component{Type: "EmailTemplate", Member: "Sales/Welcome"}, expectedOK: true},
		{relativePath: "src/reports/Quarterly-meta.xml", expected: Component{Type: "Report", Member: "Quarterly"}, expectedOK: true},
		{relativePath: "src/package.xml", expectedOK: false},
		{relativePath: "README.md", expectedOK: false},
		{relativePath: "classes", expectedOK: false},
	}
	for _, testCase := range testCases {
		actual, ok := ComponentFromPath(testCase.relativePath)
		if ok != testCase.expectedOK || actual != testCase.expected {
			testingHandle.Errorf("ComponentFromPath(%q) = %+v, %t; want %+v, %t", testCase.relativePath, actual, ok, testCase.expected, testCase.expectedOK)
		}
	}
}

// TestParseComponent verifies Type/Member notation.
func TestParseComponent(testingHandle *testing.T) {
	component, ok := ParseComponent(" EmailTemplate/Sales/Welcome ")
	if !ok || component != (Component{Type: "EmailTemplate", Member: "Sales/Welcome"}) {
		testingHandle.Fatalf("unexpected component %+v, %t", component, ok)
	}
	for _, invalid := range []string{"ApexClass", "/Foo", "ApexClass/", ""} {
		if _, ok := ParseComponent(invalid); ok {
			testingHandle.Errorf("ParseComponent(%q): expected failure", invalid)
		}
	}
}
