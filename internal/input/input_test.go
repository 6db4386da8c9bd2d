package input

import (
	"reflect"
	"strings"
	"testing"
)

// TestHandleXargsNull verifies flattening, trimming and empty-entry removal.
func TestHandleXargsNull(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		items    []string
		expected []string
	}{
		{
			name:     "embedded newlines",
			items:    []string{"a\nb", "  c  ", "\n\nd\n"},
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "whitespace only items",
			items:    []string{"   ", "\n\t\n", ""},
			expected: []string{},
		},
		{
			name:     "carriage returns trimmed",
			items:    []string{"src/classes/A.cls\r\nsrc/classes/B.cls\r\n"},
			expected: []string{"src/classes/A.cls", "src/classes/B.cls"},
		},
		{
			name:     "inner spaces kept",
			items:    []string{" my file.txt "},
			expected: []string{"my file.txt"},
		},
		{
			name:     "byte order mark trimmed",
			items:    []string{"\uFEFFsrc/classes/A.cls\nx"},
			expected: []string{"src/classes/A.cls", "x"},
		},
		{
			name:     "next line kept",
			items:    []string{"\u0085src/classes/A.cls\u0085"},
			expected: []string{"\u0085src/classes/A.cls\u0085"},
		},
		{
			name:     "nil input",
			items:    nil,
			expected: []string{},
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(t *testing.T) {
			actual := HandleXargsNull(testCase.items)
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("unexpected result: got %q want %q", actual, testCase.expected)
			}
		})
	}
}

// TestReadNullDelimited verifies that NUL splitting keeps embedded newlines for later normalization.
func TestReadNullDelimited(testingHandle *testing.T) {
	items, readError := ReadNullDelimited(strings.NewReader("a\x00b\nc\x00"))
	if readError != nil {
		testingHandle.Fatalf("ReadNullDelimited failed: %v", readError)
	}
	if !reflect.DeepEqual(items, []string{"a", "b\nc"}) {
		testingHandle.Fatalf("unexpected items %q", items)
	}
	if normalized := HandleXargsNull(items); !reflect.DeepEqual(normalized, []string{"a", "b", "c"}) {
		testingHandle.Fatalf("unexpected normalized items %q", normalized)
	}
}

// TestReadLines verifies newline splitting without a trailing newline.
func TestReadLines(testingHandle *testing.T) {
	items, readError := ReadLines(strings.NewReader("one\ntwo"))
	if readError != nil {
		testingHandle.Fatalf("ReadLines failed: %v", readError)
	}
	if !reflect.DeepEqual(items, []string{"one", "two"}) {
		testingHandle.Fatalf("unexpected items %q", items)
	}
}

// TestSplitNullDelimited verifies splitting of text that was read in full.
func TestSplitNullDelimited(testingHandle *testing.T) {
	if items := SplitNullDelimited("x\x00y\x00"); !reflect.DeepEqual(items, []string{"x", "y"}) {
		testingHandle.Fatalf("unexpected items %q", items)
	}
}
