package manifest

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	metadataNamespace = "http://soap.sforce.com/2006/04/metadata"
	semverPrefix      = "v"
)

// Renderer renders a manifest as package.xml text. The meaning of destructive belongs to the renderer.
type Renderer interface {
	PackageXML(destructive bool) (string, error)
}

// Package lists metadata members grouped by type for a single API version.
type Package struct {
	apiVersion string
	members    map[string]map[string]struct{}
}

type packageDocument struct {
	XMLName xml.Name       `xml:"Package"`
	Xmlns   string         `xml:"xmlns,attr"`
	Types   []typeDocument `xml:"types"`
	Version string         `xml:"version,omitempty"`
}

type typeDocument struct {
	Members []string `xml:"members"`
	Name    string   `xml:"name"`
}

// NewPackage creates an empty Package. apiVersion must be major.minor, for example "59.0".
func NewPackage(apiVersion string) (*Package, error) {
	if err := ValidateAPIVersion(apiVersion); err != nil {
		return nil, err
	}
	return &Package{apiVersion: apiVersion, members: make(map[string]map[string]struct{})}, nil
}

// ValidateAPIVersion reports ErrInvalidAPIVersion unless apiVersion is a major.minor number.
func ValidateAPIVersion(apiVersion string) error {
	canonical := semverPrefix + apiVersion
	if strings.Count(apiVersion, ".") != 1 || !semver.IsValid(canonical) || semver.Prerelease(canonical) != "" || semver.Build(canonical) != "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIVersion, apiVersion)
	}
	return nil
}

// APIVersion returns the package API version.
func (pkg *Package) APIVersion() string {
	return pkg.apiVersion
}

// Add records member under typeName. Empty values are ignored and duplicates collapse.
func (pkg *Package) Add(typeName string, member string) {
	typeName = strings.TrimSpace(typeName)
	member = strings.TrimSpace(member)
	if typeName == "" || member == "" {
		return
	}
	typeMembers, exists := pkg.members[typeName]
	if !exists {
		typeMembers = make(map[string]struct{})
		pkg.members[typeName] = typeMembers
	}
	typeMembers[member] = struct{}{}
}

// Len returns the number of distinct members across all types.
func (pkg *Package) Len() int {
	total := 0
	for _, typeMembers := range pkg.members {
		total += len(typeMembers)
	}
	return total
}

// Types returns the metadata type names in sorted order.
func (pkg *Package) Types() []string {
	typeNames := make([]string, 0, len(pkg.members))
	for typeName := range pkg.members {
		typeNames = append(typeNames, typeName)
	}
	sort.Strings(typeNames)
	return typeNames
}

// Members returns the sorted members recorded for typeName.
func (pkg *Package) Members(typeName string) []string {
	typeMembers := pkg.members[typeName]
	memberNames := make([]string, 0, len(typeMembers))
	for member := range typeMembers {
		memberNames = append(memberNames, member)
	}
	sort.Strings(memberNames)
	return memberNames
}

// PackageXML renders package.xml. The destructive form lists the same members without a version element,
// as expected of destructiveChanges.xml.
func (pkg *Package) PackageXML(destructive bool) (string, error) {
	if pkg == nil {
		return "", ErrNilManifest
	}
	document := packageDocument{Xmlns: metadataNamespace}
	for _, typeName := range pkg.Types() {
		document.Types = append(document.Types, typeDocument{Members: pkg.Members(typeName), Name: typeName})
	}
	if !destructive {
		document.Version = pkg.apiVersion
	}
	encoded, err := xml.MarshalIndent(document, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode package.xml: %w", err)
	}
	return xml.Header + string(encoded) + "\n", nil
}

var _ Renderer = (*Package)(nil)
