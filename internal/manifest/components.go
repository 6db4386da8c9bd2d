package manifest

import (
	"path"
	"strings"

	"github.com/temirov/fdt/internal/utils"
)

const metadataFileSuffix = "-meta.xml"

type folderKind int

const (
	folderKindFile folderKind = iota
	folderKindBundle
	folderKindNested
)

type metadataFolder struct {
	typeName string
	kind     folderKind
}

// metadataFolders maps a metadata source folder name to its type. Bundle folders name
// their member after the bundle directory; nested folders after folder/file.
var metadataFolders = map[string]metadataFolder{
	"applications":    {typeName: "CustomApplication"},
	"aura":            {typeName: "AuraDefinitionBundle", kind: folderKindBundle},
	"classes":         {typeName: "ApexClass"},
	"components":      {typeName: "ApexComponent"},
	"customMetadata":  {typeName: "CustomMetadata"},
	"dashboards":      {typeName: "Dashboard", kind: folderKindNested},
	"documents":       {typeName: "Document", kind: folderKindNested},
	"email":           {typeName: "EmailTemplate", kind: folderKindNested},
	"flexipages":      {typeName: "FlexiPage"},
	"flows":           {typeName: "Flow"},
	"labels":          {typeName: "CustomLabels"},
	"layouts":         {typeName: "Layout"},
	"lwc":             {typeName: "LightningComponentBundle", kind: folderKindBundle},
	"objects":         {typeName: "CustomObject"},
	"pages":           {typeName: "ApexPage"},
	"permissionsets":  {typeName: "PermissionSet"},
	"profiles":        {typeName: "Profile"},
	"reports":         {typeName: "Report", kind: folderKindNested},
	"staticresources": {typeName: "StaticResource"},
	"tabs":            {typeName: "CustomTab"},
	"triggers":        {typeName: "ApexTrigger"},
	"workflows":       {typeName: "Workflow"},
}

// Component identifies one manifest entry.
type Component struct {
	Type   string
	Member string
}

// ComponentFromPath maps a metadata source path such as "src/classes/Foo.cls" to its component.
// The nearest known metadata folder in the path decides the type. ok is false for paths outside
// any known folder.
func ComponentFromPath(relativePath string) (component Component, ok bool) {
	normalizedPath := strings.Trim(utils.NormalizeSlashes(relativePath), "/")
	segments := strings.Split(normalizedPath, "/")
	for folderIndex := len(segments) - 2; folderIndex >= 0; folderIndex-- {
		folder, known := metadataFolders[segments[folderIndex]]
		if !known {
			continue
		}
		remaining := segments[folderIndex+1:]
		switch folder.kind {
		case folderKindBundle:
			return Component{Type: folder.typeName, Member: remaining[0]}, true
		case folderKindNested:
			if len(remaining) == 1 {
				return Component{Type: folder.typeName, Member: memberName(remaining[0])}, true
			}
			return Component{Type: folder.typeName, Member: remaining[0] + "/" + memberName(remaining[1])}, true
		default:
			if len(remaining) != 1 {
				continue
			}
			return Component{Type: folder.typeName, Member: memberName(remaining[0])}, true
		}
	}
	return Component{}, false
}

// ParseComponent splits "Type/Member" notation. Members may themselves contain slashes.
func ParseComponent(value string) (Component, bool) {
	typeName, member, found := strings.Cut(strings.TrimSpace(value), "/")
	if !found || typeName == "" || member == "" {
		return Component{}, false
	}
	return Component{Type: typeName, Member: member}, true
}

// memberName strips the metadata suffix and the file extension from a file name.
func memberName(fileName string) string {
	baseName := strings.TrimSuffix(fileName, metadataFileSuffix)
	return strings.TrimSuffix(baseName, path.Ext(baseName))
}
