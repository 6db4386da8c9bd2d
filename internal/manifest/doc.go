// Package manifest writes Salesforce package.xml manifests.
//
// The Writer depends only on the Renderer contract: anything able to render its
// package.xml text for a destructive flag can be written. Package is the renderer
// the fdt commands build from project paths.
//
// # Writing
//
//	writer := manifest.NewWriter(afero.NewOsFs(), workingDirectory)
//	message, err := writer.WritePackageXML(ctx, pkg, "manifest/package.xml", false)
//
// Parent directories are created before the manifest is rendered and written; a
// directory failure stops the operation before anything is written. On success the
// message reads "Created manifest/package.xml".
//
// # Error Handling
//
// The package defines sentinel errors:
//   - ErrNilManifest: no renderer was supplied
//   - ErrEmptyPath: no destination path was supplied
//   - ErrInvalidAPIVersion: a Package API version is not of the form "59.0"
package manifest
