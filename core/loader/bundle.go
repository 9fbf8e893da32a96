package loader

import "strings"

// RelativePath strips the working root from baseDir.
func RelativePath(workingRoot, baseDir string) string {
	if workingRoot == "" {
		return baseDir
	}
	return strings.Replace(baseDir, workingRoot, "", 1)
}

// BundleName derives the hook lookup key from the bundle's base directory.
//
// A trailing /index.js is removed first, then the api/hooks and node_modules
// infixes, so both <root>/api/hooks/foo/index.js and
// <root>/node_modules/foo/index.js collapse to "foo".
func BundleName(workingRoot, baseDir string) string {
	name := RelativePath(workingRoot, baseDir)
	name = strings.Replace(name, "/index.js", "", 1)
	name = strings.Replace(name, "/api/hooks/", "", 1)
	name = strings.Replace(name, "/node_modules/", "", 1)
	return name
}
