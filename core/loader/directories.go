package loader

import (
	"path"
	"sort"
)

// Category is the role of one bundle directory.
type Category string

const (
	CategoryConfig      Category = "config"
	CategoryPolicies    Category = "policies"
	CategoryModels      Category = "models"
	CategoryControllers Category = "controllers"
	CategoryHelpers     Category = "helpers"
	CategoryServices    Category = "services"
	CategoryResponses   Category = "responses"
)

// AsyncCategories lists the categories loaded concurrently, in dispatch order.
var AsyncCategories = []Category{
	CategoryModels,
	CategoryControllers,
	CategoryHelpers,
	CategoryServices,
	CategoryResponses,
}

// IsValid reports whether c is one of the seven known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryConfig, CategoryPolicies, CategoryModels, CategoryControllers,
		CategoryHelpers, CategoryServices, CategoryResponses:
		return true
	default:
		return false
	}
}

// DirectoryMap maps a category to the directory it is loaded from.
// A missing key (or an empty path) means the category is skipped.
type DirectoryMap map[Category]string

// Has reports whether the category has a non-empty directory.
func (d DirectoryMap) Has(c Category) bool {
	return d[c] != ""
}

// Keys returns the categories that will be loaded, sorted for stable logs.
func (d DirectoryMap) Keys() []string {
	keys := make([]string, 0, len(d))
	for c, dir := range d {
		if dir == "" {
			continue
		}
		keys = append(keys, string(c))
	}
	sort.Strings(keys)
	return keys
}

// DefaultAPIDirs returns the directories loaded by Inject when none are given.
func DefaultAPIDirs(bundleRoot string) DirectoryMap {
	return DirectoryMap{
		CategoryModels:      path.Join(bundleRoot, "api", "models"),
		CategoryControllers: path.Join(bundleRoot, "api", "controllers"),
		CategoryHelpers:     path.Join(bundleRoot, "api", "helpers"),
		CategoryServices:    path.Join(bundleRoot, "api", "services"),
		CategoryResponses:   path.Join(bundleRoot, "api", "responses"),
	}
}

// DefaultConfigDirs returns the directories loaded by Configure when none are given.
func DefaultConfigDirs(bundleRoot string) DirectoryMap {
	return DirectoryMap{
		CategoryConfig:   path.Join(bundleRoot, "config"),
		CategoryPolicies: path.Join(bundleRoot, "policies"),
	}
}
