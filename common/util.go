package common

import "strings"

// SplitQualified splits a qualified name into its package and simple name.
// The package is empty for names without a dot.
func SplitQualified(qualName string) (string, string) {
	if i := strings.LastIndexByte(qualName, '.'); i >= 0 {
		return qualName[:i], qualName[i+1:]
	}

	return "", qualName
}

// JoinQualified joins a package name and a simple name.
func JoinQualified(pkg, name string) string {
	if pkg == "" {
		return name
	}

	return pkg + "." + name
}
