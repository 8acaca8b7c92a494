package util

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// BuildRuntimePURL renders a canonical package URL for an identified
// runtime, e.g. pkg:generic/temurin/jdk@21.0.3.
func BuildRuntimePURL(vendor, version string) string {
	purl := packageurl.PackageURL{
		Type:      "generic",
		Namespace: vendor,
		Name:      "jdk",
		Version:   version,
	}
	return strings.ToLower(purl.ToString())
}

// CleanPURL parses and re-renders a PURL without qualifiers
func CleanPURL(purlStr string) (string, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return "", err
	}

	cleaned := packageurl.PackageURL{
		Type:      parsed.Type,
		Namespace: parsed.Namespace,
		Name:      parsed.Name,
		Version:   parsed.Version,
		Subpath:   parsed.Subpath,
	}

	return strings.ToLower(cleaned.ToString()), nil
}

// BasePURL strips the version, qualifiers and subpath so stored
// runtimes can be grouped by vendor and product.
func BasePURL(purlStr string) (string, error) {
	parsed, err := packageurl.FromString(purlStr)
	if err != nil {
		return "", err
	}

	base := packageurl.PackageURL{
		Type:      parsed.Type,
		Namespace: parsed.Namespace,
		Name:      parsed.Name,
	}

	return strings.ToLower(base.ToString()), nil
}
