package model

// VendorID tags a known JDK/JRE distribution. The set is closed: vendor
// polymorphism is resolved once at parse time and every later component
// branches on the tag, never on raw string shape.
type VendorID string

// Known distributions. VendorUnknown is a valid, non-failing result;
// absence of vendor evidence is not an ambiguity.
const (
	VendorOpenJDK   VendorID = "openjdk"
	VendorOracleJDK VendorID = "oraclejdk"
	VendorZulu      VendorID = "zulu"
	VendorTemurin   VendorID = "temurin"
	VendorCorretto  VendorID = "corretto"
	VendorMicrosoft VendorID = "microsoft"
	VendorGraalVM   VendorID = "graalvm"
	VendorSun       VendorID = "sun"
	VendorUnknown   VendorID = "unknown"
)

// DisplayName returns the marketing name used in rendered explanations.
func (v VendorID) DisplayName() string {
	switch v {
	case VendorOpenJDK:
		return "OpenJDK"
	case VendorOracleJDK:
		return "OracleJDK"
	case VendorZulu:
		return "Azul Zulu"
	case VendorTemurin:
		return "Eclipse Temurin"
	case VendorCorretto:
		return "Amazon Corretto"
	case VendorMicrosoft:
		return "Microsoft Build of OpenJDK"
	case VendorGraalVM:
		return "Oracle GraalVM"
	case VendorSun:
		return "Sun JDK"
	default:
		return "Unknown"
	}
}

// VendorInfo carries the resolved distribution tag plus the raw evidence
// substring that matched. Attached to a VersionIdentity at parse time and
// never mutated afterward.
type VendorInfo struct {
	ID       VendorID `json:"id"`
	Evidence string   `json:"evidence,omitempty"`
}
