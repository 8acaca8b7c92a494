package config

// Default returns the built-in policy bundle used when no policy file
// is supplied. The rule set mirrors published vendor terms: Oracle JDK
// 8-16 fall under the OTN agreement, 17+ under NFTC until each major's
// public-updates cutoff, and the well-known OpenJDK distributions ship
// free of charge. Lifecycle dates are the vendor-neutral community
// schedule plus a handful of vendor-specific overrides. Both tables are
// policy parameters, expected to be superseded by an operator bundle.
func Default() *Bundle {
	return &Bundle{
		// placeholder default; policy, not protocol
		WarningWindowDays: 180,
		LicenseRules: []RuleSpec{
			{
				Name:        "oracle-otn-legacy",
				Flag:        "Commercial",
				Vendors:     []string{"oraclejdk"},
				MinMajor:    8,
				MaxMajor:    16,
				Explanation: "{vendor} {version} is distributed under the OTN license; business, commercial, or production use of major {major} requires a Java SE subscription",
				PolicyRef:   "Oracle Technology Network License Agreement (2019)",
			},
			{
				Name:        "oracle-nftc-17-expired",
				Flag:        "Commercial",
				Vendors:     []string{"oraclejdk"},
				MinMajor:    17,
				MaxMajor:    17,
				After:       "2024-09-17",
				Explanation: "{vendor} {version} passed the NFTC public-updates cutoff of {cutoff}; continued updates for major {major} require a Java SE subscription",
				PolicyRef:   "Oracle No-Fee Terms and Conditions, JDK 17",
			},
			{
				Name:        "oracle-nftc-21-expired",
				Flag:        "Commercial",
				Vendors:     []string{"oraclejdk"},
				MinMajor:    21,
				MaxMajor:    21,
				After:       "2026-09-15",
				Explanation: "{vendor} {version} passed the NFTC public-updates cutoff of {cutoff}; continued updates for major {major} require a Java SE subscription",
				PolicyRef:   "Oracle No-Fee Terms and Conditions, JDK 21",
			},
			{
				Name:        "oracle-nftc-active",
				Flag:        "Free",
				Vendors:     []string{"oraclejdk"},
				MinMajor:    17,
				Explanation: "{vendor} {version} is within its NFTC no-fee window; no subscription is required for major {major} at this date",
				PolicyRef:   "Oracle No-Fee Terms and Conditions",
			},
			{
				Name:        "graalvm-gftc",
				Flag:        "Commercial",
				Vendors:     []string{"graalvm"},
				Explanation: "{vendor} {version} is licensed under the GraalVM Free Terms and Conditions; uses outside the GFTC grant require an Oracle subscription",
				PolicyRef:   "GraalVM Free Terms and Conditions",
			},
			{
				Name:        "openjdk-distributions",
				Flag:        "Free",
				Vendors:     []string{"openjdk", "temurin", "zulu", "corretto", "microsoft"},
				Explanation: "{vendor} {version} is a GPLv2+CE OpenJDK distribution; no commercial license is required",
				PolicyRef:   "GNU GPL v2 with Classpath Exception",
			},
			{
				Name:        "catch-all",
				Flag:        "Unknown",
				Explanation: "no license policy covers {vendor} {version}; vendor terms must be reviewed manually",
				PolicyRef:   "default",
			},
		},
		Lifecycle: []LifecycleSpec{
			// vendor-neutral community schedule
			{Major: 8, LTS: true, EOL: "2030-12-31"},
			{Major: 11, LTS: true, EOL: "2032-01-31"},
			{Major: 17, LTS: true, EOL: "2029-10-31"},
			{Major: 21, LTS: true, EOL: "2031-12-31"},
			{Major: 25, LTS: true, EOL: "2033-09-30"},
			{Major: 22, EOL: "2024-09-17"},
			{Major: 23, EOL: "2025-03-18"},
			{Major: 24, EOL: "2025-09-16"},
			// vendor-specific overrides
			{Vendor: "oraclejdk", Major: 8, LTS: true, EOL: "2030-12-31", SecuritySupportUntil: "2030-12-31"},
			{Vendor: "oraclejdk", Major: 11, LTS: true, EOL: "2032-01-31", SecuritySupportUntil: "2032-01-31"},
			{Vendor: "oraclejdk", Major: 17, LTS: true, EOL: "2029-09-30", SecuritySupportUntil: "2029-09-30"},
			{Vendor: "temurin", Major: 8, LTS: true, EOL: "2026-11-30"},
			{Vendor: "temurin", Major: 17, LTS: true, EOL: "2027-10-31"},
			{Vendor: "corretto", Major: 8, LTS: true, EOL: "2030-07-31"},
			{Vendor: "corretto", Major: 11, LTS: true, EOL: "2032-10-31"},
			{Vendor: "zulu", Major: 8, LTS: true, EOL: "2030-12-31"},
			{Vendor: "zulu", Major: 11, LTS: true, EOL: "2032-01-31"},
			{Vendor: "microsoft", Major: 11, LTS: true, EOL: "2027-09-30"},
			{Vendor: "microsoft", Major: 17, LTS: true, EOL: "2027-09-30"},
		},
	}
}
