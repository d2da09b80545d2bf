package common

const (
	major = 0
	minor = 1
	patch = 0

	// Version is the FundMe contracts version encoded as
	// major*1_000_000 + minor*1_000 + patch. It must match VERSION file.
	Version = major*1_000_000 + minor*1_000 + patch
)
