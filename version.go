package runpod

import "github.com/Masterminds/semver/v3"

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
// The version is incremented according to the following rules:
//   - MAJOR: Breaking changes to the public API
//   - MINOR: New features, backwards compatible
//   - PATCH: Bug fixes, backwards compatible
const Version = "0.1.0"

// APIVersion is the RunPod REST API version this SDK was built for.
const APIVersion = "1.0.0"

// APIVersionRange is the semver constraint of REST API versions this SDK
// is expected to work with.
const APIVersionRange = ">=1.0.0-0, <2.0.0-0"

// UserAgent returns the User-Agent sent with every request unless
// overridden with [WithUserAgent].
func UserAgent() string {
	return "runpod-go/" + Version
}

// IsCompatible reports whether the given API version satisfies
// [APIVersionRange]. Empty or unparsable versions are not compatible.
//
//	if !runpod.IsCompatible(serverVersion) {
//	    log.Printf("untested API version %s", serverVersion)
//	}
func IsCompatible(version string) bool {
	if version == "" {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		return false
	}
	return c.Check(v)
}
