package constants

import (
	"fmt"
	"os"
	"strings"
)

// Default Pulsar image used when neither the component nor the global spec names one.
const (
	DefaultPulsarImageRepository = "apachepulsar/pulsar"
	DefaultPulsarVersion         = "3.3.2"
)

// DefaultPulsarImage returns the default Pulsar image. The repository and tag can be
// overridden with PULSAR_IMAGE_REPOSITORY and PULSAR_VERSION.
func DefaultPulsarImage() string {
	return defaultImage(EnvPulsarImageRepository, DefaultPulsarImageRepository, EnvPulsarVersion, DefaultPulsarVersion)
}

// defaultImage constructs an image reference from env var overrides or the defaults.
func defaultImage(repoEnv, defaultRepo, versionEnv, defaultVersion string) string {
	repo := strings.TrimSpace(os.Getenv(repoEnv))
	if repo == "" {
		repo = defaultRepo
	}
	version := strings.TrimSpace(os.Getenv(versionEnv))
	if version == "" {
		version = defaultVersion
	}
	return fmt.Sprintf("%s:%s", repo, version)
}
