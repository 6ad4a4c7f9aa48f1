package domain

import (
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// Distribution is the metadata record a repository returns for a published
// artifact.
type Distribution struct {
	// FullName is the repository's canonical identifier
	// (e.g. "user/pkg/1.2.0/linux-64/pkg-1.2.0-py27_0.tar.bz2").
	FullName string `json:"full_name"`

	// UploadedAt is when the artifact was published.
	UploadedAt time.Time `json:"upload_time"`

	// Checksum is the repository's content checksum for the artifact.
	Checksum string `json:"md5"`
}

// DistSpec identifies a distribution for repository queries. It is derived
// from the expected artifact filename.
type DistSpec struct {
	Package  string
	Version  string
	Platform string
	Basename string
}

// ParseDistSpec derives a distribution identity from an artifact path.
// Builder output follows "<name>-<version>-<buildstring>.tar.bz2"; the
// build string never contains a dash, while the name may.
func ParseDistSpec(outputPath, platform string) (DistSpec, error) {
	base := filepath.Base(outputPath)
	stem := strings.TrimSuffix(base, ".tar.bz2")
	stem = strings.TrimSuffix(stem, ".conda")
	if stem == base {
		return DistSpec{}, zerr.With(zerr.New("unrecognized artifact extension"), "filename", base)
	}

	parts := strings.Split(stem, "-")
	if len(parts) < 3 {
		return DistSpec{}, zerr.With(zerr.New("unrecognized artifact filename"), "filename", base)
	}

	return DistSpec{
		Package:  strings.Join(parts[:len(parts)-2], "-"),
		Version:  parts[len(parts)-2],
		Platform: platform,
		Basename: base,
	}, nil
}
