package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultPostsPath is the conventional post-list profile read by the scan command.
	DefaultPostsPath = "target_data.json"
	// DefaultTracePath is the conventional footprint file imported by the dashboard.
	DefaultTracePath = "digital_trace.json"

	unknownName = "Unknown"
)

var (
	// ErrInputFileMissing is returned when the profile file does not exist.
	ErrInputFileMissing = errors.New("input file missing")
	// ErrInputFileMalformed is returned when the file cannot be read or parsed.
	ErrInputFileMalformed = errors.New("input file malformed")
)

// TargetProfile is the identity of a subject plus the text they authored.
type TargetProfile struct {
	DisplayName string   `json:"displayName"`
	Samples     []string `json:"samples"`
}

// Post is a single authored entry in the post-list format.
type Post struct {
	Text string `json:"text"`
}

type postsDocument struct {
	RealName    *string `json:"real_name"`
	RecentPosts []Post  `json:"recent_posts"`
}

type traceDocument struct {
	Username         string `json:"username"`
	TargetID         string `json:"target_id"`
	DigitalFootprint string `json:"digital_footprint"`
}

// LoadPosts reads a {"real_name", "recent_posts"} profile from disk.
func LoadPosts(path string) (TargetProfile, error) {
	data, err := readInput(path)
	if err != nil {
		return TargetProfile{}, err
	}
	p, err := ParsePosts(data)
	if err != nil {
		return TargetProfile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadTrace reads a {"username"|"target_id", "digital_footprint"} profile from disk.
func LoadTrace(path string) (TargetProfile, error) {
	data, err := readInput(path)
	if err != nil {
		return TargetProfile{}, err
	}
	p, err := ParseTrace(data)
	if err != nil {
		return TargetProfile{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePosts decodes the post-list format. Every post becomes one sample,
// including posts with empty text.
func ParsePosts(data []byte) (TargetProfile, error) {
	var doc postsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return TargetProfile{}, fmt.Errorf("%w: %v", ErrInputFileMalformed, err)
	}
	if doc.RecentPosts == nil {
		return TargetProfile{}, fmt.Errorf("%w: recent_posts is required", ErrInputFileMalformed)
	}

	name := unknownName
	if doc.RealName != nil && strings.TrimSpace(*doc.RealName) != "" {
		name = *doc.RealName
	}

	samples := make([]string, 0, len(doc.RecentPosts))
	for _, post := range doc.RecentPosts {
		samples = append(samples, post.Text)
	}

	return TargetProfile{DisplayName: name, Samples: samples}, nil
}

// ParseTrace decodes the footprint format. The blob is kept as a single sample.
func ParseTrace(data []byte) (TargetProfile, error) {
	var doc traceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return TargetProfile{}, fmt.Errorf("%w: %v", ErrInputFileMalformed, err)
	}

	name := unknownName
	switch {
	case doc.Username != "":
		name = doc.Username
	case doc.TargetID != "":
		name = doc.TargetID
	}

	return TargetProfile{DisplayName: name, Samples: []string{doc.DigitalFootprint}}, nil
}

// Joined returns all samples as one newline separated blob.
func (p TargetProfile) Joined() string {
	return strings.Join(p.Samples, "\n")
}

func readInput(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: no path given", ErrInputFileMissing)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputFileMissing, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputFileMalformed, path, err)
	}
	return data, nil
}
