package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile is one named entry of the AWS shared config or credentials file.
type Profile struct {
	Name   string
	Region string
}

type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// DefaultAWSConfigPath honours AWS_CONFIG_FILE, falling back to ~/.aws/config.
func DefaultAWSConfigPath() string {
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aws", "config")
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AWS config %s: %w", path, err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

// GetProfiles lists sections with at least one key. The config file prefixes named profiles
// with "profile "; the credentials file does not.
func (r *iniRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		name := strings.TrimPrefix(section.Name(), "profile ")
		if name == ini.DefaultSection {
			name = "default"
		}
		profiles = append(profiles, Profile{
			Name:   name,
			Region: section.Key("region").String(),
		})
	}
	return profiles, nil
}
