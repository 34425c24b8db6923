// Package config provides configuration loading and defaults for reposcribe.
package config

import "time"

// DefaultConfigDir is the default location for reposcribe configuration.
const DefaultConfigDir = "~/.config/reposcribe"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "reposcribe.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultModel is the Gemini model used for README generation.
const DefaultModel = "gemini-2.0-flash"

// DefaultListenAddr is the address the serve command binds to.
const DefaultListenAddr = ":8080"

// DefaultRequestTimeout bounds each upstream API call (GitHub, Vercel).
const DefaultRequestTimeout = 30 * time.Second

// DefaultGenerateTimeout bounds a single text-generation call, which can
// run much longer than a plain API fetch.
const DefaultGenerateTimeout = 120 * time.Second

// DefaultDeployCacheTTL is how long resolved deployment URLs are cached.
const DefaultDeployCacheTTL = 5 * time.Minute

// DefaultDeployCacheSize is the maximum number of cached deployment lookups.
const DefaultDeployCacheSize = 256

// DefaultTreeDepth is the maximum recursion depth when walking a
// repository's file structure.
const DefaultTreeDepth = 2

// DefaultTreeWidth is the maximum number of entries expanded per directory.
const DefaultTreeWidth = 20

// DefaultLimits holds the default prompt truncation limits.
var DefaultLimits = Limits{
	DepsPerEcosystem: 15,
	StructureLines:   30,
	ReadmeExcerpt:    2000,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
