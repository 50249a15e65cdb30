// Package config loads LLGram configuration files. A configuration file is
// TOML with up to three tables:
//
//	[grammar]
//	epsilon = "ε"
//	eof = "$"
//	normalize = true
//
//	[output]
//	width = 80
//
//	[server]
//	listen = "localhost:8080"
//	db = "inmem"
//	secret = ""
//	admin_password = ""
//	unauth_delay = "1s"
//
// Every key is optional. Values in the file are overridden by environment
// variables and command-line flags; that is up to the program reading the
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/llgram/internal/grammar"
)

const (
	DefaultWidth       = 80
	DefaultListen      = "localhost:8080"
	DefaultDB          = "inmem"
	DefaultUnauthDelay = time.Second

	// MinWidth is the smallest output width that a table can be drawn in.
	MinWidth = 20
)

// File is the contents of a configuration file.
type File struct {
	Grammar Grammar `toml:"grammar"`
	Output  Output  `toml:"output"`
	Server  Server  `toml:"server"`
}

// Grammar is the [grammar] table. It gives defaults for reading and analyzing
// grammars.
type Grammar struct {
	Epsilon string `toml:"epsilon"`
	EOF     string `toml:"eof"`

	// Normalize is whether left recursion and left factoring are removed
	// before a table is built. It is nil if not given in the file.
	Normalize *bool `toml:"normalize"`
}

// ShouldNormalize returns the value of Normalize, or true if it is not set.
func (g Grammar) ShouldNormalize() bool {
	if g.Normalize == nil {
		return true
	}
	return *g.Normalize
}

// Output is the [output] table.
type Output struct {
	// Width is the maximum width of text output such as tables.
	Width int `toml:"width"`
}

// Server is the [server] table, used only by llgserver.
type Server struct {
	Listen        string `toml:"listen"`
	DB            string `toml:"db"`
	Secret        string `toml:"secret"`
	AdminPassword string `toml:"admin_password"`
	UnauthDelay   string `toml:"unauth_delay"`
}

// UnauthDelayDuration returns the parsed value of UnauthDelay. An empty value
// gives DefaultUnauthDelay.
func (s Server) UnauthDelayDuration() (time.Duration, error) {
	if s.UnauthDelay == "" {
		return DefaultUnauthDelay, nil
	}
	return time.ParseDuration(s.UnauthDelay)
}

// Load reads the configuration file at path. Keys not in the file are left
// unset; call FillDefaults on the result to give them their default values.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	return Parse(data)
}

// Parse reads configuration from TOML data.
func Parse(data []byte) (File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, fmt.Errorf("parse config: %w", err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		return File{}, fmt.Errorf("parse config: unknown key %q", undec[0].String())
	}

	return f, nil
}

// FillDefaults returns a copy of f with every unset value set to its default.
func (f File) FillDefaults() File {
	newF := f

	if newF.Grammar.Epsilon == "" {
		newF.Grammar.Epsilon = grammar.DefaultEpsilon
	}
	if newF.Grammar.EOF == "" {
		newF.Grammar.EOF = grammar.DefaultEOF
	}
	if newF.Grammar.Normalize == nil {
		normalize := true
		newF.Grammar.Normalize = &normalize
	}
	if newF.Output.Width == 0 {
		newF.Output.Width = DefaultWidth
	}
	if newF.Server.Listen == "" {
		newF.Server.Listen = DefaultListen
	}
	if newF.Server.DB == "" {
		newF.Server.DB = DefaultDB
	}
	if newF.Server.UnauthDelay == "" {
		newF.Server.UnauthDelay = DefaultUnauthDelay.String()
	}

	return newF
}

// Validate returns an error if any value in f is set to something that cannot
// be used. Unset values are not checked.
func (f File) Validate() error {
	if f.Grammar.Epsilon != "" && f.Grammar.Epsilon == f.Grammar.EOF {
		return errors.New("grammar: epsilon and eof cannot be the same symbol")
	}
	if f.Output.Width != 0 && f.Output.Width < MinWidth {
		return fmt.Errorf("output: width must be at least %d but is %d", MinWidth, f.Output.Width)
	}
	if _, err := f.Server.UnauthDelayDuration(); err != nil {
		return fmt.Errorf("server: unauth_delay: %w", err)
	}
	return nil
}
