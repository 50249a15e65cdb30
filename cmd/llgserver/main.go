/*
Llgserver starts an LLGram server and begins listening for new connections.

Usage:

	llgserver [flags]
	llgserver [flags] -l [[ADDRESS]:PORT]

Once started, the LLGram server will listen for HTTP requests and respond to
them using REST protocol. Clients POST grammars to /api/v1/analyses and get
back their FIRST and FOLLOW sets and LL(1) parsing table. By default, it will
listen on localhost:8080. This can be changed with the --listen/-l flag (or
config via environment var). The flag argument must be either a full address
with port, such as "192.168.0.2:6001", or just the port preceded by a colon,
such as ":6001".

If a JWT token secret is not given, one will be automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as soon
as the server shuts down. This is suitable for testing, but must be given via
either CLI flags or environment variable if running in production.

Every setting may also come from the [server] table of a TOML config file given
with --config. Flags take precedence over environment variables, which take
precedence over the config file.

The flags are:

	-v, --version
		Give the current version of the LLGram server and then exit.

	-c, --config FILE
		Read settings from the given TOML file.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		LLGRAM_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable LLGRAM_TOKEN_SECRET. If no secret is specified or an empty
		secret is given, a random secret will be automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable LLGRAM_DATABASE. If neither is
		given an in-memory database is used.

	--admin-password PASSWORD
		Allow clients that give this password to POST /api/v1/tokens to get a
		token that can delete analyses. If not given, will default to the value
		of environment variable LLGRAM_ADMIN_PASSWORD. If neither is given,
		nobody can log in.

	--debug
		Log the debug output of every analysis.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/llgram/internal/config"
	"github.com/dekarrin/llgram/internal/version"
	"github.com/dekarrin/llgram/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen   = "LLGRAM_LISTEN_ADDRESS"
	EnvSecret   = "LLGRAM_TOKEN_SECRET"
	EnvDB       = "LLGRAM_DATABASE"
	EnvPassword = "LLGRAM_ADMIN_PASSWORD"
)

var (
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of LLGram server and then exit.")
	flagConfig   = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagListen   = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret   = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB       = pflag.String("db", "", "Use the given DB connection string.")
	flagPassword = pflag.String("admin-password", "", "Use the given password for the admin account.")
	flagDebug    = pflag.Bool("debug", false, "Log the debug output of every analysis.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (LLGram v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	var file config.File
	if *flagConfig != "" {
		var err error
		file, err = config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
			os.Exit(1)
		}
	}

	file.Server.Listen = setting("listen", flagListen, EnvListen, file.Server.Listen)
	file.Server.DB = setting("db", flagDB, EnvDB, file.Server.DB)
	file.Server.Secret = setting("secret", flagSecret, EnvSecret, file.Server.Secret)
	file.Server.AdminPassword = setting("admin-password", flagPassword, EnvPassword, file.Server.AdminPassword)

	file = file.FillDefaults()
	if err := file.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}

	listenAddr := file.Server.Listen
	if !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}

	var cfg server.Config
	cfg.AdminPassword = file.Server.AdminPassword
	cfg.Debug = *flagDebug

	db, err := server.ParseDBConnString(file.Server.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}
	cfg.DB = db

	delay, err := file.Server.UnauthDelayDuration()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	cfg.UnauthDelayMillis = int(delay.Milliseconds())
	if cfg.UnauthDelayMillis == 0 {
		// 0 would be taken as unset and given the default
		cfg.UnauthDelayMillis = -1
	}

	cfg.TokenSecret, err = tokenSecret(file.Server.Secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	lgs, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer lgs.Close()
	log.Printf("DEBUG Server initialized")

	log.Printf("INFO  Starting LLGram server %s...", version.ServerCurrent)
	lgs.ServeForever(listenAddr)
}

// setting gives the value of a setting from its flag if it was given, then its
// environment variable, then fromFile.
func setting(flagName string, flagVal *string, envVar string, fromFile string) string {
	if pflag.Lookup(flagName).Changed {
		return *flagVal
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fromFile
}

// tokenSecret returns the secret to sign tokens with. A given secret shorter
// than server.MinSecretSize is repeated until it is long enough; if none is
// given a random one is generated.
func tokenSecret(given string) ([]byte, error) {
	if given == "" {
		secret := make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("could not generate token secret: %w", err)
		}

		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
		return secret, nil
	}

	secret := []byte(given)
	for len(secret) < server.MinSecretSize {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}

	if len(secret) > server.MaxSecretSize {
		// keys would be chopped at 64, so rather than the user thinking they
		// have more security by giving a longer key, refuse to start.
		return nil, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(secret), server.MaxSecretSize)
	}

	return secret, nil
}
