package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableBindAddr    = "BIND_ADDR"
	environmentVariableTCPPort     = "TCP_PORT"
	environmentVariableHTTPPort    = "HTTP_PORT"
	environmentVariableDatabaseURL = "DATABASE_URL"
	environmentVariableWordsFile   = "WORDS_FILE"
	environmentVariableDebugGame   = "DEBUG_MESSAGES"
)

// mainFlags are the configuration options which can be easily configured at startup for different environments.
type mainFlags struct {
	bindAddr    string
	tcpPort     int
	httpPort    int
	databaseURL string
	wordsFile   string
	debugGame   bool
}

const defaultTCPPort = 8484

// usage prints how to run the server to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableBindAddr,
		environmentVariableTCPPort,
		environmentVariableHTTPPort,
		environmentVariableDatabaseURL,
		environmentVariableWordsFile,
		environmentVariableDebugGame,
	}
	fmt.Fprintf(fs.Output(), "Runs the game server\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool)) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs)
	}
	envValue := func(key string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return ""
	}
	envValueInt := func(key string, defaultValue int) int {
		v1 := envValue(key)
		v2, err := strconv.Atoi(v1)
		if err != nil {
			return defaultValue
		}
		return v2
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.StringVar(&m.bindAddr, "bind-addr", envValue(environmentVariableBindAddr), "The address the listeners bind to.  Empty binds all interfaces.")
	fs.IntVar(&m.tcpPort, "tcp-port", envValueInt(environmentVariableTCPPort, defaultTCPPort), "The TCP port game clients connect to.")
	fs.IntVar(&m.httpPort, "http-port", envValueInt(environmentVariableHTTPPort, 0), "The TCP port for websocket connections at /ws.  Zero disables websockets.")
	fs.StringVar(&m.databaseURL, "data-source", envValue(environmentVariableDatabaseURL), "The connection URI of the database that stores player points.  Empty disables persistence.")
	fs.StringVar(&m.wordsFile, "words-file", envValue(environmentVariableWordsFile), "The list of valid words that can be played, one per line.")
	fs.BoolVar(&m.debugGame, "debug-game", envPresent(environmentVariableDebugGame), "Logs game message types as they are handled.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	fs := m.newFlagSet(osLookupEnvFunc)
	fs.Parse(programArgs)
	return m
}
