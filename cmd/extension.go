package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/subcommands"
)

const (
	EnvStoreFile = "PT_STORE_FILE"
	EnvCurrency  = "PT_CURRENCY"
	EnvVerbose   = "PT_VERBOSE"

	EnvTestingNow = "PT_TESTING_NOW"
)

// ExtensionPrefix is the prefix of external subcommand binaries.
const ExtensionPrefix = "pt-"

// IsRegistered reports whether name is a subcommand known to c.
func IsRegistered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// ExtensionEnv returns the environment passed to extensions: the current one
// plus the global flags.
func ExtensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvStoreFile+"="+*storeFile)
	env = append(env, EnvCurrency+"="+*displayCurrency)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}

// RunExtension attempts to find and execute an external pt-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log := Logger(os.Stderr)
		log.Debug().Str("name", externalCmdName).Err(err).Msg("extension-not-found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = ExtensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
