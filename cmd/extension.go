package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvPortfolioFile   = "PCC_PORTFOLIO_FILE"
	EnvConfigFile      = "PCC_CONFIG"
	EnvDefaultCurrency = "PCC_DEFAULT_CURRENCY"
	EnvVerbose         = "PCC_VERBOSE"
)

// RunExtension attempts to find and execute an external pcc-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "pcc-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = append(os.Environ(), ExtensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)

		return true, 1 // Indicate that an attempt was made, but it failed
	}

	return true, 0
}

// ExtensionEnv returns the global flags as environment variables for an extension.
func ExtensionEnv() []string {
	return []string{
		EnvPortfolioFile + "=" + *portfolioFile,
		EnvConfigFile + "=" + *configFile,
		EnvDefaultCurrency + "=" + *defaultCurrency,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
