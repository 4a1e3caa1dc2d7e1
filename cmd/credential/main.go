// Command credential exposes the engine's three operations over a text
// interface, for shell pipelines and for poking at stored records.
//
// Usage:
//
//	credential hash [-work N] [-key-length N] [password]
//	credential verify <record> <password>
//	credential expired <record> [days]
//
// hash reads the password from stdin when the argument is absent or "-", so
// secrets need not appear in shell history or process listings.  verify
// exits 0 when the password matches and 1 otherwise — including on error, so
// a corrupt record can never look like a successful login to a shell script.
// expired prints "Not expired", or reports "Expired" on stderr with a
// non-zero exit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-credential/credential"
)

const usage = `usage:
  credential hash [-work N] [-key-length N] [password]
  credential verify <record> <password>
  credential expired <record> [days]

hash reads the password from stdin when [password] is absent or "-".`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "hash":
		runHash(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "expired":
		runExpired(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "credential: unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func runHash(args []string) {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	work := fs.Float64("work", credential.DefaultWork, "relative work multiplier")
	keyLength := fs.Int("key-length", credential.DefaultKeyLength, "salt and derived key length in bytes")
	_ = fs.Parse(args)

	opts := credential.DefaultOptions()
	opts.Work = *work
	opts.KeyLength = *keyLength
	engine, err := credential.New(opts)
	if err != nil {
		fatal(err)
	}

	password, err := readPassword(fs.Args())
	if err != nil {
		fatal(err)
	}
	rec, err := engine.Hash(password)
	if err != nil {
		fatal(err)
	}
	fmt.Println(rec.Encode())
}

func runVerify(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	engine, err := credential.NewDefaultEngine()
	if err != nil {
		fatal(err)
	}
	ok, err := engine.Verify(args[0], args[1])
	if err != nil {
		// An unverifiable record is still a failed login for the caller,
		// but the reason goes to stderr rather than being swallowed.
		fmt.Fprintf(os.Stderr, "credential: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func runExpired(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	days := credential.DefaultExpiryDays
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "credential: invalid days %q\n", args[1])
			os.Exit(2)
		}
		days = n
	}

	engine, err := credential.NewDefaultEngine()
	if err != nil {
		fatal(err)
	}
	expired, err := engine.Expired(args[0], days)
	if err != nil {
		fatal(err)
	}
	if expired {
		fmt.Fprintln(os.Stderr, "Expired")
		os.Exit(1)
	}
	fmt.Println("Not expired")
}

// readPassword returns the positional password argument, or reads one line
// from stdin when the argument is absent or "-".
func readPassword(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("credential: reading password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "credential: %v\n", err)
	os.Exit(1)
}
