package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/edusuite/campus-console/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store *session.Store
	auth  session.Authenticator
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -identifier EMAIL|USN - log in to the campus backend; the password is prompted next")
	fmt.Println("  logout                      - clear the stored session")
	fmt.Println("  whoami                      - show the active session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginIdentifier := loginCmd.String("identifier", "", "The operator's email or USN. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginIdentifier == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginIdentifier, string(pwd))
	case "logout":
		cli.store.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return cli.whoami()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(identifier, password string) error {
	if err := cli.store.Login(context.Background(), cli.auth, identifier, password); err != nil {
		return err
	}
	sess := cli.store.Current()
	fmt.Printf("Logged in as %s (%s)\n", sess.DisplayName, sess.Role.Display())
	return nil
}

func (cli *commandLine) whoami() error {
	sess := cli.store.Current()
	if !sess.Authenticated() {
		return session.ErrNotAuthenticated
	}
	fmt.Printf("%s (%s), subject %s", sess.DisplayName, sess.Role.Display(), sess.SubjectID)
	if sess.StudentID != "" {
		fmt.Printf(", student record %s", sess.StudentID)
	}
	fmt.Println()
	return nil
}
