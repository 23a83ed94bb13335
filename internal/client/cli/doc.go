// Package cli implements the jogging tracker command-line client. Each
// invocation runs one command (login, add, list, weekly, users, ...) against
// the server and prints the result.
package cli
