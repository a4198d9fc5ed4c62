package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daniel/portfolio-api/internal/config"
)

var hashCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Generate a bcrypt hash for ADMIN_PASSWORD_HASH",
	Long: `Generate the bcrypt hash the server expects in ADMIN_PASSWORD_HASH.
If PASSWORD_PEPPER is set it is folded into the hash, so the server must run
with the same pepper. With no argument the password is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassword,
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", config.DefaultBcryptCost, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := config.HashPassword(password, os.Getenv("PASSWORD_PEPPER"), hashCost)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}
