package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daniel/portfolio-api/internal/assess"
	"github.com/daniel/portfolio-api/internal/jobdesc"
	"github.com/daniel/portfolio-api/internal/llm"
	"github.com/daniel/portfolio-api/internal/observability"
	"github.com/daniel/portfolio-api/internal/profile"
)

var (
	assessInputFile   string
	assessProfilePath string
	assessAPIKey      string
	assessVerbose     bool
)

var assessCmd = &cobra.Command{
	Use:   "assess [text-or-url]",
	Short: "Assess a job description against the owner profile",
	Long: `Assess a job description, given as pasted text, a URL, a file, or stdin,
and print the fit assessment as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVarP(&assessInputFile, "in", "i", "", `Path to a job description text file ("-" for stdin)`)
	assessCmd.Flags().StringVar(&assessProfilePath, "profile", "profile.json", "Path to the owner profile")
	assessCmd.Flags().StringVar(&assessAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	assessCmd.Flags().BoolVarP(&assessVerbose, "verbose", "v", false, "Print a formatted summary to stderr")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, args []string) error {
	input, err := assessInput(args, assessInputFile, os.Stdin)
	if err != nil {
		return err
	}

	apiKey := assessAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	owner, err := profile.Load(assessProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load owner profile: %w", err)
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	resolver := jobdesc.NewResolver(jobdesc.Options{DNS: jobdesc.SystemDNS()})
	service := assess.NewService(resolver, client, owner, nil)

	result, err := service.Assess(ctx, input)
	if err != nil {
		return err
	}

	if assessVerbose {
		observability.NewPrinter(os.Stderr).PrintAssessment(result)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// assessInput picks the job description source: a positional argument, a
// file, or stdin when the file path is "-".
func assessInput(args []string, inputFile string, stdin io.Reader) (string, error) {
	if len(args) == 1 && inputFile != "" {
		return "", fmt.Errorf("cannot combine a positional argument with --in")
	}
	if len(args) == 1 {
		return args[0], nil
	}

	switch inputFile {
	case "":
		return "", fmt.Errorf("provide the job description as an argument or via --in")
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
}
