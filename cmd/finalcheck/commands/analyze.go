package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Treedy2020/FinalCheck/pkg/compliance"
)

var (
	analyzeStandards []string
	analyzeProduct   string
	analyzeOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document>",
	Short: "Verify a document against compliance standards",
	Long: `Analyze renders the given PDF or image and checks every page against
the requested standards. Standards are given directly with --standards or
derived from a product type with --product.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeStandards, "standards", "s", nil, "standard ids to verify against")
	analyzeCmd.Flags().StringVarP(&analyzeProduct, "product", "p", "", "product type whose required standards are verified")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the JSON report to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(analyzeStandards) == 0 && analyzeProduct == "" {
		return fmt.Errorf("provide --standards or --product")
	}
	if len(analyzeStandards) > 0 && analyzeProduct != "" {
		return fmt.Errorf("--standards and --product are mutually exclusive")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := args[0]
	var report compliance.ComplianceReport
	if analyzeProduct != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		report, err = client.AnalyzeForProduct(ctx, filepath.Base(path), data, analyzeProduct)
		if err != nil {
			return err
		}
	} else {
		report, err = client.AnalyzeFile(ctx, path, analyzeStandards)
		if err != nil {
			return err
		}
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if analyzeOutput != "" {
		if err := os.WriteFile(analyzeOutput, body, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", analyzeOutput)
	} else {
		fmt.Println(string(body))
	}

	printSummary(report)

	if report.Overall == compliance.VerdictNonCompliant {
		os.Exit(1)
	}
	return nil
}

func printSummary(report compliance.ComplianceReport) {
	fmt.Fprintf(os.Stderr, "\n%s: %s (%d pages)\n", report.DocumentName, strings.ToUpper(string(report.Overall)), report.PageCount)
	for _, section := range report.Standards {
		fmt.Fprintf(os.Stderr, "  %-30s %s\n", section.Title, section.Verdict)
	}
}
