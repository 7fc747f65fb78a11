package cmd

import (
	"fmt"
	"os"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const demoSource = `public class Test {
    static int fact(int n) {
        if (n == 0) return 1;
        return n * fact(n - 1);
    }

    public static void main(String[] args) {
        System.out.println(fact(5));
    }
}
`

var demoCmd = &cobra.Command{
	Use:   "demo [file]",
	Short: "Summarize a whole unit: deepest nesting, overall estimate, recursion",
	Long: `Analyze a built-in Java sample, or the given file, and print a one-unit
summary: the deepest loop nesting of any function, the matching polynomial
time estimate, the recursive functions and the resulting space estimate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := analyzer.NewAnalyzerWithConfig(cfg)

		var (
			reports *models.ReportSet
			err     error
		)
		if len(args) == 1 {
			reports, err = engine.AnalyzeFile(args[0])
		} else {
			reports, err = engine.AnalyzeSource(syntax.LanguageJava, "Test.java", []byte(demoSource))
		}
		if err != nil {
			if models.IsParseFailure(err) {
				color.Red("Invalid source: %v\n", err)
				os.Exit(1)
			}
			return err
		}

		depth, recursive := summarize(reports)
		fmt.Printf("Max loop nesting depth: %d\n", depth)
		fmt.Printf("Estimated Time Complexity: %s\n", polynomial(depth))
		fmt.Printf("Recursive methods: %v\n", recursive)
		space := "O(1)"
		if len(recursive) > 0 {
			space = "O(n)"
		}
		fmt.Printf("Estimated Space Complexity: %s\n", space)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func summarize(reports *models.ReportSet) (int, []string) {
	depth := 0
	recursive := make([]string, 0)
	for _, r := range reports.Reports() {
		depth = max(depth, r.MaxNestedDepth)
		if r.IsRecursive {
			recursive = append(recursive, r.Name)
		}
	}
	return depth, recursive
}

func polynomial(depth int) string {
	switch depth {
	case 0:
		return "O(1)"
	case 1:
		return "O(n)"
	default:
		return fmt.Sprintf("O(n^%d)", depth)
	}
}
