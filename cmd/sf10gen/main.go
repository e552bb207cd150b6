// Package main provides the CLI entry point for sf10gen.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sf10tools/sf10gen-go/pkg/sf10"
	"github.com/sf10tools/sf10gen-go/pkg/sf10/parser"
)

var (
	configPath   string
	templatePath string
	assetDir     string
	outputPath   string
	existingPath string
	profilePath  string
	quarterFlag  int
	pretty       bool
	verbose      bool
)

// fileConfig is the optional YAML config naming the fixed file locations
// so teachers don't have to pass them on every run.
type fileConfig struct {
	Template string `yaml:"template"`
	Assets   string `yaml:"assets"`
	Output   string `yaml:"output"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sf10gen",
		Short: "Generate and merge SF10 student record workbooks",
		Long: `sf10gen converts quarterly grading sheets into a multi-tab SF10
workbook (one sheet per student) and merges new quarters into a
previously generated workbook without disturbing recorded quarters.`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file for template/assets/output paths")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	mergeCmd := &cobra.Command{
		Use:   "merge [grading files...]",
		Short: "Merge quarterly grading sheets into an SF10 workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMerge,
	}
	mergeCmd.Flags().StringVar(&templatePath, "template", "assets/docs/SF10.xlsx", "SF10 template workbook")
	mergeCmd.Flags().StringVar(&assetDir, "assets", "", "Directory with header logo images")
	mergeCmd.Flags().StringVarP(&outputPath, "output", "o", "SF10_All_Students.xlsx", "Output workbook path")
	mergeCmd.Flags().StringVar(&existingPath, "existing", "", "Existing SF10 workbook to merge into")
	mergeCmd.Flags().StringVar(&profilePath, "profile", "", "Learner profile workbook for LRN/birth date/sex")
	mergeCmd.Flags().IntVarP(&quarterFlag, "quarter", "q", 0, "Quarter (1-4) for all inputs; default infers from filenames")

	detectCmd := &cobra.Command{
		Use:   "detect [file.xlsx]",
		Short: "Classify a workbook as grading sheet or generated SF10",
		Args:  cobra.ExactArgs(1),
		RunE:  runDetect,
	}

	rootCmd.AddCommand(mergeCmd, detectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func loadConfig() error {
	if configPath == "" {
		return nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Template != "" {
		templatePath = cfg.Template
	}
	if cfg.Assets != "" {
		assetDir = cfg.Assets
	}
	if cfg.Output != "" {
		outputPath = filepath.Join(cfg.Output, filepath.Base(outputPath))
	}
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	input := sf10.MergeInput{
		ExistingArtifact: existingPath,
		ProfilePath:      profilePath,
		OutputPath:       outputPath,
	}

	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file not found: %s", path)
		}

		// An upload named anything at all can be a previously generated
		// workbook; classify by structure, never by filename.
		if input.ExistingArtifact == "" && parser.DetectArtifactFile(path).IsArtifact() {
			logger.Info("detected existing SF10 workbook", zap.String("file", path))
			input.ExistingArtifact = path
			continue
		}

		quarter := quarterFlag
		if quarter == 0 {
			quarter = quarterFromFilename(filepath.Base(path))
		}
		if quarter == 0 {
			return fmt.Errorf("cannot infer quarter for %s: name the file with 1st/2nd/3rd/4th or pass --quarter", path)
		}
		input.Files = append(input.Files, sf10.QuarterFile{Path: path, Quarter: quarter})
	}

	engine := sf10.NewEngine(sf10.Options{
		TemplatePath: templatePath,
		AssetDir:     assetDir,
		Logger:       logger,
	})

	result, err := engine.Merge(input)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
	return printJSON(result)
}

func runDetect(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("file not found: %s", args[0])
	}
	return printJSON(parser.DetectArtifactFile(args[0]))
}

func printJSON(v any) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// quarterFromFilename infers the quarter from the upload's name, the
// convention the grading files follow ("1st QTR GRADE 1 ...").
func quarterFromFilename(name string) int {
	lower := strings.ToLower(name)
	patterns := []struct {
		quarter int
		tokens  []string
	}{
		{1, []string{"1st", "first", "1 "}},
		{2, []string{"2nd", "second", "2 "}},
		{3, []string{"3rd", "third", "3 "}},
		{4, []string{"4th", "fourth", "4 "}},
	}
	for _, p := range patterns {
		for _, tok := range p.tokens {
			if strings.Contains(lower, tok) {
				return p.quarter
			}
		}
	}
	return 0
}
